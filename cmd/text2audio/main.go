// Command text2audio converts text (or a text/PDF file) into a single WAV
// file using the Zhipu AI chat and speech services.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/AnlangA/text2audio"
	"github.com/AnlangA/text2audio/pkg/textextract"
)

func main() {
	var (
		text       = flag.String("text", "", "text to convert")
		file       = flag.String("file", "", "read input from a file (pdf, txt, md) instead of -text")
		out        = flag.String("out", "output.wav", "output WAV path")
		model      = flag.String("model", "", "chat model for splitting (default glm-4.5-flash)")
		voice      = flag.String("voice", "", "synthesis voice (default tongtong)")
		speed      = flag.Float64("speed", 1.0, "speech speed, clamped to [0.5, 2.0]")
		volume     = flag.Float64("volume", 1.0, "speech volume, clamped to [0.0, 10.0]")
		maxLen     = flag.Int("max-segment", 500, "segment character budget, clamped to [100, 1024]")
		parallel   = flag.Int("parallel", 0, "synthesize up to N segments concurrently (0 = sequential)")
		thinking   = flag.Bool("thinking", false, "enable thinking mode for splitting")
		codingPlan = flag.Bool("coding-plan", false, "use the coding-plan endpoint")
		localSplit = flag.Bool("local-split", false, "split at sentence boundaries locally instead of via AI")
		retries    = flag.Int("retries", 3, "synthesis attempts per segment")
		retryDelay = flag.Duration("retry-delay", 100*time.Millisecond, "base backoff delay between attempts")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	apiKey := os.Getenv("ZHIPU_API_KEY")
	if apiKey == "" {
		slog.Error("ZHIPU_API_KEY is not set")
		os.Exit(1)
	}

	input := *text
	if *file != "" {
		content, err := textextract.ExtractFile(*file)
		if err != nil {
			slog.Error("failed to read input file", "file", *file, "error", err)
			os.Exit(1)
		}
		input = content
	}
	if input == "" {
		fmt.Fprintln(os.Stderr, "usage: text2audio -text <text> [flags], or -file <path>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	opts := []text2audio.Option{
		text2audio.WithSpeed(*speed),
		text2audio.WithVolume(*volume),
		text2audio.WithMaxSegmentLength(*maxLen),
		text2audio.WithRetry(*retries, *retryDelay),
	}
	if *model != "" {
		opts = append(opts, text2audio.WithModel(text2audio.Model(*model)))
	}
	if *voice != "" {
		opts = append(opts, text2audio.WithVoice(text2audio.Voice(*voice)))
	}
	if *parallel > 0 {
		opts = append(opts, text2audio.WithParallel(*parallel))
	}
	if *thinking {
		opts = append(opts, text2audio.WithThinking(true))
	}
	if *codingPlan {
		opts = append(opts, text2audio.WithCodingPlan(true))
	}
	if *localSplit {
		opts = append(opts, text2audio.WithLocalSplit())
	}

	conv := text2audio.New(apiKey, opts...)

	start := time.Now()
	if err := conv.Convert(context.Background(), input, *out); err != nil {
		slog.Error("conversion failed", "error", err)
		os.Exit(1)
	}
	slog.Info("conversion complete", "output", *out, "elapsed", time.Since(start))
}
