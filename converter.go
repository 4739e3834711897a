// Package text2audio converts long-form text into a single playable WAV
// file. Text beyond the configured segment budget is split semantically by
// a GLM chat model, each segment is synthesized by the Zhipu speech service
// with retry and optional bounded concurrency, and the resulting audio
// buffers are stitched together in their original order.
package text2audio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/sync/semaphore"

	"github.com/AnlangA/text2audio/internal/retry"
	"github.com/AnlangA/text2audio/internal/splitter"
	"github.com/AnlangA/text2audio/internal/wavmerge"
	"github.com/AnlangA/text2audio/internal/zhipu"
)

// chatClient and speechClient are the two remote operations the converter
// drives; both are satisfied by *zhipu.Client.
type chatClient interface {
	ChatCompletion(ctx context.Context, req zhipu.ChatRequest) (string, error)
}

type speechClient interface {
	Synthesize(ctx context.Context, req zhipu.SpeechRequest) ([]byte, error)
}

// Converter orchestrates the text-to-audio pipeline. It is immutable after
// construction and safe for concurrent use.
type Converter struct {
	cfg    config
	chat   chatClient
	speech speechClient
	policy retry.Policy
}

// New creates a Converter for the given API key. Options are applied once;
// out-of-range numeric options are clamped to their valid range.
func New(apiKey string, opts ...Option) *Converter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	client := zhipu.NewClient(zhipu.Config{
		APIKey:     apiKey,
		BaseURL:    cfg.baseURL,
		CodingPlan: cfg.codingPlan,
	})

	return &Converter{
		cfg:    cfg,
		chat:   client,
		speech: client,
		policy: retry.Policy{MaxAttempts: cfg.maxRetries, BaseDelay: cfg.retryDelay},
	}
}

// Convert turns text into a WAV file at outputPath. Text within the segment
// budget is synthesized directly; longer text is split first. A failed
// conversion gives no guarantee about a partially written output file.
func (c *Converter) Convert(ctx context.Context, text, outputPath string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyInput
	}

	if utf8.RuneCountInString(text) <= c.cfg.segmentLength {
		return c.convertDirect(ctx, text, outputPath)
	}
	return c.convertSegmented(ctx, text, outputPath)
}

func (c *Converter) convertDirect(ctx context.Context, text, outputPath string) error {
	audio, err := c.synthesizeWithRetry(ctx, text)
	if err != nil {
		return err
	}
	return wavmerge.Save(audio, outputPath)
}

func (c *Converter) convertSegmented(ctx context.Context, text, outputPath string) error {
	segments, err := c.split(ctx, text)
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		return ErrEmptyInput
	}
	slog.Debug("converting text in segments",
		"segments", len(segments), "parallel", c.cfg.parallel)

	var buffers [][]byte
	if c.cfg.parallel {
		buffers, err = c.collectParallel(ctx, segments)
	} else {
		buffers, err = c.collectSequential(ctx, segments)
	}
	if err != nil {
		return err
	}
	return wavmerge.Merge(buffers, outputPath)
}

func (c *Converter) split(ctx context.Context, text string) ([]string, error) {
	if c.cfg.localSplit {
		return splitter.SentenceSplit(text, c.cfg.segmentLength), nil
	}
	sp := splitter.New(c.chat, splitter.Options{
		Model:     c.cfg.model.String(),
		MaxLength: c.cfg.segmentLength,
		Thinking:  c.cfg.thinking && c.cfg.model.SupportsThinking(),
	})
	return sp.Split(ctx, text)
}

// synthesizeWithRetry wraps one synthesis call in the configured retry
// policy. Every failure is retried identically; the last error is surfaced
// once attempts are exhausted.
func (c *Converter) synthesizeWithRetry(ctx context.Context, text string) ([]byte, error) {
	req := zhipu.SpeechRequest{
		Input:  text,
		Voice:  c.cfg.voice.String(),
		Speed:  c.cfg.speed,
		Volume: c.cfg.volume,
	}

	var audio []byte
	err := c.policy.Do(ctx, func(ctx context.Context) error {
		out, err := c.speech.Synthesize(ctx, req)
		if err != nil {
			slog.Debug("synthesis attempt failed", "error", err)
			return err
		}
		audio = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return audio, nil
}

// collectSequential synthesizes segments strictly in order; the first
// failure aborts the conversion.
func (c *Converter) collectSequential(ctx context.Context, segments []string) ([][]byte, error) {
	buffers := make([][]byte, 0, len(segments))
	for i, segment := range segments {
		audio, err := c.synthesizeWithRetry(ctx, segment)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		buffers = append(buffers, audio)
	}
	return buffers, nil
}

// collectParallel dispatches segments into a pool bounded by the configured
// parallel limit. Each task writes its result into the slot matching its
// original index, so segment order survives arbitrary completion order.
// After all tasks settle, the first failure by segment index aborts the
// conversion; results of the remaining tasks are discarded.
func (c *Converter) collectParallel(ctx context.Context, segments []string) ([][]byte, error) {
	var (
		sem     = semaphore.NewWeighted(int64(c.cfg.parallelLimit))
		wg      sync.WaitGroup
		buffers = make([][]byte, len(segments))
		errs    = make([]error, len(segments))
	)

	var acquireErr error
	for i, segment := range segments {
		if err := sem.Acquire(ctx, 1); err != nil {
			acquireErr = err
			break
		}
		wg.Add(1)
		go func(i int, segment string) {
			defer wg.Done()
			defer sem.Release(1)
			buffers[i], errs[i] = c.synthesizeWithRetry(ctx, segment)
		}(i, segment)
	}
	wg.Wait()

	// A failed acquire means the segment was never dispatched, so the error
	// is surfaced untagged rather than attributed to a segment index.
	if acquireErr != nil {
		return nil, acquireErr
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return buffers, nil
}
