// Package splitter turns long-form text into speech-sized segments, either
// by asking a GLM model to cut at semantic boundaries or by a local
// sentence-packing pass that needs no network access.
package splitter

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/AnlangA/text2audio/internal/zhipu"
)

// Delimiter separates segments in the model's response.
const Delimiter = "|||"

const systemPrompt = "You are an expert linguist. Split the text the user " +
	"provides into segments along semantic boundaries."

// ChatClient is the remote chat-completion operation the splitter drives.
type ChatClient interface {
	ChatCompletion(ctx context.Context, req zhipu.ChatRequest) (string, error)
}

// Options configures a Splitter.
type Options struct {
	Model     string
	MaxLength int  // rune budget per segment
	Thinking  bool // request the thinking augmentation on the chat call
}

// Splitter produces ordered text segments. It is stateless across calls.
type Splitter struct {
	client ChatClient
	opts   Options
}

// New creates a Splitter driving the given chat client.
func New(client ChatClient, opts Options) *Splitter {
	return &Splitter{client: client, opts: opts}
}

// Split returns the ordered segments of text. Empty text yields an empty
// slice; text within the rune budget is returned unchanged as a single
// segment without any network call. For longer text the chat model is asked
// to split at sentence boundaries; a response the model failed to delimit is
// returned whole rather than treated as an error.
func (s *Splitter) Split(ctx context.Context, text string) ([]string, error) {
	switch n := utf8.RuneCountInString(text); {
	case n == 0:
		return nil, nil
	case n <= s.opts.MaxLength:
		return []string{text}, nil
	}

	raw, err := s.client.ChatCompletion(ctx, zhipu.ChatRequest{
		Model:    s.opts.Model,
		System:   systemPrompt,
		Prompt:   s.buildPrompt(text),
		Thinking: s.opts.Thinking,
	})
	if err != nil {
		return nil, fmt.Errorf("split text: %w", err)
	}
	return parseSegments(raw), nil
}

func (s *Splitter) buildPrompt(text string) string {
	return fmt.Sprintf(
		"Split the following text into segments of at most %d characters each. "+
			"Cut at natural sentence boundaries (periods, question marks, exclamation "+
			"marks) and keep every segment semantically complete. Output the segments "+
			"in their original order, separated by the marker %s. Do not add any "+
			"commentary.\n\nText to split:\n%s",
		s.opts.MaxLength, Delimiter, text,
	)
}

// parseSegments splits the raw model response on the delimiter, trimming
// whitespace and dropping empty pieces. If nothing survives, the whole raw
// response is returned as a single segment.
func parseSegments(raw string) []string {
	var segments []string
	for _, piece := range strings.Split(raw, Delimiter) {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			segments = append(segments, piece)
		}
	}
	if len(segments) == 0 {
		return []string{raw}
	}
	return segments
}
