package splitter

import (
	"strings"
	"unicode/utf8"
)

// SentenceSplit packs whole sentences greedily into segments of at most max
// runes. A single sentence longer than the budget is hard-split at the rune
// boundary. The result preserves the original sentence order.
func SentenceSplit(text string, max int) []string {
	var (
		segments []string
		current  strings.Builder
		count    int
	)

	flush := func() {
		segment := strings.TrimSpace(current.String())
		if segment != "" {
			segments = append(segments, segment)
		}
		current.Reset()
		count = 0
	}

	for _, sentence := range splitSentences(text) {
		n := utf8.RuneCountInString(sentence)
		if count > 0 && count+n > max {
			flush()
		}
		if n > max {
			flush()
			for _, part := range hardSplit(sentence, max) {
				if part = strings.TrimSpace(part); part != "" {
					segments = append(segments, part)
				}
			}
			continue
		}
		current.WriteString(sentence)
		count += n
	}
	flush()

	return segments
}

// splitSentences cuts text after sentence-ending punctuation, covering both
// Latin and CJK forms, and after newlines.
func splitSentences(text string) []string {
	var (
		sentences []string
		current   strings.Builder
	)
	for _, r := range text {
		current.WriteRune(r)
		switch r {
		case '.', '!', '?', '。', '！', '？', '\n':
			sentences = append(sentences, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}
	return sentences
}

func hardSplit(s string, max int) []string {
	runes := []rune(s)
	var parts []string
	for start := 0; start < len(runes); start += max {
		end := start + max
		if end > len(runes) {
			end = len(runes)
		}
		parts = append(parts, string(runes[start:end]))
	}
	return parts
}
