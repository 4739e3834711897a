package splitter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnlangA/text2audio/internal/zhipu"
)

type stubChat struct {
	calls    int
	lastReq  zhipu.ChatRequest
	response string
	err      error
}

func (s *stubChat) ChatCompletion(_ context.Context, req zhipu.ChatRequest) (string, error) {
	s.calls++
	s.lastReq = req
	return s.response, s.err
}

func TestSplitEmptyTextReturnsNoSegments(t *testing.T) {
	chat := &stubChat{}
	s := New(chat, Options{MaxLength: 100})

	segments, err := s.Split(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, segments)
	assert.Zero(t, chat.calls)
}

func TestSplitShortTextShortCircuits(t *testing.T) {
	chat := &stubChat{}
	s := New(chat, Options{MaxLength: 100})

	segments, err := s.Split(context.Background(), "short enough")

	require.NoError(t, err)
	assert.Equal(t, []string{"short enough"}, segments)
	assert.Zero(t, chat.calls, "no network call for text within the budget")
}

func TestSplitParsesDelimitedResponse(t *testing.T) {
	chat := &stubChat{response: "A|||B|||C"}
	s := New(chat, Options{Model: "glm-4.5-flash", MaxLength: 10})

	segments, err := s.Split(context.Background(), "this text is longer than ten runes")

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, segments)
	assert.Equal(t, 1, chat.calls)
}

func TestSplitTrimsAndDropsEmptyPieces(t *testing.T) {
	chat := &stubChat{response: "  first ||| ||| second \n|||"}
	s := New(chat, Options{MaxLength: 10})

	segments, err := s.Split(context.Background(), "this text is longer than ten runes")

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, segments)
}

func TestSplitFallsBackToWholeResponseWithoutDelimiter(t *testing.T) {
	chat := &stubChat{response: "  one single answer  "}
	s := New(chat, Options{MaxLength: 10})

	segments, err := s.Split(context.Background(), "this text is longer than ten runes")

	require.NoError(t, err)
	assert.Equal(t, []string{"one single answer"}, segments)
}

func TestSplitPromptCarriesBudgetDelimiterAndText(t *testing.T) {
	chat := &stubChat{response: "A|||B"}
	s := New(chat, Options{Model: "glm-4.6", MaxLength: 128, Thinking: true})

	text := strings.Repeat("長い文章です。", 30)
	_, err := s.Split(context.Background(), text)

	require.NoError(t, err)
	assert.Equal(t, "glm-4.6", chat.lastReq.Model)
	assert.True(t, chat.lastReq.Thinking)
	assert.Contains(t, chat.lastReq.Prompt, "128")
	assert.Contains(t, chat.lastReq.Prompt, Delimiter)
	assert.Contains(t, chat.lastReq.Prompt, text)
}

func TestSplitMeasuresRunesNotBytes(t *testing.T) {
	chat := &stubChat{}
	s := New(chat, Options{MaxLength: 10})

	// 10 CJK runes are 30 bytes but still within the budget.
	segments, err := s.Split(context.Background(), "十个汉字刚好在预算内")

	require.NoError(t, err)
	assert.Len(t, segments, 1)
	assert.Zero(t, chat.calls)
}

func TestSplitPropagatesChatError(t *testing.T) {
	chat := &stubChat{err: errors.New("connection reset")}
	s := New(chat, Options{MaxLength: 10})

	_, err := s.Split(context.Background(), "this text is longer than ten runes")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestSentenceSplitPacksSentencesUnderBudget(t *testing.T) {
	text := "One. Two. Three. Four."

	segments := SentenceSplit(text, 13)

	assert.Equal(t, []string{"One. Two.", "Three. Four."}, segments)
}

func TestSentenceSplitHandlesCJKPunctuation(t *testing.T) {
	segments := SentenceSplit("你好。世界！再见？", 4)

	assert.Equal(t, []string{"你好。", "世界！", "再见？"}, segments)
}

func TestSentenceSplitHardSplitsOversizedSentence(t *testing.T) {
	long := strings.Repeat("a", 25)

	segments := SentenceSplit(long, 10)

	require.Len(t, segments, 3)
	assert.Equal(t, strings.Repeat("a", 10), segments[0])
	assert.Equal(t, strings.Repeat("a", 10), segments[1])
	assert.Equal(t, strings.Repeat("a", 5), segments[2])
}

func TestSentenceSplitEmptyText(t *testing.T) {
	assert.Empty(t, SentenceSplit("", 100))
}
