package text2audio

import (
	"errors"

	"github.com/AnlangA/text2audio/internal/wavmerge"
	"github.com/AnlangA/text2audio/internal/zhipu"
)

var (
	// ErrEmptyInput is returned when the input text is blank or
	// whitespace-only.
	ErrEmptyInput = errors.New("input text is empty")

	// ErrConfig is reserved for invalid configuration. Current option
	// setters clamp out-of-range values instead of failing, so it is not
	// produced by this package yet.
	ErrConfig = errors.New("invalid configuration")

	// ErrChatAPI marks chat-completion transport or format failures.
	ErrChatAPI = zhipu.ErrChatAPI

	// ErrSpeechAPI marks speech-synthesis transport or empty-response
	// failures.
	ErrSpeechAPI = zhipu.ErrSpeechAPI

	// ErrAudio marks malformed or absent audio data.
	ErrAudio = wavmerge.ErrAudio
)
