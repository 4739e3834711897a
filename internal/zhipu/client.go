// Package zhipu implements a minimal HTTP client for the Zhipu AI open
// platform, covering the two operations the conversion pipeline needs:
// chat completions and speech synthesis.
package zhipu

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the standard Zhipu open platform endpoint.
	DefaultBaseURL = "https://open.bigmodel.cn/api/paas/v4"
	// CodingPlanBaseURL is the endpoint used by coding-plan subscriptions.
	CodingPlanBaseURL = "https://open.bigmodel.cn/api/coding/paas/v4"

	speechModel = "glm-tts"
)

var (
	// ErrChatAPI indicates a transport failure or malformed response from
	// the chat-completion service.
	ErrChatAPI = errors.New("chat api error")
	// ErrSpeechAPI indicates a transport failure, non-success status, or
	// empty response from the speech-synthesis service.
	ErrSpeechAPI = errors.New("speech api error")
)

// Config holds client construction parameters.
type Config struct {
	APIKey     string
	BaseURL    string // overrides the default endpoint when set
	CodingPlan bool   // route requests through the coding-plan endpoint
	HTTPClient *http.Client
}

// Client talks to the Zhipu API. Both operations are stateless network
// calls and safe to retry.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client with defaults applied.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.CodingPlan {
			baseURL = CodingPlanBaseURL
		} else {
			baseURL = DefaultBaseURL
		}
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// ChatRequest is a single system+user exchange.
type ChatRequest struct {
	Model    string
	System   string
	Prompt   string
	Thinking bool // must only be set for models that support it
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type thinkingOption struct {
	Type string `json:"type"`
}

type chatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []chatMessage   `json:"messages"`
	Thinking *thinkingOption `json:"thinking,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ChatCompletion sends one chat exchange and returns the first choice's
// message content.
func (c *Client) ChatCompletion(ctx context.Context, req ChatRequest) (string, error) {
	body := chatCompletionRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.Prompt},
		},
	}
	if req.Thinking {
		body.Thinking = &thinkingOption{Type: "enabled"}
	}

	respBody, err := c.post(ctx, "/chat/completions", body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrChatAPI, err)
	}

	var resp chatCompletionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrChatAPI, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: response has no message content", ErrChatAPI)
	}
	return resp.Choices[0].Message.Content, nil
}

// SpeechRequest holds the parameters for one synthesis call.
type SpeechRequest struct {
	Input  string
	Voice  string
	Speed  float64
	Volume float64
}

// speechRequest always carries speed and volume: 0.0 is a valid clamped
// volume, so neither field may be dropped from the wire body.
type speechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	Speed          float64 `json:"speed"`
	Volume         float64 `json:"volume"`
	ResponseFormat string  `json:"response_format"`
}

// Synthesize converts one text string to WAV-encoded audio bytes.
func (c *Client) Synthesize(ctx context.Context, req SpeechRequest) ([]byte, error) {
	body := speechRequest{
		Model:          speechModel,
		Input:          req.Input,
		Voice:          req.Voice,
		Speed:          req.Speed,
		Volume:         req.Volume,
		ResponseFormat: "wav",
	}

	audio, err := c.post(ctx, "/audio/speech", body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpeechAPI, err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: received empty audio data", ErrSpeechAPI)
	}
	return audio, nil
}

func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request %s: %v", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, respBody)
	}
	return respBody, nil
}
