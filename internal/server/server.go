// Package server exposes the conversion pipeline over HTTP. Conversions run
// synchronously within the request; no job state survives the process.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/AnlangA/text2audio"
)

// converter is the subset of text2audio.Converter the handler needs;
// indirected so tests can stub the pipeline.
type converter interface {
	Convert(ctx context.Context, text, outputPath string) error
}

// Server routes speech requests to the conversion pipeline.
type Server struct {
	apiKey       string
	newConverter func(opts ...text2audio.Option) converter
}

// New creates a Server that authenticates against the API with apiKey.
func New(apiKey string) *Server {
	return &Server{
		apiKey: apiKey,
		newConverter: func(opts ...text2audio.Option) converter {
			return text2audio.New(apiKey, opts...)
		},
	}
}

// Setup builds the HTTP handler.
func (s *Server) Setup() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(10 * time.Minute))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Post("/v1/speech", s.handleSpeech)

	return r
}

type speechRequest struct {
	Text             string  `json:"text"`
	Model            string  `json:"model,omitempty"`
	Voice            string  `json:"voice,omitempty"`
	Speed            float64 `json:"speed,omitempty"`
	Volume           float64 `json:"volume,omitempty"`
	MaxSegmentLength int     `json:"max_segment_length,omitempty"`
	Parallel         int     `json:"parallel,omitempty"`
	Thinking         bool    `json:"thinking,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleSpeech converts the request text and streams the merged WAV back.
func (s *Server) handleSpeech(w http.ResponseWriter, r *http.Request) {
	var req speechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	conv := s.newConverter(optionsFor(req)...)

	outPath := filepath.Join(os.TempDir(), "t2a-"+uuid.NewString()+".wav")
	defer os.Remove(outPath)

	if err := conv.Convert(r.Context(), req.Text, outPath); err != nil {
		if errors.Is(err, text2audio.ErrEmptyInput) {
			writeError(w, http.StatusBadRequest, "text must not be empty")
			return
		}
		slog.Error("conversion failed", "error", err,
			"request_id", chimiddleware.GetReqID(r.Context()))
		writeError(w, http.StatusBadGateway, "conversion failed")
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	http.ServeFile(w, r, outPath)
}

func optionsFor(req speechRequest) []text2audio.Option {
	var opts []text2audio.Option
	if req.Model != "" {
		opts = append(opts, text2audio.WithModel(text2audio.Model(req.Model)))
	}
	if req.Voice != "" {
		opts = append(opts, text2audio.WithVoice(text2audio.Voice(req.Voice)))
	}
	if req.Speed > 0 {
		opts = append(opts, text2audio.WithSpeed(req.Speed))
	}
	if req.Volume > 0 {
		opts = append(opts, text2audio.WithVolume(req.Volume))
	}
	if req.MaxSegmentLength > 0 {
		opts = append(opts, text2audio.WithMaxSegmentLength(req.MaxSegmentLength))
	}
	if req.Parallel > 0 {
		opts = append(opts, text2audio.WithParallel(req.Parallel))
	}
	if req.Thinking {
		opts = append(opts, text2audio.WithThinking(true))
	}
	return opts
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
