// ABOUTME: HTTP server wiring for the learnrise API
// ABOUTME: Mounts the JSON endpoints with request logging and graceful shutdown
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/learnrise/learnrise/internal/audio"
	"github.com/learnrise/learnrise/internal/chat"
	"github.com/learnrise/learnrise/internal/chunker"
	"github.com/learnrise/learnrise/internal/config"
	"github.com/learnrise/learnrise/internal/llm"
	"github.com/learnrise/learnrise/internal/models"
	"github.com/learnrise/learnrise/internal/qa"
	"github.com/learnrise/learnrise/internal/transcript"
)

// Fetcher retrieves transcript segments for a video locator
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]models.TranscriptSegment, error)
}

// ModelClient is the slice of the LLM client the handlers need
type ModelClient interface {
	Chat(ctx context.Context, messages []models.ChatMessage) (string, error)
	EmbedText(ctx context.Context, text string) ([]float64, error)
	ExplainWord(ctx context.Context, word, sentence string) (string, error)
}

// QAGenerator produces preview question/answer pairs
type QAGenerator interface {
	Generate(ctx context.Context, texts []string) ([]models.QAPair, int, error)
}

// AudioDecoder converts uploaded audio into a waveform
type AudioDecoder interface {
	Decode(ctx context.Context, r io.Reader) (audio.Waveform, error)
}

// SpeechTranscriber turns a waveform into text
type SpeechTranscriber interface {
	Transcribe(ctx context.Context, wf audio.Waveform) (string, error)
}

// Server hosts the learnrise HTTP API
type Server struct {
	cfg    *config.Config
	logger *logrus.Entry

	fetcher     Fetcher
	chunker     *chunker.Chunker
	model       ModelClient
	qa          QAGenerator
	registry    *chat.Registry
	decoder     AudioDecoder
	transcriber SpeechTranscriber

	httpServer *http.Server
}

// New assembles a Server with production components from the configuration
func New(cfg *config.Config, logger *logrus.Entry) *Server {
	client := llm.NewClient(llm.ClientConfig{
		BaseURL:        cfg.BaseURL,
		APIKey:         cfg.APIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Temperature:    cfg.ChatTemperature,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})

	return &Server{
		cfg:      cfg,
		logger:   logger,
		fetcher:  transcript.NewFetcher(cfg.Timeout),
		chunker:  chunker.New(cfg.ChunkSize, cfg.ChunkOverlap),
		model:    client,
		qa:       qa.New(client, cfg.QABatchSize),
		registry: chat.NewRegistry(),
		decoder:  audio.NewDecoder(cfg.FFmpegPath),
		transcriber: audio.NewTranscriber(audio.TranscriberConfig{
			BaseURL:    cfg.WhisperBaseURL,
			APIKey:     cfg.APIKey,
			Model:      cfg.WhisperModel,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
		}),
	}
}

// Handler returns the routed HTTP handler with logging middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/process_transcript", s.post(s.handleProcessTranscript))
	mux.HandleFunc("/process_input", s.post(s.handleProcessInput))
	mux.HandleFunc("/transcribe", s.post(s.handleTranscribe))
	mux.HandleFunc("/subtitles", s.post(s.handleSubtitles))
	mux.HandleFunc("/chatbot", s.post(s.handleChatbot))

	return s.logRequests(mux)
}

// ListenAndServe starts the server on the configured address and blocks
func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
	}
	s.logger.WithField("addr", s.cfg.Addr).Info("learnrise server listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// post rejects non-POST methods before invoking the handler
func (s *Server) post(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

// statusRecorder captures the response status for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).Round(time.Millisecond).String(),
		}).Info("request")
	})
}
