// ABOUTME: Transcriber sends decoded waveforms to the speech model endpoint
// ABOUTME: Uses the OpenAI transcription API shape served by Whisper-compatible servers
package audio

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/learnrise/learnrise/internal/errdefs"
	"github.com/learnrise/learnrise/internal/util"
)

// TranscriberConfig holds configuration for the speech backend
type TranscriberConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Transcriber converts waveforms into transcript text
type Transcriber struct {
	api        *openai.Client
	model      string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewTranscriber creates a Transcriber for the configured speech backend
func NewTranscriber(cfg TranscriberConfig) *Transcriber {
	if cfg.Model == "" {
		cfg.Model = "whisper-1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiConfig.BaseURL = cfg.BaseURL
	}

	return &Transcriber{
		api:        openai.NewClientWithConfig(apiConfig),
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}
}

// Transcribe sends the waveform to the speech model and returns plain text
func (t *Transcriber) Transcribe(ctx context.Context, wf Waveform) (string, error) {
	if wf.SampleCount() == 0 {
		return "", errdefs.New(errdefs.CodeMalformedInput, "waveform is empty")
	}
	wav := wf.WAV()

	var lastErr error
	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.Backoff(t.retryDelay, attempt))
		}

		attemptCtx, cancel := context.WithTimeout(ctx, t.timeout)
		resp, err := t.api.CreateTranscription(attemptCtx, openai.AudioRequest{
			Model:    t.model,
			Reader:   bytes.NewReader(wav),
			FilePath: "input.wav",
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		return strings.TrimSpace(resp.Text), nil
	}

	return "", errdefs.Wrap(lastErr, errdefs.CodeTranscriptionFailed,
		fmt.Sprintf("transcription failed after %d attempts", t.maxRetries+1))
}
