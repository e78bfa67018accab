// ABOUTME: Client for chat completions and embeddings against an OpenAI-compatible backend
// ABOUTME: Normalizes every backend response to a plain string at this boundary
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/learnrise/learnrise/internal/errdefs"
	"github.com/learnrise/learnrise/internal/models"
	"github.com/learnrise/learnrise/internal/util"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "gemma3:4b"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = "nomic-embed-text"
)

// ClientConfig holds configuration for the model backend client
type ClientConfig struct {
	BaseURL        string
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	Temperature    float64
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// Client wraps the OpenAI-compatible API with retry logic.
// It is the only place backend response shapes are interpreted; callers
// always receive a single answer string or a coded error.
type Client struct {
	api            *openai.Client
	chatModel      string
	embeddingModel string
	temperature    float32
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

// NewClient creates a Client for the configured backend
func NewClient(cfg ClientConfig) *Client {
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:            openai.NewClientWithConfig(apiConfig),
		chatModel:      cfg.ChatModel,
		embeddingModel: cfg.EmbeddingModel,
		temperature:    float32(cfg.Temperature),
		timeout:        cfg.Timeout,
		maxRetries:     cfg.MaxRetries,
		retryDelay:     cfg.RetryDelay,
	}
}

// Chat sends the conversation to the chat model and returns the answer text
func (c *Client) Chat(ctx context.Context, messages []models.ChatMessage) (string, error) {
	apiMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		apiMessages = append(apiMessages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.Backoff(c.retryDelay, attempt))
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.api.CreateChatCompletion(attemptCtx, openai.ChatCompletionRequest{
			Model:       c.chatModel,
			Messages:    apiMessages,
			Temperature: c.temperature,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		answer, err := normalizeCompletion(resp)
		if err != nil {
			lastErr = err
			continue
		}
		return answer, nil
	}

	if err, ok := lastErr.(*errdefs.Error); ok {
		return "", err
	}
	return "", errdefs.Wrap(lastErr, errdefs.CodeUpstreamUnavailable,
		fmt.Sprintf("chat completion failed after %d attempts", c.maxRetries+1))
}

// normalizeCompletion reduces a completion response to one answer string
func normalizeCompletion(resp openai.ChatCompletionResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", errdefs.New(errdefs.CodeUnrecognizedResponse, "model returned no completion choices")
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", errdefs.New(errdefs.CodeUnrecognizedResponse, "model returned an empty answer")
	}
	return answer, nil
}

// EmbedText generates an embedding vector for the given text
func (c *Client) EmbedText(ctx context.Context, text string) ([]float64, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.Backoff(c.retryDelay, attempt))
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.api.CreateEmbeddings(attemptCtx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: openai.EmbeddingModel(c.embeddingModel),
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
			lastErr = fmt.Errorf("attempt %d: no embedding returned", attempt+1)
			continue
		}

		embedding32 := resp.Data[0].Embedding
		embedding64 := make([]float64, len(embedding32))
		for i, v := range embedding32 {
			embedding64[i] = float64(v)
		}
		return embedding64, nil
	}

	return nil, errdefs.Wrap(lastErr, errdefs.CodeEmbeddingFailed,
		fmt.Sprintf("embedding failed after %d attempts", c.maxRetries+1))
}
