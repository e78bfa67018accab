// ABOUTME: Chat session holding history, a bound vector index, and the LLM client
// ABOUTME: Each turn retrieves context, prompts the model, then appends exactly two messages
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/learnrise/learnrise/internal/models"
)

const systemPrompt = "You are a helpful English-learning assistant. Use the provided context from the video transcript to answer the student's questions."

// DefaultMaxHistory bounds the stored conversation length in messages
const DefaultMaxHistory = 40

// Retriever is the slice of the vector index a session needs
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]models.SearchResult, error)
}

// Chatter is the slice of the LLM client a session needs
type Chatter interface {
	Chat(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// Options tunes session behavior
type Options struct {
	TopK       int
	MaxHistory int
}

// Session binds a conversation history to one indexed transcript
type Session struct {
	id        string
	retriever Retriever
	client    Chatter
	topK      int
	maxMsgs   int

	mu      sync.Mutex
	history []models.ChatMessage
}

// NewSession creates a ready session bound to the given index and model client
func NewSession(retriever Retriever, client Chatter, opts Options) *Session {
	if opts.TopK <= 0 {
		opts.TopK = 6
	}
	if opts.MaxHistory < 2 {
		opts.MaxHistory = DefaultMaxHistory
	}
	return &Session{
		id:        "session_" + uuid.New().String(),
		retriever: retriever,
		client:    client,
		topK:      opts.TopK,
		maxMsgs:   opts.MaxHistory,
	}
}

// ID returns the session's opaque token
func (s *Session) ID() string {
	return s.id
}

// History returns a copy of the conversation so far
func (s *Session) History() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// ProcessTurn retrieves context for the user input, prompts the model,
// and on success appends the user message then the assistant message.
// On any failure the history is left unmodified.
//
// Retrieval uses only the latest input, not prior turns.
func (s *Session) ProcessTurn(ctx context.Context, userInput string) (string, error) {
	results, err := s.retriever.Search(ctx, userInput, s.topK)
	if err != nil {
		return "", err
	}

	messages := s.assemblePrompt(results, userInput)

	answer, err := s.client.Chat(ctx, messages)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.history = append(s.history,
		models.ChatMessage{Role: models.RoleUser, Content: userInput},
		models.ChatMessage{Role: models.RoleAssistant, Content: answer},
	)
	// Cap history by dropping the oldest exchanges, two messages at a time
	for len(s.history) > s.maxMsgs {
		s.history = s.history[2:]
	}
	s.mu.Unlock()

	return answer, nil
}

// assemblePrompt builds system + history + context + current question
func (s *Session) assemblePrompt(results []models.SearchResult, userInput string) []models.ChatMessage {
	s.mu.Lock()
	history := make([]models.ChatMessage, len(s.history))
	copy(history, s.history)
	s.mu.Unlock()

	messages := make([]models.ChatMessage, 0, len(history)+2)
	messages = append(messages, models.ChatMessage{Role: models.RoleSystem, Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, models.ChatMessage{
		Role:    models.RoleUser,
		Content: fmt.Sprintf("Context:\n%s\n\nQuestion: %s", formatContext(results), userInput),
	})
	return messages
}

// formatContext renders retrieved chunks with source labels
func formatContext(results []models.SearchResult) string {
	if len(results) == 0 {
		return "No context found."
	}
	pieces := make([]string, 0, len(results))
	for i, r := range results {
		source := r.Chunk.SourceID
		if source == "" {
			source = fmt.Sprintf("doc-%d", i+1)
		}
		pieces = append(pieces, fmt.Sprintf("--- Document %d (source: %s) ---\n%s",
			i+1, source, strings.TrimSpace(r.Chunk.Text)))
	}
	return strings.Join(pieces, "\n\n")
}
