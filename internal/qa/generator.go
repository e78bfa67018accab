// ABOUTME: Generates preview question/answer pairs from transcript text
// ABOUTME: Batches segments per model call; failed batches are skipped, never fatal
package qa

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/learnrise/learnrise/internal/models"
)

// DefaultBatchSize is how many segments feed one model call
const DefaultBatchSize = 8

const qaSystemPrompt = `You are an English-learning assistant. Given a passage from a video transcript,
write ONE comprehension question about the passage and its answer.
Return ONLY a JSON object: {"question": "...", "answer": "..."}. No additional text.`

// Chatter is the slice of the LLM client the generator needs
type Chatter interface {
	Chat(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// Generator produces QA pairs from transcript segments
type Generator struct {
	client    Chatter
	batchSize int
}

// New creates a Generator. batchSize <= 0 falls back to the default.
func New(client Chatter, batchSize int) *Generator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Generator{client: client, batchSize: batchSize}
}

// Generate produces one QA pair per batch of segment texts. Batches whose
// generation or parsing fails are counted in skipped and omitted from pairs.
func (g *Generator) Generate(ctx context.Context, texts []string) ([]models.QAPair, int, error) {
	var pairs []models.QAPair
	skipped := 0

	for _, batch := range g.batches(texts) {
		pair, err := g.generateOne(ctx, batch)
		if err != nil {
			skipped++
			continue
		}
		pairs = append(pairs, pair)
	}

	return pairs, skipped, nil
}

// batches groups non-empty texts into passages of batchSize segments
func (g *Generator) batches(texts []string) []string {
	var cleaned []string
	for _, t := range texts {
		if strings.TrimSpace(t) != "" {
			cleaned = append(cleaned, strings.TrimSpace(t))
		}
	}

	var out []string
	for start := 0; start < len(cleaned); start += g.batchSize {
		end := start + g.batchSize
		if end > len(cleaned) {
			end = len(cleaned)
		}
		out = append(out, strings.Join(cleaned[start:end], " "))
	}
	return out
}

func (g *Generator) generateOne(ctx context.Context, passage string) (models.QAPair, error) {
	answer, err := g.client.Chat(ctx, []models.ChatMessage{
		{Role: models.RoleSystem, Content: qaSystemPrompt},
		{Role: models.RoleUser, Content: "Passage:\n\n" + passage},
	})
	if err != nil {
		return models.QAPair{}, err
	}

	return parsePair(answer)
}

// parsePair extracts the {"question","answer"} object from the model output,
// tolerating surrounding prose or code fences.
func parsePair(raw string) (models.QAPair, error) {
	raw = strings.TrimSpace(raw)
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}

	var pair models.QAPair
	if err := json.Unmarshal([]byte(raw), &pair); err != nil {
		return models.QAPair{}, err
	}

	pair.Question = strings.TrimSpace(pair.Question)
	pair.Answer = strings.TrimSpace(pair.Answer)
	if pair.Question == "" || pair.Answer == "" {
		return models.QAPair{}, errEmptyPair
	}
	return pair, nil
}

var errEmptyPair = &emptyPairError{}

type emptyPairError struct{}

func (*emptyPairError) Error() string { return "model returned an empty question or answer" }
