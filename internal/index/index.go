// ABOUTME: In-memory vector index with cosine similarity search over document chunks
// ABOUTME: Build replaces the index wholesale, Add appends, Search never mutates
package index

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/learnrise/learnrise/internal/errdefs"
	"github.com/learnrise/learnrise/internal/models"
)

// DefaultTopK is the default number of search results
const DefaultTopK = 6

// Embedder produces an embedding vector for a piece of text.
// The same embedder must be used at build time and query time.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float64, error)
}

// entry is one indexed chunk and its embedding
type entry struct {
	chunk  models.DocumentChunk
	vector []float64
}

// Index is an in-memory vector index over document chunks
type Index struct {
	embedder Embedder

	mu      sync.RWMutex
	entries []entry
	built   bool
}

// New creates an empty Index using the given embedder
func New(embedder Embedder) *Index {
	return &Index{embedder: embedder}
}

// Build embeds the chunks and replaces any previous index contents
func (ix *Index) Build(ctx context.Context, chunks []models.DocumentChunk) error {
	entries, err := ix.embedAll(ctx, chunks)
	if err != nil {
		return err
	}

	ix.mu.Lock()
	ix.entries = entries
	ix.built = true
	ix.mu.Unlock()
	return nil
}

// Add embeds the chunks and appends them to the index. No-op on empty input.
func (ix *Index) Add(ctx context.Context, chunks []models.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	entries, err := ix.embedAll(ctx, chunks)
	if err != nil {
		return err
	}

	ix.mu.Lock()
	ix.entries = append(ix.entries, entries...)
	ix.built = true
	ix.mu.Unlock()
	return nil
}

// Len returns the number of indexed chunks
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Search embeds the query and returns at most k chunks ordered by
// decreasing cosine similarity. Fails with INDEX_EMPTY before the first Build.
func (ix *Index) Search(ctx context.Context, query string, k int) ([]models.SearchResult, error) {
	ix.mu.RLock()
	built := ix.built
	ix.mu.RUnlock()
	if !built {
		return nil, errdefs.New(errdefs.CodeIndexEmpty, "no transcript has been indexed yet")
	}

	if k <= 0 {
		k = DefaultTopK
	}

	queryVector, err := ix.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, wrapEmbedErr(err, "failed to embed query")
	}

	ix.mu.RLock()
	results := make([]models.SearchResult, 0, len(ix.entries))
	for _, e := range ix.entries {
		results = append(results, models.SearchResult{
			Chunk:      e.chunk,
			Similarity: cosineSimilarity(queryVector, e.vector),
		})
	}
	ix.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func (ix *Index) embedAll(ctx context.Context, chunks []models.DocumentChunk) ([]entry, error) {
	entries := make([]entry, 0, len(chunks))
	for _, chunk := range chunks {
		vector, err := ix.embedder.EmbedText(ctx, chunk.Text)
		if err != nil {
			return nil, wrapEmbedErr(err, "failed to embed chunk "+chunk.ChunkID)
		}
		if len(vector) == 0 {
			return nil, errdefs.New(errdefs.CodeEmbeddingFailed, "embedding backend returned an empty vector")
		}
		entries = append(entries, entry{chunk: chunk, vector: vector})
	}
	return entries, nil
}

func wrapEmbedErr(err error, message string) error {
	if errdefs.Is(err, errdefs.CodeEmbeddingFailed) {
		return err
	}
	return errdefs.Wrap(err, errdefs.CodeEmbeddingFailed, message)
}

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
