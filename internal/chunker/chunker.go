// ABOUTME: Chunker splits transcript text into overlapping retrieval-sized pieces
// ABOUTME: Boundaries prefer paragraph, sentence, then word breaks before hard cuts
package chunker

import (
	"strings"

	"github.com/learnrise/learnrise/internal/models"
)

const (
	// DefaultSize is the maximum chunk length in characters
	DefaultSize = 400
	// DefaultOverlap is the number of characters shared between consecutive chunks
	DefaultOverlap = 20
)

// separators tried in order when looking for a natural chunk boundary
var separators = []string{"\n\n", "\n", ". ", " "}

// Chunker cuts text into overlapping chunks of bounded size
type Chunker struct {
	Size    int
	Overlap int
}

// New creates a Chunker, falling back to defaults for non-positive values
func New(size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultOverlap
	}
	return &Chunker{Size: size, Overlap: overlap}
}

// Split cuts text into chunks of at most Size characters where each
// consecutive pair shares exactly Overlap characters. Every input
// character appears in at least one chunk.
func (c *Chunker) Split(text string) []string {
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil
	}
	if n <= c.Size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < n {
		end := start + c.Size
		if end >= n {
			chunks = append(chunks, string(runes[start:n]))
			break
		}

		cut := c.findBreak(runes, start, end)
		chunks = append(chunks, string(runes[start:cut]))
		start = cut - c.Overlap
	}

	return chunks
}

// findBreak returns the cut position in (start, end], preferring a natural
// separator in the back half of the window over a hard character cut.
// The cut always lands far enough past start that the next chunk makes progress.
func (c *Chunker) findBreak(runes []rune, start, end int) int {
	window := string(runes[start:end])
	// Never cut so early that the next start (cut - overlap) fails to advance
	floor := c.Overlap + 1
	if half := c.Size / 2; half > floor {
		floor = half
	}

	for _, sep := range separators {
		idx := strings.LastIndex(window, sep)
		if idx < 0 {
			continue
		}
		// Cut after the separator so it stays attached to the left chunk
		cut := len([]rune(window[:idx+len(sep)]))
		if cut >= floor {
			return start + cut
		}
	}

	return end
}

// SplitSegments chunks the joined text of the segments, tagging each chunk
// with the source identifier and its sequential position.
func (c *Chunker) SplitSegments(segments []models.TranscriptSegment, sourceID string) []models.DocumentChunk {
	texts := c.Split(models.FullText(segments))
	chunks := make([]models.DocumentChunk, 0, len(texts))
	for i, text := range texts {
		chunks = append(chunks, models.NewDocumentChunk(text, sourceID, i))
	}
	return chunks
}
