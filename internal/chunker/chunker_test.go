// ABOUTME: Tests for overlapping text chunking
// ABOUTME: Verifies size bounds, overlap, and lossless reconstruction
package chunker

import (
	"strings"
	"testing"
)

// reconstruct stitches chunks back together by dropping each chunk's
// leading overlap, which must reproduce the original text exactly.
func reconstruct(chunks []string, overlap int) string {
	if len(chunks) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(chunks[0])
	for _, chunk := range chunks[1:] {
		runes := []rune(chunk)
		if len(runes) > overlap {
			b.WriteString(string(runes[overlap:]))
		}
	}
	return b.String()
}

func TestSplit_ShortText(t *testing.T) {
	c := New(400, 20)

	text := "This fits in one chunk."
	chunks := c.Split(text)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("chunk = %q, want %q", chunks[0], text)
	}
}

func TestSplit_Empty(t *testing.T) {
	c := New(400, 20)
	if chunks := c.Split(""); chunks != nil {
		t.Errorf("expected nil for empty text, got %v", chunks)
	}
}

func TestSplit_SizeBound(t *testing.T) {
	c := New(100, 10)
	text := strings.Repeat("lorem ipsum dolor sit amet. ", 50)

	for i, chunk := range c.Split(text) {
		if len([]rune(chunk)) > 100 {
			t.Errorf("chunk %d length %d exceeds size 100", i, len([]rune(chunk)))
		}
	}
}

func TestSplit_Reconstruction(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		text    string
	}{
		{"sentences", 80, 10, strings.Repeat("The quick brown fox jumps over the lazy dog. ", 20)},
		{"paragraphs", 120, 20, strings.Repeat("First paragraph of prose here.\n\nSecond paragraph follows it.\n\n", 10)},
		{"no separators", 50, 5, strings.Repeat("x", 500)},
		{"unicode", 60, 8, strings.Repeat("héllo wörld çafé über naïve résumé. ", 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.size, tt.overlap)
			chunks := c.Split(tt.text)

			if got := reconstruct(chunks, tt.overlap); got != tt.text {
				t.Errorf("reconstruction mismatch:\n got %d chars\nwant %d chars", len(got), len(tt.text))
			}
		})
	}
}

func TestSplit_ConsecutiveOverlap(t *testing.T) {
	c := New(100, 15)
	text := strings.Repeat("Practice makes perfect in every language. ", 30)

	chunks := c.Split(text)
	if len(chunks) < 2 {
		t.Fatal("expected multiple chunks")
	}

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		cur := []rune(chunks[i])
		tail := string(prev[len(prev)-15:])
		head := string(cur[:15])
		if tail != head {
			t.Errorf("chunks %d/%d overlap mismatch: %q vs %q", i-1, i, tail, head)
		}
	}
}

func TestSplit_PrefersSentenceBreaks(t *testing.T) {
	c := New(60, 5)
	text := "Short opener. " + strings.Repeat("Another full sentence right here. ", 10)

	chunks := c.Split(text)
	brokeOnSentence := 0
	for _, chunk := range chunks[:len(chunks)-1] {
		if strings.HasSuffix(chunk, ". ") || strings.HasSuffix(chunk, ".") {
			brokeOnSentence++
		}
	}
	if brokeOnSentence == 0 {
		t.Error("expected at least one sentence-aligned boundary")
	}
}

func TestNew_Defaults(t *testing.T) {
	c := New(0, -1)
	if c.Size != DefaultSize || c.Overlap != DefaultOverlap {
		t.Errorf("New(0,-1) = %d/%d, want %d/%d", c.Size, c.Overlap, DefaultSize, DefaultOverlap)
	}

	// Overlap >= size also falls back
	c = New(100, 100)
	if c.Overlap != DefaultOverlap {
		t.Errorf("overlap >= size should fall back, got %d", c.Overlap)
	}
}
