// ABOUTME: DocumentChunk is a bounded span of transcript text used for retrieval
// ABOUTME: Chunks are immutable once created and owned by the vector index
package models

import "github.com/google/uuid"

// DocumentChunk is one retrieval unit cut from a transcript
type DocumentChunk struct {
	ChunkID  string `json:"chunk_id"`
	Text     string `json:"text"`
	SourceID string `json:"source_id"`
	Position int    `json:"position"`
}

// NewDocumentChunk creates a chunk with a generated ID
func NewDocumentChunk(text, sourceID string, position int) DocumentChunk {
	return DocumentChunk{
		ChunkID:  "chunk_" + uuid.New().String(),
		Text:     text,
		SourceID: sourceID,
		Position: position,
	}
}
