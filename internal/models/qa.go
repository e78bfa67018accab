// ABOUTME: QAPair is one synthetic question/answer generated from transcript text
// ABOUTME: Ephemeral preview data, returned to the caller and never persisted
package models

// QAPair is a generated question with its answer
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SearchResult pairs a chunk with its similarity to a query embedding
type SearchResult struct {
	Chunk      DocumentChunk `json:"chunk"`
	Similarity float64       `json:"similarity"`
}
