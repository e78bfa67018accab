// ABOUTME: MCP tool handler implementations for the learnrise server
// ABOUTME: Wires transcript loading, retrieval chat, search, and word lookup into MCP results
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/learnrise/learnrise/internal/chat"
	"github.com/learnrise/learnrise/internal/chunker"
	"github.com/learnrise/learnrise/internal/config"
	"github.com/learnrise/learnrise/internal/errdefs"
	"github.com/learnrise/learnrise/internal/index"
	"github.com/learnrise/learnrise/internal/llm"
	"github.com/learnrise/learnrise/internal/models"
	"github.com/learnrise/learnrise/internal/qa"
	"github.com/learnrise/learnrise/internal/transcript"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	cfg       *config.Config
	fetcher   *transcript.Fetcher
	chunker   *chunker.Chunker
	client    *llm.Client
	generator *qa.Generator
	registry  *chat.Registry

	mu  sync.RWMutex
	idx *index.Index // index behind the current session, nil until load_video
}

// LoadVideo handles the load_video tool
func (h *Handlers) LoadVideo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url argument is required and must be a string"), nil
	}

	segments, err := h.fetcher.Fetch(ctx, url)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("transcript fetch failed: %v", err)), nil
	}

	videoID, _ := transcript.ExtractVideoID(url)
	chunks := h.chunker.SplitSegments(segments, videoID)

	idx := index.New(h.client)
	if err := idx.Build(ctx, chunks); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("indexing failed: %v", err)), nil
	}

	pairs, skipped, err := h.generator.Generate(ctx, models.SegmentTexts(segments))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("question generation failed: %v", err)), nil
	}

	session := chat.NewSession(idx, h.client, chat.Options{
		TopK:       h.cfg.TopK,
		MaxHistory: h.cfg.MaxHistory,
	})
	token := h.registry.Replace(session)
	h.mu.Lock()
	h.idx = idx
	h.mu.Unlock()

	questions := make([]map[string]string, 0, len(pairs))
	for _, p := range pairs {
		questions = append(questions, map[string]string{
			"question": p.Question,
			"answer":   p.Answer,
		})
	}

	response := map[string]interface{}{
		"video_id":      videoID,
		"session_token": token,
		"segment_count": len(segments),
		"chunk_count":   len(chunks),
		"qa_pairs":      questions,
		"qa_skipped":    skipped,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// Ask handles the ask tool
func (h *Handlers) Ask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	session, err := h.registry.Current()
	if err != nil {
		return mcp.NewToolResultError(errdefs.MessageOf(err)), nil
	}

	answer, err := session.ProcessTurn(ctx, question)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("chat turn failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"question": question,
		"answer":   answer,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SearchTranscript handles the search_transcript tool
func (h *Handlers) SearchTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	maxResults := request.GetInt("max_results", index.DefaultTopK)

	h.mu.RLock()
	idx := h.idx
	h.mu.RUnlock()
	if idx == nil {
		return mcp.NewToolResultError("Please process a transcript first"), nil
	}

	results, err := idx.Search(ctx, query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	matches := make([]map[string]interface{}, 0, len(results))
	for _, r := range results {
		matches = append(matches, map[string]interface{}{
			"chunk_id":   r.Chunk.ChunkID,
			"source_id":  r.Chunk.SourceID,
			"position":   r.Chunk.Position,
			"text":       r.Chunk.Text,
			"similarity": r.Similarity,
		})
	}

	responseJSON, err := json.Marshal(map[string]interface{}{"results": matches})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ExplainWord handles the explain_word tool
func (h *Handlers) ExplainWord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	word, err := request.RequireString("word")
	if err != nil {
		return mcp.NewToolResultError("word argument is required and must be a string"), nil
	}

	sentence := request.GetString("sentence", "")

	explanation, err := h.client.ExplainWord(ctx, word, sentence)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("word lookup failed: %v", err)), nil
	}

	return mcp.NewToolResultText(explanation), nil
}
