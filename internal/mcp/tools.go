// ABOUTME: MCP tool definitions and registration for the learnrise server
// ABOUTME: Defines JSON schemas for the video, chat, search, and word lookup tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/learnrise/learnrise/internal/chat"
	"github.com/learnrise/learnrise/internal/chunker"
	"github.com/learnrise/learnrise/internal/config"
	"github.com/learnrise/learnrise/internal/llm"
	"github.com/learnrise/learnrise/internal/qa"
	"github.com/learnrise/learnrise/internal/transcript"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, cfg *config.Config, fetcher *transcript.Fetcher, splitter *chunker.Chunker, client *llm.Client, generator *qa.Generator) *Handlers {
	handlers := &Handlers{
		cfg:       cfg,
		fetcher:   fetcher,
		chunker:   splitter,
		client:    client,
		generator: generator,
		registry:  chat.NewRegistry(),
	}

	// 1. load_video - Fetch and index a YouTube transcript
	server.AddTool(mcp.Tool{
		Name:        "load_video",
		Description: "Fetch the transcript of a YouTube video, index it for retrieval, and start a fresh chat session grounded in it. Returns generated comprehension questions.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"url": map[string]interface{}{
					"type":        "string",
					"description": "YouTube video URL or bare 11-character video ID",
				},
			},
			Required: []string{"url"},
		},
	}, handlers.LoadVideo)

	// 2. ask - Ask a question about the loaded video
	server.AddTool(mcp.Tool{
		Name:        "ask",
		Description: "Ask a question about the currently loaded video. The answer is grounded in the transcript and the running conversation.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question about the video content",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.Ask)

	// 3. search_transcript - Semantic search over the indexed transcript
	server.AddTool(mcp.Tool{
		Name:        "search_transcript",
		Description: "Search the indexed transcript for passages most similar to a query. Returns the matching chunks with similarity scores.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 6)",
					"default":     6,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchTranscript)

	// 4. explain_word - Explain a word in the context of a sentence
	server.AddTool(mcp.Tool{
		Name:        "explain_word",
		Description: "Explain an English word for a language learner, using the sentence it appeared in for context.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"word": map[string]interface{}{
					"type":        "string",
					"description": "Word to explain",
				},
				"sentence": map[string]interface{}{
					"type":        "string",
					"description": "Sentence the word appeared in",
				},
			},
			Required: []string{"word"},
		},
	}, handlers.ExplainWord)

	return handlers
}
