// ABOUTME: MCP tool definitions and registration for the tweet simulator
// ABOUTME: Exposes retrieval, simulation, and corpus listing to LLM agents
package mcp

import (
	"github.com/harper/tweetsim/internal/core"
	"github.com/harper/tweetsim/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server.
// simulator may be nil when no chat model is configured.
func RegisterTools(server *mcpserver.MCPServer, store storage.Store, retriever *core.Retriever, simulator *core.Simulator) *Handlers {
	handlers := NewHandlers(store, retriever, simulator)

	queryProperties := map[string]interface{}{
		"celebrity": map[string]interface{}{
			"type":        "string",
			"description": "Celebrity name exactly as it appears in the corpus",
		},
		"event": map[string]interface{}{
			"type":        "string",
			"description": "Free-text description of the event to react to",
		},
		"top_k": map[string]interface{}{
			"type":        "number",
			"description": "Number of past tweets to retrieve (default: 5)",
			"default":     core.DefaultTopK,
		},
	}

	// 1. retrieve_tweets - nearest past tweets for a celebrity and event
	server.AddTool(mcp.Tool{
		Name:        "retrieve_tweets",
		Description: "Retrieve a celebrity's past tweets most similar to an event description, most similar first.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: queryProperties,
			Required:   []string{"celebrity", "event"},
		},
	}, handlers.RetrieveTweets)

	// 2. simulate_tweets - full prompt pipeline with one LLM call
	server.AddTool(mcp.Tool{
		Name:        "simulate_tweets",
		Description: "Generate 2-3 plausible new tweets in a celebrity's style reacting to an event, grounded on their retrieved past tweets.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: queryProperties,
			Required:   []string{"celebrity", "event"},
		},
	}, handlers.SimulateTweets)

	// 3. list_celebrities - corpus overview
	server.AddTool(mcp.Tool{
		Name:        "list_celebrities",
		Description: "List every celebrity in the indexed corpus with tweet counts and date ranges.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListCelebrities)

	return handlers
}
