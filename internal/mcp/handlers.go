// ABOUTME: MCP tool handler implementations for the tweet simulator
// ABOUTME: Failures become tool error results rather than protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/harper/tweetsim/internal/core"
	"github.com/harper/tweetsim/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	store     storage.Store
	retriever *core.Retriever
	simulator *core.Simulator
}

// NewHandlers creates handlers over the given collaborators
func NewHandlers(store storage.Store, retriever *core.Retriever, simulator *core.Simulator) *Handlers {
	return &Handlers{
		store:     store,
		retriever: retriever,
		simulator: simulator,
	}
}

// retrievedTweet is the wire shape of one retrieval hit
type retrievedTweet struct {
	Date  string  `json:"date"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// RetrieveTweets handles the retrieve_tweets tool
func (h *Handlers) RetrieveTweets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	celebrity, event, topK, errResult := queryArgs(request)
	if errResult != nil {
		return errResult, nil
	}

	results, err := h.retriever.Retrieve(ctx, celebrity, event, topK)
	if err != nil {
		return failureResult("retrieval", err), nil
	}

	tweets := make([]retrievedTweet, 0, len(results))
	for _, r := range results {
		tweets = append(tweets, retrievedTweet{Date: r.DateString(), Text: r.Text, Score: r.Score})
	}

	return jsonResult(map[string]interface{}{
		"celebrity": celebrity,
		"event":     event,
		"tweets":    tweets,
	})
}

// SimulateTweets handles the simulate_tweets tool
func (h *Handlers) SimulateTweets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.simulator == nil {
		return mcp.NewToolResultError("simulation unavailable: OPENAI_API_KEY not set"), nil
	}

	celebrity, event, topK, errResult := queryArgs(request)
	if errResult != nil {
		return errResult, nil
	}

	sim, err := h.simulator.Simulate(ctx, celebrity, event, topK)
	if err != nil {
		return failureResult("simulation", err), nil
	}

	examples := make([]retrievedTweet, 0, len(sim.Examples))
	for _, r := range sim.Examples {
		examples = append(examples, retrievedTweet{Date: r.DateString(), Text: r.Text, Score: r.Score})
	}

	return jsonResult(map[string]interface{}{
		"celebrity": sim.Celebrity,
		"event":     sim.Event,
		"examples":  examples,
		"prompt":    sim.Prompt,
		"output":    sim.Output,
	})
}

// ListCelebrities handles the list_celebrities tool
func (h *Handlers) ListCelebrities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summaries, err := h.store.Celebrities()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list celebrities: %v", err)), nil
	}

	celebrities := make([]map[string]interface{}, 0, len(summaries))
	for _, s := range summaries {
		celebrities = append(celebrities, map[string]interface{}{
			"celebrity":   s.Celebrity,
			"tweet_count": s.TweetCount,
			"first_date":  s.FirstDate.Format("2006-01-02"),
			"last_date":   s.LastDate.Format("2006-01-02"),
		})
	}

	return jsonResult(map[string]interface{}{
		"celebrities": celebrities,
		"count":       len(celebrities),
	})
}

// queryArgs extracts the shared celebrity/event/top_k arguments
func queryArgs(request mcp.CallToolRequest) (string, string, int, *mcp.CallToolResult) {
	celebrity, err := request.RequireString("celebrity")
	if err != nil {
		return "", "", 0, mcp.NewToolResultError("celebrity argument is required and must be a string")
	}
	event, err := request.RequireString("event")
	if err != nil {
		return "", "", 0, mcp.NewToolResultError("event argument is required and must be a string")
	}
	topK := request.GetInt("top_k", core.DefaultTopK)
	return celebrity, event, topK, nil
}

// failureResult turns err into a tool error; system failures are also logged
func failureResult(action string, err error) *mcp.CallToolResult {
	if !core.IsUserError(err) {
		log.Printf("[MCP] %s error: %v", action, err)
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", action, err))
}

func jsonResult(response map[string]interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
