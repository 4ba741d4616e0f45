// ABOUTME: MCP tool handler implementations for the cardscan server
// ABOUTME: Runs the query path (embed, normalize, search) behind each tool
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harper/cardscan/internal/embed"
	"github.com/harper/cardscan/internal/index"
	"github.com/harper/cardscan/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	index    *index.Index
	embedder embed.Embedder
}

// IdentifyCard handles the identify_card tool
func (h *Handlers) IdentifyCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	imagePath, err := request.RequireString("image_path")
	if err != nil {
		return mcp.NewToolResultError("image_path argument is required and must be a string"), nil
	}

	maxResults := request.GetInt("max_results", 5)
	if maxResults <= 0 {
		return mcp.NewToolResultError("max_results must be positive"), nil
	}

	if h.embedder == nil {
		return mcp.NewToolResultError("no embedding backend configured (set OPENAI_API_KEY)"), nil
	}

	query, err := h.embedder.Embed(ctx, imagePath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("embedding failed: %v", err)), nil
	}
	models.Normalize(query)

	matches := index.Search(h.index, query, maxResults)

	response := map[string]interface{}{
		"matches": matches,
		"count":   len(matches),
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// LookupCard handles the lookup_card tool
func (h *Handlers) LookupCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cardID, err := request.RequireString("card_id")
	if err != nil {
		return mcp.NewToolResultError("card_id argument is required and must be a string"), nil
	}

	response := map[string]interface{}{
		"card_id": cardID,
		"indexed": h.index.Has(cardID),
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// IndexStats handles the index_stats tool
func (h *Handlers) IndexStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dimension := 0
	if h.embedder != nil {
		dimension = h.embedder.Dimension()
	}

	response := map[string]interface{}{
		"cards":     h.index.Len(),
		"dimension": dimension,
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
