// ABOUTME: MCP tool definitions and registration for the cardscan server
// ABOUTME: Exposes card identification and index inspection to LLM agents
package mcp

import (
	"github.com/harper/cardscan/internal/embed"
	"github.com/harper/cardscan/internal/index"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, idx *index.Index, embedder embed.Embedder) *Handlers {
	handlers := &Handlers{
		index:    idx,
		embedder: embedder,
	}

	// 1. identify_card - Identify a card from a photo
	server.AddTool(mcp.Tool{
		Name:        "identify_card",
		Description: "Identify a trading card from a photo by embedding it and ranking it against the indexed card corpus. Returns the top matches with similarity scores.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"image_path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the card photo to identify",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of matches to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"image_path"},
		},
	}, handlers.IdentifyCard)

	// 2. lookup_card - Check whether a card id is indexed
	server.AddTool(mcp.Tool{
		Name:        "lookup_card",
		Description: "Check whether a specific card id exists in the embedding index.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"card_id": map[string]interface{}{
					"type":        "string",
					"description": "Card id to look up",
				},
			},
			Required: []string{"card_id"},
		},
	}, handlers.LookupCard)

	// 3. index_stats - Report index size and dimension
	server.AddTool(mcp.Tool{
		Name:        "index_stats",
		Description: "Report the number of indexed cards and the embedding dimension.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.IndexStats)

	return handlers
}
