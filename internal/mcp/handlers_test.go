// ABOUTME: Tests for MCP tool handlers
// ABOUTME: Exercises lookup and stats tools against an in-memory index
package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/harper/cardscan/internal/index"
	"github.com/mark3labs/mcp-go/mcp"
)

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := mcp.AsTextContent(res.Content[0])
	if !ok {
		t.Fatalf("unexpected content type %T", res.Content[0])
	}
	return text.Text
}

func TestLookupCard(t *testing.T) {
	idx := index.New()
	idx.Set("base1-4", []float32{1, 0})
	h := &Handlers{index: idx}

	res, err := h.LookupCard(context.Background(), callRequest(map[string]any{"card_id": "base1-4"}))
	if err != nil {
		t.Fatalf("LookupCard() error = %v", err)
	}

	var payload struct {
		CardID  string `json:"card_id"`
		Indexed bool   `json:"indexed"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &payload); err != nil {
		t.Fatalf("parsing result: %v", err)
	}
	if !payload.Indexed || payload.CardID != "base1-4" {
		t.Errorf("payload = %+v, want indexed base1-4", payload)
	}
}

func TestLookupCard_MissingArgument(t *testing.T) {
	h := &Handlers{index: index.New()}

	res, err := h.LookupCard(context.Background(), callRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("LookupCard() error = %v", err)
	}
	if !res.IsError {
		t.Error("missing card_id should produce a tool error result")
	}
}

func TestIndexStats(t *testing.T) {
	idx := index.New()
	idx.Set("a", []float32{1, 0})
	idx.Set("b", []float32{0, 1})
	h := &Handlers{index: idx}

	res, err := h.IndexStats(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("IndexStats() error = %v", err)
	}

	var payload struct {
		Cards     int `json:"cards"`
		Dimension int `json:"dimension"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &payload); err != nil {
		t.Fatalf("parsing result: %v", err)
	}
	if payload.Cards != 2 {
		t.Errorf("cards = %d, want 2", payload.Cards)
	}
}

func TestIdentifyCard_NoEmbedder(t *testing.T) {
	h := &Handlers{index: index.New()}

	res, err := h.IdentifyCard(context.Background(), callRequest(map[string]any{"image_path": "x.jpg"}))
	if err != nil {
		t.Fatalf("IdentifyCard() error = %v", err)
	}
	if !res.IsError {
		t.Error("identify without embedder should produce a tool error result")
	}
}
