// ABOUTME: Tests for the mcp command
// ABOUTME: Verifies command metadata without starting the stdio server

package commands

import (
	"strings"
	"testing"
)

func TestNewMCPCmd(t *testing.T) {
	cmd := NewMCPCmd()

	if cmd.Use != "mcp" {
		t.Errorf("Use = %q, want %q", cmd.Use, "mcp")
	}

	if !strings.Contains(cmd.Long, "stdio") {
		t.Error("Long description should mention the stdio transport")
	}

	if cmd.RunE == nil {
		t.Error("mcp command should have a RunE handler")
	}
}
