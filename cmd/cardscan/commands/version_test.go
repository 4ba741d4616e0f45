// ABOUTME: Tests for the version command
// ABOUTME: Verifies version output and SetVersion wiring

package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCmd(t *testing.T) {
	SetVersion("1.2.3", "abc1234", "2026-01-01")

	cmd := NewVersionCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	got := output.String()
	if !strings.Contains(got, "cardscan 1.2.3") {
		t.Errorf("output %q should contain version string", got)
	}
}

func TestVersionCmd_Defaults(t *testing.T) {
	SetVersion("dev", "none", "unknown")

	cmd := NewVersionCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if !strings.Contains(output.String(), "dev") {
		t.Errorf("output %q should contain default version", output.String())
	}
}
