// ABOUTME: Tests for shared command utilities
// ABOUTME: Covers string truncation and flag validation helpers

package commands

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{
			name:     "shorter than max",
			input:    "base1-4",
			maxLen:   40,
			expected: "base1-4",
		},
		{
			name:     "exactly max",
			input:    "abcde",
			maxLen:   5,
			expected: "abcde",
		},
		{
			name:     "longer than max",
			input:    "a-very-long-card-identifier",
			maxLen:   10,
			expected: "a-very-...",
		},
		{
			name:     "tiny max",
			input:    "abcdef",
			maxLen:   2,
			expected: "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestValidatePositiveInt(t *testing.T) {
	if err := validatePositiveInt(5, "top"); err != nil {
		t.Errorf("Unexpected error for positive value: %v", err)
	}
	if err := validatePositiveInt(0, "top"); err == nil {
		t.Error("Expected error for zero")
	}
	if err := validatePositiveInt(-1, "top"); err == nil {
		t.Error("Expected error for negative value")
	}
}
