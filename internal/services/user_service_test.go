package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoogleDisplayName(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		displayName string
		want        string
	}{
		{"provider name wins", "jane@example.com", "Jane Doe", "Jane Doe"},
		{"lowercase provider name is capitalized", "jane@example.com", "jane doe", "Jane doe"},
		{"falls back to email prefix", "jane@example.com", "", "Jane"},
		{"prefix capitalization", "lowercase.person@example.com", "", "Lowercase.person"},
		{"whitespace-only display name", "sam@example.com", "   ", "Sam"},
		{"degenerate email", "@example.com", "", "User"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, googleDisplayName(tt.email, tt.displayName))
		})
	}
}
