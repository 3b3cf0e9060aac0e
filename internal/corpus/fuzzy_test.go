package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNearest(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		domain   []string
		expected string
	}{
		{
			name:     "misspelled value",
			token:    "cofee",
			domain:   []string{"black", "coffee", "white"},
			expected: "coffee",
		},
		{
			name:     "misspelled column",
			token:    "colr",
			domain:   []string{"title", "color", "brand"},
			expected: "color",
		},
		{
			name:     "exact match wins",
			token:    "brand",
			domain:   []string{"title", "color", "brand"},
			expected: "brand",
		},
		{
			name:     "case insensitive",
			token:    "COFFEE",
			domain:   []string{"coffee", "toffee"},
			expected: "coffee",
		},
		{
			name:     "tie goes to earlier candidate",
			token:    "ax",
			domain:   []string{"ab", "ay"},
			expected: "ab",
		},
		{
			name:     "empty domain",
			token:    "anything",
			domain:   nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Nearest(tt.token, tt.domain))
		})
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		s1, s2   string
		expected int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"cofee", "coffee", 1},
		{"same", "same", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, levenshtein(tt.s1, tt.s2), "levenshtein(%q, %q)", tt.s1, tt.s2)
	}
}
