package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Sci-Fi", "sci fi"},
		{"Léon: The Professional", "leon the professional"},
		{"  WALL·E  ", "wall e"},
		{"Amélie", "amelie"},
		{"TV Movie", "tv movie"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeText(tt.in), "normalizeText(%q)", tt.in)
	}
}
