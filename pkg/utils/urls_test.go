package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	cases := map[string]string{
		"example.com":          "https://example.com",
		"www.example.com/path": "https://www.example.com/path",
		"https://example.com":  "https://example.com",
		"http://example.com":   "http://example.com",
	}

	for input, expected := range cases {
		assert.Equal(t, expected, NormalizeURL(input))
	}
}

func TestIsAlphabetic(t *testing.T) {
	assert.True(t, IsAlphabetic("abcdef"))
	assert.True(t, IsAlphabetic("ABCdef"))
	assert.False(t, IsAlphabetic("abc123"))
	assert.False(t, IsAlphabetic("abc-def"))
	assert.False(t, IsAlphabetic(""))
}
