package utils

import (
	"strings"
	"unicode"
)

// NormalizeURL prepends https:// when the URL has no explicit scheme
func NormalizeURL(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return "https://" + url
}

// IsAlphabetic reports whether s is non-empty and contains only letters
func IsAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
