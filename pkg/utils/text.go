package utils

import (
	"regexp"
	"strings"
)

// nonWordPattern matches anything that is not a letter, digit, underscore or whitespace.
var nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// NormalizeText lowercases text and strips punctuation and symbols.
// Whitespace is preserved as-is so callers decide how to join or split.
func NormalizeText(text string) string {
	return nonWordPattern.ReplaceAllString(strings.ToLower(text), "")
}

// NormalizeJoin normalizes every item and joins the non-empty results with a single space.
func NormalizeJoin(items []string) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		normalized := strings.TrimSpace(NormalizeText(item))
		if normalized == "" {
			continue
		}
		parts = append(parts, normalized)
	}
	return strings.Join(parts, " ")
}

// Tokenize lowercases text, turns punctuation into separators and splits on whitespace.
func Tokenize(text string) []string {
	cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(text), " ")
	return strings.Fields(cleaned)
}
