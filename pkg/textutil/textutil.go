// Package textutil provides small text helpers shared across tripwise:
// input bounding before regex matching, log-safe truncation, and
// cleanup of LLM responses.
package textutil

import "strings"

// MaxPatternInput is the rune bound applied to free text before any
// pattern matching. Go's regexp is linear-time, but bounding keeps the
// worst case proportional to a sane utterance length rather than an
// adversarial payload.
const MaxPatternInput = 4096

// Bound caps s at n runes.
func Bound(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}

// Truncate shortens s to at most n runes for logging, collapsing
// newlines and appending an ellipsis when trimmed.
func Truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n]) + "..."
	}
	return s
}

// FormatResponse cleans up common LLM artifacts: literal "\n" escapes,
// stray surrounding whitespace, and empty paragraphs.
func FormatResponse(response string) string {
	response = strings.TrimSpace(strings.ReplaceAll(response, `\n`, "\n"))

	paragraphs := strings.Split(response, "\n\n")
	formatted := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p != "" {
			formatted = append(formatted, p)
		}
	}
	return strings.Join(formatted, "\n\n")
}
