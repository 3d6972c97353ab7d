// Package textutils provides the small text transforms applied to
// user-entered values before they are persisted.
package textutils

import (
	"strings"
	"unicode"
)

// TitleCase capitalizes the first letter of each whitespace-separated word
// and lowercases the rest ("rAMESH kUMAR" -> "Ramesh Kumar"). Used to
// normalize owner and tenant names.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// CleanAnswer trims an inbound free-text answer.
func CleanAnswer(s string) string {
	return strings.TrimSpace(s)
}

// IsYes reports whether an answer is the literal word "yes", matched
// case-insensitively.
func IsYes(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "yes")
}

// IsNo reports whether an answer is the literal word "no", matched
// case-insensitively.
func IsNo(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "no")
}

// Slugify lowercases a label and joins its words with hyphens so it can be
// used in sheet names and callback data ("Painting Fund" -> "painting-fund").
func Slugify(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), "-")
}
