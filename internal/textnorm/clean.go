// Package textnorm normalizes raw text pulled out of PDF content streams
// before it is scanned for sections, keywords, or summary sentences.
package textnorm

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	// Letters and digits of any script (accented Latin included), the
	// underscore, whitespace and the sentence punctuation . , ! ? ; : - ( ).
	disallowed = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Zs}.,!?;:\-()]+`)
	whitespace = regexp.MustCompile(`[\s\p{Zs}]+`)
)

// Clean composes the text to NFC, drops characters outside the allowlist,
// collapses every whitespace run (newlines included) to a single space and
// trims the ends. Clean(Clean(s)) == Clean(s) for every s.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFC.String(text)
	text = disallowed.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Truncate cuts s to at most limit runes. When it cuts, the last three
// runes of the budget are replaced by "...".
func Truncate(s string, limit int) string {
	r := []rune(s)
	if limit <= 0 || len(r) <= limit {
		return s
	}
	if limit <= 3 {
		return string(r[:limit])
	}
	return string(r[:limit-3]) + "..."
}

// Clip keeps the first limit runes of s and appends "..." when anything was
// dropped, so the result may be up to limit+3 runes long.
func Clip(s string, limit int) string {
	r := []rune(s)
	if limit <= 0 || len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

// Len reports the length of s in runes.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}
