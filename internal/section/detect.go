// Package section locates the introductory part of a document (abstract,
// resumen, introduction, executive summary) in raw extracted text.
package section

import (
	"regexp"
	"strings"

	"github.com/msherr/pdfanalyzer/internal/textnorm"
)

const (
	NoText         = "No text could be extracted from the document"
	NoIntroduction = "No introductory section could be identified"
)

// A Rule matches a heading and captures the body that follows it up to
// the next recognised heading in submatch 1.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

// heading builds a case-insensitive, multi-line, dot-all rule. The body is
// captured lazily and ends at the first line that starts with a stop word.
func heading(name, head, sep string, stops ...string) Rule {
	expr := `(?ims)(?:^|\n)\s*(?:` + head + `)\s*[:.\-]?` + sep + `(.*?)\n\s*(?:` + strings.Join(stops, "|") + `)`
	return Rule{Name: name, Pattern: regexp.MustCompile(expr)}
}

// DefaultRules returns the bilingual heading rules in the order they are
// tried.
func DefaultRules() []Rule {
	return []Rule{
		heading("abstract", `abstract|resumen|abstracto`, `\s*\n`,
			`1\.`, `introducción`, `introduction`, `palabras clave`, `keywords`, `índice`, `contenido`),
		heading("introduction", `introducción|introduction`, `\s*\n`,
			`2\.`, `metodología`, `methodology`, `desarrollo`, `objective`, `objetivos`),
		heading("numbered-introduction", `1\.\s*introducción|1\.\s*introduction`, `\s*`,
			`2\.`, `metodología`, `methodology`),
		heading("executive-summary", `resumen ejecutivo|executive summary`, `\s*\n`,
			`1\.`, `introducción`, `introduction`),
	}
}

// Detector holds the rules and length limits for introduction detection.
type Detector struct {
	Rules []Rule
	// MinSpan is the rune count a captured body must exceed to be accepted.
	MinSpan int
	// MaxLen is where accepted text is clipped (an ellipsis is appended).
	MaxLen int
	// MinParagraph is the rune count a fallback paragraph must exceed.
	MinParagraph int
	// MaxParagraphs caps how many fallback paragraphs are joined.
	MaxParagraphs int
}

// NewDetector returns a Detector with DefaultRules and the stock limits
// (100, 1000, 50, 3).
func NewDetector() *Detector {
	return &Detector{
		Rules:         DefaultRules(),
		MinSpan:       100,
		MaxLen:        1000,
		MinParagraph:  50,
		MaxParagraphs: 3,
	}
}

// Extract returns the introduction or abstract of raw. Rules are tried in
// order against the un-normalized text and the first rule that matches
// decides: if its body is too short the next rule is tried, never a later
// match of the same rule. Without a usable match the first paragraphs of
// the document stand in.
func (d *Detector) Extract(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return NoText
	}

	for _, r := range d.Rules {
		m := r.Pattern.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		body := strings.TrimSpace(m[1])
		if textnorm.Len(body) > d.MinSpan {
			return textnorm.Clip(textnorm.Clean(body), d.MaxLen)
		}
	}

	if intro := d.leadingParagraphs(raw); intro != "" {
		return textnorm.Clip(intro, d.MaxLen)
	}
	return NoIntroduction
}

// leadingParagraphs normalizes raw before splitting it. Clean folds line
// breaks into spaces, so a document without headings falls back to its
// whole opening text rather than to individual layout lines.
func (d *Detector) leadingParagraphs(raw string) string {
	var kept []string
	for _, p := range strings.Split(textnorm.Clean(raw), "\n") {
		if textnorm.Len(p) > d.MinParagraph {
			kept = append(kept, p)
			if d.MaxParagraphs > 0 && len(kept) >= d.MaxParagraphs {
				break
			}
		}
	}
	return strings.Join(kept, " ")
}
