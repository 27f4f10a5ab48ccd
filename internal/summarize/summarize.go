package summarize

import (
	"context"
	"regexp"
	"strings"

	"github.com/msherr/pdfanalyzer/internal/textnorm"
)

const (
	NoText        = "No text could be extracted from the document"
	NoSignificant = "Document has no significant textual content"
)

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Options tune the extractive summarizer. Zero fields take the defaults
// 3, 20 and 500.
type Options struct {
	MaxSentences int
	// MinSentence is the rune count a sentence must exceed to be kept.
	MinSentence int
	// MaxChars caps the summary; longer ones are cut to MaxChars-3 runes
	// plus "...".
	MaxChars int
}

var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// -------- Extractive (lead sentences) --------
type extractive struct{ opts Options }

func NewExtractive(opts Options) Summarizer {
	if opts.MaxSentences <= 0 {
		opts.MaxSentences = 3
	}
	if opts.MinSentence <= 0 {
		opts.MinSentence = 20
	}
	if opts.MaxChars <= 0 {
		opts.MaxChars = 500
	}
	return &extractive{opts: opts}
}

// Summarize joins the first MaxSentences sentences of the normalized text
// that are long enough to carry content.
func (e *extractive) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return NoText, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var picked []string
	for _, s := range sentenceEnd.Split(textnorm.Clean(text), -1) {
		s = strings.TrimSpace(s)
		if textnorm.Len(s) <= e.opts.MinSentence {
			continue
		}
		picked = append(picked, s)
		if len(picked) == e.opts.MaxSentences {
			break
		}
	}
	if len(picked) == 0 {
		return NoSignificant, nil
	}
	return textnorm.Truncate(strings.Join(picked, ". "), e.opts.MaxChars), nil
}
