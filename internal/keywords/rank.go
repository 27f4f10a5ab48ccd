// Package keywords ranks the most frequent content words of a document.
package keywords

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/msherr/pdfanalyzer/internal/textnorm"
)

// DefaultMax is the number of keywords returned when no limit is given.
const DefaultMax = 10

// term is a whole word of three or more lower-case Latin letters, Spanish
// accents and ñ included.
var term = regexp.MustCompile(`^[a-záéíóúüñ]{3,}$`)

type Ranker struct {
	stop StopWords
}

func NewRanker(stop StopWords) *Ranker {
	if stop == nil {
		stop = StopWords{}
	}
	return &Ranker{stop: stop}
}

// Extract returns up to max terms of text ordered by descending frequency.
// Equal counts keep the order in which the terms first appear. A max of
// zero or less means DefaultMax.
func (r *Ranker) Extract(text string, max int) []string {
	if max <= 0 {
		max = DefaultMax
	}
	counts := map[string]int{}
	var order []string
	for _, w := range tokenize(textnorm.Clean(strings.ToLower(text))) {
		if !term.MatchString(w) || r.stop.Contains(w) {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > max {
		order = order[:max]
	}
	return append([]string{}, order...)
}

// tokenize splits text into maximal runs of word characters.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}
