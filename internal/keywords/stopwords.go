package keywords

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed stopwords.yaml
var defaultStopWords []byte

// StopWords is a set of lower-case words excluded from ranking.
type StopWords map[string]struct{}

// NewStopWords builds a set from words, lower-casing each one.
func NewStopWords(words ...string) StopWords {
	s := make(StopWords, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			s[w] = struct{}{}
		}
	}
	return s
}

func (s StopWords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Merge returns a new set holding the words of s and other.
func (s StopWords) Merge(other StopWords) StopWords {
	out := make(StopWords, len(s)+len(other))
	for w := range s {
		out[w] = struct{}{}
	}
	for w := range other {
		out[w] = struct{}{}
	}
	return out
}

// LoadStopWords decodes a YAML mapping of locale to word list and returns
// the union of the requested locales, or of every locale when none are
// named.
func LoadStopWords(r io.Reader, locales ...string) (StopWords, error) {
	var byLocale map[string][]string
	if err := yaml.NewDecoder(r).Decode(&byLocale); err != nil {
		return nil, fmt.Errorf("decode stop words: %w", err)
	}
	if len(locales) == 0 {
		for l := range byLocale {
			locales = append(locales, l)
		}
	}
	s := StopWords{}
	for _, l := range locales {
		words, ok := byLocale[l]
		if !ok {
			return nil, fmt.Errorf("stop words: unknown locale %q", l)
		}
		s = s.Merge(NewStopWords(words...))
	}
	return s, nil
}

// LoadStopWordsFile is LoadStopWords over the file at path.
func LoadStopWordsFile(path string, locales ...string) (StopWords, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadStopWords(f, locales...)
}

// DefaultStopWords returns the built-in stop words for the given locales
// ("es" and "en" ship with the binary), or all of them when none are named.
func DefaultStopWords(locales ...string) (StopWords, error) {
	return LoadStopWords(bytes.NewReader(defaultStopWords), locales...)
}
