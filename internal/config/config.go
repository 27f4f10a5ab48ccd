// Package config loads analyzer settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Analysis   Analysis   `yaml:"analysis"`
	Extraction Extraction `yaml:"extraction"`
	StopWords  StopWords  `yaml:"stopwords"`

	// Workers bounds concurrent files; 0 means one per CPU.
	Workers     int           `yaml:"workers"`
	FileTimeout time.Duration `yaml:"file_timeout"`
}

type Analysis struct {
	IncludeIntroduction bool `yaml:"include_introduction"`
	IncludeKeywords     bool `yaml:"include_keywords"`
	MaxKeywords         int  `yaml:"max_keywords"`
	MaxSentences        int  `yaml:"max_sentences"`
	MinSentenceChars    int  `yaml:"min_sentence_chars"`
	SummaryMaxChars     int  `yaml:"summary_max_chars"`
	IntroMinChars       int  `yaml:"intro_min_chars"`
	IntroMaxChars       int  `yaml:"intro_max_chars"`
	ParagraphMinChars   int  `yaml:"paragraph_min_chars"`
	MaxParagraphs       int  `yaml:"max_paragraphs"`
}

// Extraction names the PDF backends, "fitz" or "plain". Secondary may be
// "none" or empty to disable the fallback.
type Extraction struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
}

type StopWords struct {
	Locales []string `yaml:"locales"`
	Files   []string `yaml:"files"`
}

func Default() Config {
	return Config{
		Analysis: Analysis{
			IncludeIntroduction: true,
			IncludeKeywords:     true,
			MaxKeywords:         10,
			MaxSentences:        3,
			MinSentenceChars:    20,
			SummaryMaxChars:     500,
			IntroMinChars:       100,
			IntroMaxChars:       1000,
			ParagraphMinChars:   50,
			MaxParagraphs:       3,
		},
		Extraction:  Extraction{Primary: "fitz", Secondary: "plain"},
		StopWords:   StopWords{Locales: []string{"es", "en"}},
		FileTimeout: 60 * time.Second,
	}
}

// Load reads the YAML file at path over Default. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, c.Validate()
}

var backendNames = map[string]bool{"fitz": true, "plain": true}

func (c Config) Validate() error {
	var errs []error
	a := c.Analysis
	for name, v := range map[string]int{
		"max_keywords":        a.MaxKeywords,
		"max_sentences":       a.MaxSentences,
		"min_sentence_chars":  a.MinSentenceChars,
		"summary_max_chars":   a.SummaryMaxChars,
		"intro_min_chars":     a.IntroMinChars,
		"intro_max_chars":     a.IntroMaxChars,
		"paragraph_min_chars": a.ParagraphMinChars,
		"max_paragraphs":      a.MaxParagraphs,
	} {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("analysis.%s must be positive, got %d", name, v))
		}
	}
	if !backendNames[c.Extraction.Primary] {
		errs = append(errs, fmt.Errorf("extraction.primary: unknown backend %q", c.Extraction.Primary))
	}
	if s := c.Extraction.Secondary; s != "" && s != "none" && !backendNames[s] {
		errs = append(errs, fmt.Errorf("extraction.secondary: unknown backend %q", s))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.FileTimeout < 0 {
		errs = append(errs, fmt.Errorf("file_timeout must not be negative, got %s", c.FileTimeout))
	}
	return errors.Join(errs...)
}
