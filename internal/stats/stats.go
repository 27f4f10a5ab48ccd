// Package stats derives size and count figures for an analyzed document.
package stats

import (
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/msherr/pdfanalyzer/internal/pdfx"
)

// DocumentStats is zero-valued for anything that could not be measured.
type DocumentStats struct {
	PageCount     int   `json:"page_count" yaml:"page_count"`
	FileSizeBytes int64 `json:"file_size_bytes" yaml:"file_size_bytes"`
	WordCount     int   `json:"word_count" yaml:"word_count"`
	CharCount     int   `json:"char_count" yaml:"char_count"`
}

// Collect measures the file at path and the text already extracted from
// it. x may be nil when extraction was skipped. The stat error, if any, is
// returned alongside whatever could still be counted.
func Collect(path string, x *pdfx.Extraction) (DocumentStats, error) {
	var s DocumentStats
	if x != nil {
		s.PageCount = x.Pages
		s.WordCount = len(strings.Fields(x.Text))
		s.CharCount = utf8.RuneCountInString(x.Text)
	}
	fi, err := os.Stat(path)
	if err != nil {
		return s, err
	}
	s.FileSizeBytes = fi.Size()
	return s, nil
}

// SizeMB is the file size in mebibytes rounded to two decimals.
func (s DocumentStats) SizeMB() float64 {
	return math.Round(float64(s.FileSizeBytes)/(1024*1024)*100) / 100
}
