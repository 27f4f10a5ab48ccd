package analyzer

import (
	"path/filepath"

	"github.com/msherr/pdfanalyzer/internal/pdfx"
	"github.com/msherr/pdfanalyzer/internal/stats"
)

// Result is the per-file analysis record handed to callers. Field names
// in the json/yaml tags are a stable contract.
type Result struct {
	FileName     string   `json:"file_name" yaml:"file_name"`
	Summary      string   `json:"summary" yaml:"summary"`
	Introduction string   `json:"introduction" yaml:"introduction"`
	Keywords     []string `json:"keywords" yaml:"keywords"`

	pdfx.Metadata       `yaml:",inline"`
	stats.DocumentStats `yaml:",inline"`
	FileSizeMB          float64 `json:"file_size_mb" yaml:"file_size_mb"`

	// Error is set only on error-marker results.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether r is an error-marker result.
func (r Result) Failed() bool { return r.Error != "" }

// ErrorResult is the record produced for a file whose analysis failed:
// every text field reads "Error: <message>", every number is zero.
func ErrorResult(path string, err error) Result {
	msg := "Error: " + err.Error()
	return Result{
		FileName:     filepath.Base(path),
		Summary:      msg,
		Introduction: msg,
		Keywords:     []string{},
		Metadata: pdfx.Metadata{
			Author:       msg,
			CreationDate: msg,
			Subject:      msg,
			Title:        msg,
		},
		Error: err.Error(),
	}
}
