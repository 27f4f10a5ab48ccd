package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/msherr/pdfanalyzer/internal/analyzer"
	"github.com/msherr/pdfanalyzer/internal/pdfx"
)

func write(w io.Writer, format string, results []analyzer.Result) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(results)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		return writeText(w, results)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, results []analyzer.Result) error {
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n" + strings.Repeat("-", 72) + "\n\n")
		}
		fmt.Fprintf(&b, "%s\n", r.FileName)
		if r.Failed() {
			fmt.Fprintf(&b, "  Error: %s\n", r.Error)
			continue
		}
		fmt.Fprintf(&b, "  Pages: %d   Size (MB): %.2f   Words: %d   Characters: %d\n",
			r.PageCount, r.FileSizeMB, r.WordCount, r.CharCount)
		fmt.Fprintf(&b, "  Title: %s\n  Author: %s\n  Created: %s\n", r.Title, r.Author, r.CreationDate)
		if r.Subject != pdfx.Unavailable {
			fmt.Fprintf(&b, "  Subject: %s\n", r.Subject)
		}
		if r.Introduction != "" {
			fmt.Fprintf(&b, "\n  Introduction/Abstract:\n  %s\n", r.Introduction)
		}
		if len(r.Keywords) > 0 {
			fmt.Fprintf(&b, "\n  Keywords: %s\n", strings.Join(r.Keywords, ", "))
		}
		fmt.Fprintf(&b, "\n  Summary:\n  %s\n", r.Summary)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
