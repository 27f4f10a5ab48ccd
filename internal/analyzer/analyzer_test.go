package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/msherr/pdfanalyzer/internal/config"
	"github.com/msherr/pdfanalyzer/internal/pdfx"
	"github.com/msherr/pdfanalyzer/internal/pdfx/pdftest"
	"github.com/msherr/pdfanalyzer/internal/section"
	"github.com/msherr/pdfanalyzer/internal/summarize"
)

const sampleText = `Informe técnico

Resumen
Este informe describe un analizador de documentos PDF que extrae metadatos, estadísticas y palabras clave de cada documento procesado.
Palabras clave: documentos, análisis

El analizador procesa documentos en lotes. Cada documento produce un registro independiente. Los documentos corruptos producen un registro de error.`

// mapBackend serves documents by path; unknown paths fail.
type mapBackend struct {
	mu    sync.Mutex
	docs  map[string]*pdfx.Document
	block bool
}

func (m *mapBackend) Name() string        { return "map" }
func (m *mapBackend) Keys() pdfx.InfoKeys { return pdfx.NewPlain().Keys() }

func (m *mapBackend) Load(ctx context.Context, path string) (*pdfx.Document, error) {
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[path]
	if !ok {
		return nil, fmt.Errorf("cannot parse %s", filepath.Base(path))
	}
	return doc, nil
}

type panicSummarizer struct{ on string }

func (p panicSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if strings.Contains(text, p.on) {
		panic("summarizer exploded")
	}
	return summarize.NewExtractive(summarize.Options{}).Summarize(ctx, text)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func touch(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestAnalyzer(b pdfx.Backend, opts Options) *Analyzer {
	opts.Logger = quietLogger()
	opts.Extractor = pdfx.NewExtractor(b, nil, opts.Logger)
	return New(opts)
}

func TestAnalyze(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "informe.pdf", 3*1024*1024)
	b := &mapBackend{docs: map[string]*pdfx.Document{
		path: {
			Info:  pdfx.Info{"/Author": "Equipo", "/CreationDate": "D:20230115103000"},
			Pages: []string{sampleText},
		},
	}}

	res, err := newTestAnalyzer(b, Options{IncludeIntroduction: true, IncludeKeywords: true, MaxKeywords: 3}).
		Analyze(context.Background(), path)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if res.FileName != "informe.pdf" {
		t.Errorf("FileName = %q", res.FileName)
	}
	if res.Author != "Equipo" || res.CreationDate != "15/01/2023" || res.Title != pdfx.Unavailable {
		t.Errorf("Metadata = %+v", res.Metadata)
	}
	if res.PageCount != 1 || res.FileSizeBytes != 3*1024*1024 || res.FileSizeMB != 3 {
		t.Errorf("stats = %+v, size_mb = %v", res.DocumentStats, res.FileSizeMB)
	}
	if res.WordCount != len(strings.Fields(sampleText)) {
		t.Errorf("WordCount = %d, want %d", res.WordCount, len(strings.Fields(sampleText)))
	}
	if !strings.HasPrefix(res.Introduction, "Este informe describe") {
		t.Errorf("Introduction = %q", res.Introduction)
	}
	if len(res.Keywords) != 3 || res.Keywords[0] != "documentos" {
		t.Errorf("Keywords = %v, want documentos first", res.Keywords)
	}
	if !strings.HasPrefix(res.Summary, "Informe técnico Resumen Este informe") {
		t.Errorf("Summary = %q", res.Summary)
	}
	if res.Failed() {
		t.Errorf("Failed() = true, Error = %q", res.Error)
	}
}

func TestAnalyzeFeatureFlags(t *testing.T) {
	path := touch(t, t.TempDir(), "a.pdf", 10)
	b := &mapBackend{docs: map[string]*pdfx.Document{path: {Pages: []string{sampleText}}}}

	res, err := newTestAnalyzer(b, Options{}).Analyze(context.Background(), path)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if res.Introduction != "" {
		t.Errorf("Introduction = %q, want empty with the feature off", res.Introduction)
	}
	if res.Keywords == nil || len(res.Keywords) != 0 {
		t.Errorf("Keywords = %#v, want empty list with the feature off", res.Keywords)
	}
	if res.Summary == "" {
		t.Error("Summary is empty")
	}
}

func TestAnalyzeEmptyDocument(t *testing.T) {
	path := touch(t, t.TempDir(), "blank.pdf", 10)
	b := &mapBackend{docs: map[string]*pdfx.Document{path: {Pages: []string{""}}}}

	res, err := newTestAnalyzer(b, Options{IncludeIntroduction: true, IncludeKeywords: true}).
		Analyze(context.Background(), path)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if res.Summary != summarize.NoText || res.Introduction != section.NoText {
		t.Errorf("Summary, Introduction = %q, %q", res.Summary, res.Introduction)
	}
	if len(res.Keywords) != 0 || res.WordCount != 0 || res.PageCount != 1 {
		t.Errorf("Result = %+v", res)
	}
}

func TestAnalyzeManyIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	good := touch(t, dir, "good.pdf", 100)
	corrupt := touch(t, dir, "corrupt.pdf", 100)
	exploding := touch(t, dir, "exploding.pdf", 100)
	missing := filepath.Join(dir, "missing.pdf")
	b := &mapBackend{docs: map[string]*pdfx.Document{
		good:      {Pages: []string{sampleText}},
		exploding: {Pages: []string{"BOOM " + sampleText}},
	}}
	a := newTestAnalyzer(b, Options{IncludeKeywords: true, Summarizer: panicSummarizer{on: "BOOM"}, Workers: 2})

	paths := []string{missing, good, corrupt, exploding, good}
	results := a.AnalyzeMany(context.Background(), paths)

	if len(results) != len(paths) {
		t.Fatalf("len(AnalyzeMany()) = %d, want %d", len(results), len(paths))
	}
	for i, want := range []bool{true, false, true, true, false} {
		if got := results[i].Failed(); got != want {
			t.Errorf("results[%d].Failed() = %v, want %v (%q)", i, got, want, results[i].Error)
		}
		if results[i].FileName != filepath.Base(paths[i]) {
			t.Errorf("results[%d].FileName = %q, want %q", i, results[i].FileName, filepath.Base(paths[i]))
		}
	}

	bad := results[2]
	if !strings.HasPrefix(bad.Summary, "Error: ") || bad.Summary != bad.Author || bad.Title != bad.Introduction {
		t.Errorf("error marker text fields = %+v", bad)
	}
	if bad.PageCount != 0 || bad.FileSizeBytes != 0 || bad.WordCount != 0 || bad.CharCount != 0 || bad.FileSizeMB != 0 {
		t.Errorf("error marker numbers = %+v, want zeros", bad.DocumentStats)
	}
	if !strings.Contains(results[3].Error, "summarizer exploded") {
		t.Errorf("results[3].Error = %q, want the panic message", results[3].Error)
	}
}

func TestAnalyzeManyPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	docs := map[string]*pdfx.Document{}
	var paths []string
	for i := 0; i < 25; i++ {
		p := touch(t, dir, fmt.Sprintf("doc-%02d.pdf", i), i+1)
		docs[p] = &pdfx.Document{Pages: strings.Split(strings.Repeat("page\n", i%4+1), "\n")}
		paths = append(paths, p)
	}
	a := newTestAnalyzer(&mapBackend{docs: docs}, Options{Workers: 8})

	results := a.AnalyzeMany(context.Background(), paths)
	for i, r := range results {
		if r.FileName != filepath.Base(paths[i]) || r.FileSizeBytes != int64(i+1) {
			t.Errorf("results[%d] = %s (%d bytes), want %s", i, r.FileName, r.FileSizeBytes, filepath.Base(paths[i]))
		}
	}
	if got := a.AnalyzeMany(context.Background(), nil); len(got) != 0 {
		t.Errorf("AnalyzeMany(nil) = %v, want empty", got)
	}
}

func TestAnalyzeTimeout(t *testing.T) {
	path := touch(t, t.TempDir(), "slow.pdf", 10)
	a := newTestAnalyzer(&mapBackend{block: true}, Options{FileTimeout: 20 * time.Millisecond})

	_, err := a.Analyze(context.Background(), path)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Analyze() error = %v, want deadline exceeded", err)
	}
	results := a.AnalyzeMany(context.Background(), []string{path})
	if !results[0].Failed() {
		t.Error("AnalyzeMany() on a timed-out file did not produce an error marker")
	}
}

func TestAnalyzeSinglePagePDF(t *testing.T) {
	path := pdftest.Write(t, "single.pdf",
		map[string]string{"Title": "Single page", "Author": "Fixture", "CreationDate": "D:20230115103000"},
		pdftest.Page{"The quick brown fox jumps over the lazy dog.", "Pack my box with five dozen liquor jugs."},
	)
	cfg := config.Default()
	cfg.Extraction.Primary = "plain"
	cfg.Extraction.Secondary = "none"
	a, err := FromConfig(cfg, quietLogger())
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}

	res, err := a.Analyze(context.Background(), path)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	doc, err := pdfx.NewPlain().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if res.PageCount != 1 {
		t.Errorf("PageCount = %d, want 1", res.PageCount)
	}
	if want := len(strings.Fields(strings.Join(doc.Pages, "\n"))); res.WordCount != want || want == 0 {
		t.Errorf("WordCount = %d, want %d", res.WordCount, want)
	}
	if res.Title != "Single page" || res.Author != "Fixture" || res.CreationDate != "15/01/2023" {
		t.Errorf("Metadata = %+v", res.Metadata)
	}
}

func TestAnalyzeSinglePagePDFDefaultConfig(t *testing.T) {
	path := pdftest.Write(t, "single.pdf",
		map[string]string{"Title": "Single page", "Author": "Fixture"},
		pdftest.Page{"The quick brown fox jumps over the lazy dog.", "Pack my box with five dozen liquor jugs."},
	)
	a, err := FromConfig(config.Default(), quietLogger())
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}

	res, err := a.Analyze(context.Background(), path)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	doc, err := pdfx.NewFitz().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if res.PageCount != 1 {
		t.Errorf("PageCount = %d, want 1", res.PageCount)
	}
	if want := len(strings.Fields(strings.Join(doc.Pages, ""))); res.WordCount != want || want == 0 {
		t.Errorf("WordCount = %d, want %d", res.WordCount, want)
	}
	want := pdfx.Metadata{Author: "Fixture", CreationDate: pdfx.Unavailable, Subject: pdfx.Unavailable, Title: "Single page"}
	if res.Metadata != want {
		t.Errorf("Metadata = %q, want %q", res.Metadata, want)
	}
}

func TestFromConfigStopWordFiles(t *testing.T) {
	cfg := config.Default()
	cfg.StopWords.Files = []string{filepath.Join(t.TempDir(), "missing.yaml")}
	if _, err := FromConfig(cfg, nil); err == nil {
		t.Error("FromConfig() error = nil for a missing stop-word file")
	}

	cfg = config.Default()
	cfg.StopWords.Locales = []string{"xx"}
	if _, err := FromConfig(cfg, nil); err == nil {
		t.Error("FromConfig() error = nil for an unknown locale")
	}
}
