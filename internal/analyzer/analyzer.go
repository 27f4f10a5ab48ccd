// Package analyzer runs the per-file analysis pipeline (extraction,
// statistics, summary, introduction, keywords) over batches of PDF paths.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/msherr/pdfanalyzer/internal/config"
	"github.com/msherr/pdfanalyzer/internal/keywords"
	"github.com/msherr/pdfanalyzer/internal/pdfx"
	"github.com/msherr/pdfanalyzer/internal/section"
	"github.com/msherr/pdfanalyzer/internal/stats"
	"github.com/msherr/pdfanalyzer/internal/summarize"
)

// Options wires an Analyzer. Extractor is required; nil Detector, Ranker
// and Summarizer fall back to their package defaults.
type Options struct {
	Extractor  *pdfx.Extractor
	Detector   *section.Detector
	Ranker     *keywords.Ranker
	Summarizer summarize.Summarizer

	IncludeIntroduction bool
	IncludeKeywords     bool
	MaxKeywords         int

	// Workers bounds AnalyzeMany; 0 means runtime.NumCPU().
	Workers int
	// FileTimeout bounds a single Analyze call; 0 disables it.
	FileTimeout time.Duration

	Logger *slog.Logger
}

type Analyzer struct {
	opts   Options
	logger *slog.Logger
}

func New(opts Options) *Analyzer {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Extractor == nil {
		opts.Extractor = pdfx.NewExtractor(pdfx.NewFitz(), pdfx.NewPlain(), opts.Logger)
	}
	if opts.Detector == nil {
		opts.Detector = section.NewDetector()
	}
	if opts.Ranker == nil {
		opts.Ranker = keywords.NewRanker(nil)
	}
	if opts.Summarizer == nil {
		opts.Summarizer = summarize.NewExtractive(summarize.Options{})
	}
	return &Analyzer{opts: opts, logger: opts.Logger}
}

// FromConfig builds an Analyzer from loaded settings.
func FromConfig(cfg config.Config, logger *slog.Logger) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	primary, err := pdfx.BackendByName(cfg.Extraction.Primary)
	if err != nil {
		return nil, err
	}
	secondary, err := pdfx.BackendByName(cfg.Extraction.Secondary)
	if err != nil {
		return nil, err
	}

	stop, err := keywords.DefaultStopWords(cfg.StopWords.Locales...)
	if err != nil {
		return nil, err
	}
	for _, f := range cfg.StopWords.Files {
		extra, err := keywords.LoadStopWordsFile(f)
		if err != nil {
			return nil, fmt.Errorf("stop words %s: %w", f, err)
		}
		stop = stop.Merge(extra)
	}

	a := cfg.Analysis
	return New(Options{
		Extractor: pdfx.NewExtractor(primary, secondary, logger),
		Detector: &section.Detector{
			Rules:         section.DefaultRules(),
			MinSpan:       a.IntroMinChars,
			MaxLen:        a.IntroMaxChars,
			MinParagraph:  a.ParagraphMinChars,
			MaxParagraphs: a.MaxParagraphs,
		},
		Ranker: keywords.NewRanker(stop),
		Summarizer: summarize.NewExtractive(summarize.Options{
			MaxSentences: a.MaxSentences,
			MinSentence:  a.MinSentenceChars,
			MaxChars:     a.SummaryMaxChars,
		}),
		IncludeIntroduction: a.IncludeIntroduction,
		IncludeKeywords:     a.IncludeKeywords,
		MaxKeywords:         a.MaxKeywords,
		Workers:             cfg.Workers,
		FileTimeout:         cfg.FileTimeout,
		Logger:              logger,
	}), nil
}

// Analyze runs the whole pipeline on one file. Text is extracted once and
// shared by every stage. It fails when no backend can read the file or the
// per-file timeout expires.
func (a *Analyzer) Analyze(ctx context.Context, path string) (*Result, error) {
	if a.opts.FileTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.FileTimeout)
		defer cancel()
	}

	x, err := a.opts.Extractor.Extract(ctx, path)
	if err != nil {
		return nil, err
	}
	st, err := stats.Collect(path, x)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	summary, err := a.opts.Summarizer.Summarize(ctx, x.Text)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	res := &Result{
		FileName:      filepath.Base(path),
		Summary:       summary,
		Keywords:      []string{},
		Metadata:      x.Metadata,
		DocumentStats: st,
		FileSizeMB:    st.SizeMB(),
	}
	if a.opts.IncludeIntroduction {
		res.Introduction = a.opts.Detector.Extract(x.Text)
	}
	if a.opts.IncludeKeywords {
		res.Keywords = a.opts.Ranker.Extract(x.Text, a.opts.MaxKeywords)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.logger.Debug("analyzed", "path", path, "backend", x.Backend, "pages", st.PageCount, "words", st.WordCount)
	return res, nil
}

// AnalyzeMany analyzes every path and returns exactly one Result per path,
// in input order. Files run concurrently on a bounded pool; a failure or
// panic on one file becomes its error-marker result and never stops the
// others.
func (a *Analyzer) AnalyzeMany(ctx context.Context, paths []string) []Result {
	results := make([]Result, len(paths))
	if len(paths) == 0 {
		return results
	}

	var g errgroup.Group
	g.SetLimit(a.workers(len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			results[i] = a.analyzeIsolated(ctx, path)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	a.logger.Info("batch analyzed", "files", len(paths), "failed", failed)
	return results
}

func (a *Analyzer) analyzeIsolated(ctx context.Context, path string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			a.logger.Error("analysis failed", "path", path, "error", err)
			res = ErrorResult(path, err)
		}
	}()

	r, err := a.Analyze(ctx, path)
	if err != nil {
		a.logger.Error("analysis failed", "path", path, "error", err)
		return ErrorResult(path, err)
	}
	return *r
}

func (a *Analyzer) workers(files int) int {
	n := a.opts.Workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return max(1, min(n, files))
}
