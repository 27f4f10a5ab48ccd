package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/msherr/pdfanalyzer/internal/analyzer"
	"github.com/msherr/pdfanalyzer/internal/config"
)

func main() {
	app := &cli.App{
		Name:      "pdfanalyze",
		Usage:     "Extract metadata, statistics, a summary, the introduction and keywords from PDF files",
		ArgsUsage: "FILE.pdf [FILE.pdf ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Optional YAML config"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "text", Usage: "Output format: text|json|yaml"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "Files analyzed concurrently (0 = one per CPU)"},
			&cli.DurationFlag{Name: "timeout", Usage: "Per-file analysis timeout (0 disables)"},
			&cli.IntFlag{Name: "max-keywords", Usage: "Number of keywords per document"},
			&cli.IntFlag{Name: "max-sentences", Usage: "Sentences in the summary"},
			&cli.StringFlag{Name: "primary", Usage: "Primary PDF backend (fitz|plain)"},
			&cli.StringFlag{Name: "secondary", Usage: "Fallback PDF backend (fitz|plain|none)"},
			&cli.BoolFlag{Name: "no-introduction", Usage: "Skip introduction/abstract detection"},
			&cli.BoolFlag{Name: "no-keywords", Usage: "Skip keyword ranking"},
			&cli.StringSliceFlag{Name: "stopwords", Usage: "Extra stop-word YAML files"},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug|info|warn|error"},
			&cli.StringFlag{Name: "log-format", Value: "text", Usage: "text|json"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Only log errors"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("missing PDF paths", 2)
	}
	logger, err := newLogger(c)
	if err != nil {
		return err
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// CLI overrides
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("timeout") {
		cfg.FileTimeout = c.Duration("timeout")
	}
	if c.IsSet("max-keywords") {
		cfg.Analysis.MaxKeywords = c.Int("max-keywords")
	}
	if c.IsSet("max-sentences") {
		cfg.Analysis.MaxSentences = c.Int("max-sentences")
	}
	if c.IsSet("primary") {
		cfg.Extraction.Primary = c.String("primary")
	}
	if c.IsSet("secondary") {
		cfg.Extraction.Secondary = c.String("secondary")
	}
	if c.Bool("no-introduction") {
		cfg.Analysis.IncludeIntroduction = false
	}
	if c.Bool("no-keywords") {
		cfg.Analysis.IncludeKeywords = false
	}
	cfg.StopWords.Files = append(cfg.StopWords.Files, c.StringSlice("stopwords")...)

	a, err := analyzer.FromConfig(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	paths := c.Args().Slice()
	logger.Info("analyzing", "files", len(paths), "workers", cfg.Workers, "primary", cfg.Extraction.Primary)
	results := a.AnalyzeMany(ctx, paths)
	return write(os.Stdout, c.String("format"), results)
}

func newLogger(c *cli.Context) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.String("log-level"))); err != nil {
		return nil, fmt.Errorf("invalid log level %q", c.String("log-level"))
	}
	if c.Bool("quiet") {
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(c.String("log-format")) {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", c.String("log-format"))
	}
}
