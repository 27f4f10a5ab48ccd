package pdfx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Unavailable stands in for any metadata field the document does not carry.
const Unavailable = "unavailable"

type Metadata struct {
	Author       string `json:"author" yaml:"author"`
	CreationDate string `json:"creation_date" yaml:"creation_date"`
	Subject      string `json:"subject" yaml:"subject"`
	Title        string `json:"title" yaml:"title"`
}

// DefaultMetadata has every field set to Unavailable.
func DefaultMetadata() Metadata {
	return Metadata{
		Author:       Unavailable,
		CreationDate: Unavailable,
		Subject:      Unavailable,
		Title:        Unavailable,
	}
}

// Extraction is everything one successful backend pass produced.
type Extraction struct {
	Metadata Metadata
	Text     string
	Pages    int
	Backend  string
}

// Extractor tries its backends in order and keeps the first full pass.
type Extractor struct {
	backends []Backend
	logger   *slog.Logger
}

// NewExtractor builds an extractor over primary with secondary as the
// fallback. Either may be nil.
func NewExtractor(primary, secondary Backend, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Extractor{logger: logger}
	for _, b := range []Backend{primary, secondary} {
		if b != nil {
			e.backends = append(e.backends, b)
		}
	}
	return e
}

// Extract runs the backend chain once. When every backend fails it returns
// an empty extraction with default metadata together with an error
// wrapping ErrUnreadable and each backend's *BackendError.
func (e *Extractor) Extract(ctx context.Context, path string) (*Extraction, error) {
	var errs []error
	for i, b := range e.backends {
		doc, err := b.Load(ctx, path)
		if err == nil {
			return e.build(b, path, doc), nil
		}
		err = &BackendError{Backend: b.Name(), Path: path, Err: err}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
		if i < len(e.backends)-1 {
			e.logger.Warn("pdf backend failed, falling back", "backend", b.Name(), "path", path, "error", err)
		}
	}
	if len(errs) == 0 {
		e.logger.Error("no pdf backends configured", "path", path)
		return &Extraction{Metadata: DefaultMetadata()}, ErrUnreadable
	}
	e.logger.Error("all pdf backends failed", "path", path, "error", errors.Join(errs...))
	return &Extraction{Metadata: DefaultMetadata()}, fmt.Errorf("%w: %w", ErrUnreadable, errors.Join(errs...))
}

// Metadata returns the document metadata, or DefaultMetadata when no
// backend can read the file.
func (e *Extractor) Metadata(ctx context.Context, path string) Metadata {
	x, _ := e.Extract(ctx, path)
	return x.Metadata
}

// Text returns the concatenated page text, or "" when no backend can read
// the file.
func (e *Extractor) Text(ctx context.Context, path string) string {
	x, _ := e.Extract(ctx, path)
	return x.Text
}

// Validate reports whether some backend opens the file and finds at least
// one page.
func (e *Extractor) Validate(ctx context.Context, path string) bool {
	x, err := e.Extract(ctx, path)
	return err == nil && x.Pages > 0
}

func (e *Extractor) build(b Backend, path string, doc *Document) *Extraction {
	keys := b.Keys()
	meta := Metadata{
		Author:       field(doc.Info, keys.Author),
		CreationDate: Unavailable,
		Subject:      field(doc.Info, keys.Subject),
		Title:        field(doc.Info, keys.Title),
	}
	if raw := trimField(doc.Info[keys.CreationDate]); raw != "" {
		date, ok := parseDate(raw)
		if !ok {
			e.logger.Debug("unparsed creation date", "path", path, "raw", raw)
		}
		meta.CreationDate = date
	}
	return &Extraction{
		Metadata: meta,
		Text:     joinPages(doc.Pages),
		Pages:    len(doc.Pages),
		Backend:  b.Name(),
	}
}

func field(info Info, key string) string {
	if v := trimField(info[key]); v != "" {
		return v
	}
	return Unavailable
}

func trimField(v string) string {
	return strings.TrimSpace(strings.TrimRight(v, "\x00"))
}

// joinPages concatenates page text, inserting a newline only after a page
// that does not already end in one.
func joinPages(pages []string) string {
	var b strings.Builder
	for i, p := range pages {
		if i > 0 && !strings.HasSuffix(pages[i-1], "\n") {
			b.WriteByte('\n')
		}
		b.WriteString(p)
	}
	return b.String()
}
