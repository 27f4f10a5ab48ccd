package pdfx

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

type fitzBackend struct{}

// NewFitz returns the MuPDF backend. It reads the metadata dictionary
// under lower-camel keys (author, creationDate, ...) and fails the whole
// pass if any page refuses to render text.
func NewFitz() Backend { return fitzBackend{} }

func (fitzBackend) Name() string { return "fitz" }

func (fitzBackend) Keys() InfoKeys {
	return InfoKeys{
		Author:       "author",
		CreationDate: "creationDate",
		Subject:      "subject",
		Title:        "title",
	}
}

func (fitzBackend) Load(ctx context.Context, path string) (doc *Document, err error) {
	defer recoverPanic(&err)

	d, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	n := d.NumPage()
	pages := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := d.Text(i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		pages = append(pages, text)
	}
	return &Document{Info: fitzInfo(d.Metadata()), Pages: pages}, nil
}

// fitzInfo cuts each value at its first NUL. go-fitz copies every field
// into a fixed 256-byte buffer, so an absent field comes back as all NULs
// and a present one is NUL-padded.
func fitzInfo(m map[string]string) Info {
	info := make(Info, len(m))
	for k, v := range m {
		if i := strings.IndexByte(v, 0); i >= 0 {
			v = v[:i]
		}
		info[k] = v
	}
	return info
}
