package pdfx

import (
	"context"
	"os"

	pdf "github.com/ledongthuc/pdf"
)

type plainBackend struct{}

// NewPlain returns the pure-Go backend built on ledongthuc/pdf. Info keys
// keep their PDF name prefix (/Author, /Title, ...). A page whose text
// cannot be decoded contributes an empty string instead of failing the pass.
func NewPlain() Backend { return plainBackend{} }

func (plainBackend) Name() string { return "plain" }

func (plainBackend) Keys() InfoKeys {
	return InfoKeys{
		Author:       "/Author",
		CreationDate: "/CreationDate",
		Subject:      "/Subject",
		Title:        "/Title",
	}
}

func (plainBackend) Load(ctx context.Context, path string) (doc *Document, err error) {
	defer recoverPanic(&err)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	r, err := pdf.NewReader(f, st.Size())
	if err != nil {
		return nil, err
	}

	info := Info{}
	if trailer := r.Trailer(); !trailer.IsNull() {
		if dict := trailer.Key("Info"); !dict.IsNull() {
			for _, key := range dict.Keys() {
				if v := dict.Key(key); v.Kind() == pdf.String {
					info["/"+key] = v.Text()
				}
			}
		}
	}

	n := r.NumPage()
	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			text = ""
		}
		pages = append(pages, text)
	}
	return &Document{Info: info, Pages: pages}, nil
}
