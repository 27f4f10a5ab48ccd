// Package pdfx pulls metadata and plain text out of PDF files through a
// chain of interchangeable backends.
package pdfx

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnreadable is returned by Extract when no backend could open the file.
	ErrUnreadable = errors.New("pdfx: document unreadable by every backend")
	// ErrPanic wraps a panic raised inside a backend library.
	ErrPanic = errors.New("pdfx: backend panicked")
)

// Info is a document information dictionary as the backend exposes it.
// Key spelling is backend specific, see InfoKeys.
type Info map[string]string

// InfoKeys names the Info entries a backend uses for the fields we read.
type InfoKeys struct {
	Author       string
	CreationDate string
	Subject      string
	Title        string
}

// Document is the raw output of one backend pass over a file.
type Document struct {
	Info  Info
	Pages []string
}

// Backend opens a PDF, reads its information dictionary and the text of
// every page, and releases the file before returning.
type Backend interface {
	Name() string
	Keys() InfoKeys
	Load(ctx context.Context, path string) (*Document, error)
}

// BackendError records which backend failed on which file.
type BackendError struct {
	Backend string
	Path    string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend: %s: %v", e.Backend, e.Path, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

func recoverPanic(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrPanic, r)
	}
}

// BackendByName maps a configured backend name to its implementation.
// "" and "none" yield a nil Backend.
func BackendByName(name string) (Backend, error) {
	switch name {
	case "fitz":
		return NewFitz(), nil
	case "plain":
		return NewPlain(), nil
	case "", "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("pdfx: unknown backend %q", name)
	}
}
