// Package lexdoc converts legal documents to HTML and splits them into
// chapters, parts, articles and clauses.
//
// Basic usage:
//
//	html, err := lexdoc.Open("regulation.docx").HTML(ctx)
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	res, err := lexdoc.Open("scan.pdf").
//	    WithTimeout(30 * time.Second).
//	    WithExtractor(pdfdoc.CommandExtractor{}).
//	    Sections(ctx)
//
// The docx, pdfdoc and segment packages can also be used directly.
package lexdoc

import (
	"github.com/tsawler/lexdoc/segment"
)

// Version is the library version reported by the CLI and in metrics.
const Version = "0.3.0"

// Open returns a Converter for the file at path. The format is chosen
// from the file extension when a terminal operation runs.
//
// Example:
//
//	html, err := lexdoc.Open("document.docx").HTML(ctx)
func Open(path string) *Converter {
	return &Converter{
		path:    path,
		options: defaultOptions(),
	}
}

// Segment splits HTML produced by a converter into sections.
func Segment(html string) (*segment.Result, error) {
	return segment.Segment(html)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	html := lexdoc.Must(lexdoc.Open("document.docx").HTML(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
