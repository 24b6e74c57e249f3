// Package docstruct reconstructs the logical structure of PDF documents:
// a per-page forest of typed elements with stable IDs, and a document-wide
// view of sections, headings and continued tables.
//
// Basic usage:
//
//	res, err := docstruct.Open("report.pdf").Process(ctx)
//	if err != nil {
//	    // the file could not be read at all
//	}
//	if err := res.Err(); err != nil {
//	    // every extraction strategy failed; res.PageCount is still set
//	}
//
// With options:
//
//	res, err := docstruct.Open("scan.pdf").
//	    Scale(2).
//	    Workers(8).
//	    Logger(log).
//	    RefineText().
//	    Process(ctx)
//
// Callers that already have detected elements can skip extraction with
// Reconstruct.
package docstruct

import (
	"fmt"
	"strings"
)

// Open returns a Processor for the PDF at path. Nothing is read until
// Process is called.
//
// Example:
//
//	res, err := docstruct.Open("document.pdf").Process(ctx)
func Open(path string) *Processor {
	return &Processor{
		path:    path,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	res := docstruct.Must(docstruct.Open("document.pdf").Process(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Warning is a non-fatal issue found while processing. Page is 1-indexed;
// zero means the warning concerns the whole document.
type Warning struct {
	Page    int    `json:"page,omitempty"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Page == 0 {
		return w.Message
	}
	return fmt.Sprintf("page %d: %s", w.Page, w.Message)
}

// FormatWarnings joins warnings into a single line
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
