// Package export writes reconstructed documents as JSON, as an indented
// text tree, or as a self-contained HTML outline.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/docstruct/docstruct"
)

// Format is an output format
type Format string

const (
	FormatJSON Format = "json"
	FormatTree Format = "tree"
	FormatHTML Format = "html"
)

// Formats lists the supported formats
func Formats() []Format {
	return []Format{FormatJSON, FormatTree, FormatHTML}
}

// ParseFormat parses a format name, case-insensitively
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want json, tree or html)", s)
}

// Extension is the conventional file extension of f
func (f Format) Extension() string {
	switch f {
	case FormatTree:
		return ".txt"
	case FormatHTML:
		return ".html"
	default:
		return ".json"
	}
}

// Write renders res to w in format f
func Write(w io.Writer, res *docstruct.Result, f Format) error {
	switch f {
	case FormatJSON:
		return JSON(w, res)
	case FormatTree:
		return Tree(w, res)
	case FormatHTML:
		return HTML(w, res)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// JSON writes res as indented JSON. This is the reference shape of a
// result.
func JSON(w io.Writer, res *docstruct.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
