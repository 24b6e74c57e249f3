//go:build !ocr

// Package ocr reads text from rendered page images with Tesseract.
//
// This build has no Tesseract: constructors return ErrOCRNotEnabled and the
// raster+ocr strategy and region refinement are skipped. Rebuild with
//
//	go build -tags ocr
package ocr

import (
	"context"
	"image"

	"github.com/docstruct/docstruct/model"
)

// Client stands in for the Tesseract client. It is never constructed.
type Client struct{}

// New returns ErrOCRNotEnabled
func New() (*Client, error) {
	return NewWithLanguage(DefaultLanguage)
}

// NewWithLanguage validates lang and returns ErrOCRNotEnabled
func NewWithLanguage(lang string) (*Client, error) {
	if _, err := splitLanguages(lang); err != nil {
		return nil, err
	}
	return nil, ErrOCRNotEnabled
}

func (c *Client) Languages() []string { return nil }

func (c *Client) Close() error { return nil }

func (c *Client) RecognizeLines(ctx context.Context, img image.Image) ([]model.TextLine, error) {
	return nil, ErrOCRNotEnabled
}

func (c *Client) RecognizeRegion(ctx context.Context, img image.Image) (string, error) {
	return "", ErrOCRNotEnabled
}
