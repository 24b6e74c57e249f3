//go:build ocr

// Package ocr reads text from rendered page images with Tesseract. It
// serves two callers: the raster+ocr extraction strategy, which needs line
// boxes for a whole page, and region refinement, which re-reads a single
// cropped element.
//
// Tesseract and its language data must be installed:
//
//	apt-get install tesseract-ocr tesseract-ocr-jpn
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/docstruct/docstruct/model"
)

// Client wraps one Tesseract instance. Calls are serialized, so a Client
// may be shared by the goroutines of one document.
type Client struct {
	mu   sync.Mutex
	tess *gosseract.Client
	lang []string
}

// New creates a client for DefaultLanguage
func New() (*Client, error) {
	return NewWithLanguage(DefaultLanguage)
}

// NewWithLanguage creates a client recognizing lang, a "+" separated list
// such as "jpn+eng"
func NewWithLanguage(lang string) (*Client, error) {
	langs, err := splitLanguages(lang)
	if err != nil {
		return nil, err
	}
	tess := gosseract.NewClient()
	if err := tess.SetLanguage(langs...); err != nil {
		tess.Close()
		return nil, &EngineError{Op: "set language", Err: err}
	}
	return &Client{tess: tess, lang: langs}, nil
}

// Languages returns the languages the client recognizes
func (c *Client) Languages() []string {
	return append([]string(nil), c.lang...)
}

// Close releases the Tesseract instance. It is safe on a nil client.
func (c *Client) Close() error {
	if c == nil || c.tess == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.tess.Close()
	c.tess = nil
	return err
}

// RecognizeLines finds text lines on a full page. Boxes are in image
// pixels with the origin at the top-left corner; lines with no text are
// dropped.
func (c *Client) RecognizeLines(ctx context.Context, img image.Image) ([]model.TextLine, error) {
	data, err := c.prepare(ctx, img)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(data, gosseract.PSM_AUTO); err != nil {
		return nil, err
	}
	boxes, err := c.tess.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, &EngineError{Op: "line boxes", Err: err}
	}

	lines := make([]model.TextLine, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		lines = append(lines, model.TextLine{
			Text:       text,
			Box:        model.NewBBox(float64(b.Box.Min.X), float64(b.Box.Min.Y), float64(b.Box.Max.X), float64(b.Box.Max.Y)),
			Confidence: b.Confidence,
		})
	}
	return lines, nil
}

// RecognizeRegion reads a cropped element as one block of text
func (c *Client) RecognizeRegion(ctx context.Context, img image.Image) (string, error) {
	data, err := c.prepare(ctx, img)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(data, gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", err
	}
	text, err := c.tess.Text()
	if err != nil {
		return "", &EngineError{Op: "text", Err: err}
	}
	return strings.TrimSpace(text), nil
}

func (c *Client) prepare(ctx context.Context, img image.Image) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrClosed
	}
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// load must be called with c.mu held
func (c *Client) load(data []byte, mode gosseract.PageSegMode) error {
	if c.tess == nil {
		return ErrClosed
	}
	if err := c.tess.SetPageSegMode(mode); err != nil {
		return &EngineError{Op: "page segmentation mode", Err: err}
	}
	if err := c.tess.SetImageFromBytes(data); err != nil {
		return &EngineError{Op: "set image", Err: err}
	}
	return nil
}
