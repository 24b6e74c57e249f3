package ocr

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultLanguage covers Japanese documents with embedded English
const DefaultLanguage = "jpn+eng"

var (
	// ErrOCRNotEnabled is returned by every constructor of a build without
	// the ocr tag
	ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")
	ErrClosed        = errors.New("ocr client closed")
	ErrEmptyImage    = errors.New("image has no pixels")
	ErrNoLanguage    = errors.New("no OCR language given")
)

// EngineError is a Tesseract failure during one step of recognition
type EngineError struct {
	Op  string
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("tesseract %s: %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// splitLanguages parses a "+" separated language list such as "jpn+eng"
func splitLanguages(lang string) ([]string, error) {
	var out []string
	for _, l := range strings.Split(lang, "+") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoLanguage
	}
	return out, nil
}
