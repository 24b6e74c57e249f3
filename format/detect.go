// Package format sniffs whether a file is a PDF before extraction starts.
package format

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// headerWindow is how far into the file the %PDF- marker may appear.
// Readers tolerate leading junk up to this offset.
const headerWindow = 1024

var pdfMagic = []byte("%PDF-")

// Header describes what was found at the start of a file
type Header struct {
	IsPDF   bool
	Version string // e.g. "1.7"; empty when not a PDF
	Offset  int    // byte offset of the %PDF- marker
}

func (h Header) String() string {
	if !h.IsPDF {
		return "not a PDF"
	}
	if h.Offset > 0 {
		return fmt.Sprintf("PDF %s (header at byte %d)", h.Version, h.Offset)
	}
	return "PDF " + h.Version
}

// DetectFromMagic inspects the first bytes of a file
func DetectFromMagic(data []byte) Header {
	if len(data) > headerWindow {
		data = data[:headerWindow]
	}
	i := bytes.Index(data, pdfMagic)
	if i < 0 {
		return Header{}
	}
	rest := data[i+len(pdfMagic):]
	end := 0
	for end < len(rest) && (rest[end] == '.' || (rest[end] >= '0' && rest[end] <= '9')) {
		end++
	}
	return Header{IsPDF: true, Version: string(rest[:end]), Offset: i}
}

// DetectFromReader reads the header window of r
func DetectFromReader(r io.ReaderAt) (Header, error) {
	buf := make([]byte, headerWindow)
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return Header{}, err
	}
	return DetectFromMagic(buf[:n]), nil
}

// Detect opens path and reads its header
func Detect(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()
	return DetectFromReader(f)
}
