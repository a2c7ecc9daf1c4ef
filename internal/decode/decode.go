// Package decode turns uploaded files into either a tabular engine.Table
// (csv, xlsx) or plain text (pdf, docx, txt) for text analysis.
package decode

import (
	"errors"
	"strings"

	"github.com/mtse/marketing-engine/internal/engine"
)

// ErrUnsupportedFormat indicates the upload's extension is not handled.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Result is the outcome of decoding one upload: exactly one of Table or
// Text is populated.
type Result struct {
	Table *engine.Table
	Text  string
}

// IsTabular reports whether the upload decoded to rows and columns.
func (r *Result) IsTabular() bool { return r.Table != nil }

// TextStats returns the word and character counts of a text decode.
func (r *Result) TextStats() (words, chars int) {
	return len(strings.Fields(r.Text)), len(r.Text)
}

// Decoder handles one upload format, selected by filename.
type Decoder interface {
	CanDecode(filename string) bool
	Decode(content []byte) (*Result, error)
}

var registry []Decoder

func register(d Decoder) { registry = append(registry, d) }

func init() {
	register(csvDecoder{})
	register(xlsxDecoder{})
	register(pdfDecoder{})
	register(docxDecoder{})
	register(txtDecoder{})
}

// Decode picks a decoder by filename and runs it. Unknown extensions are an
// explicit error rather than a text fallback: the upload form advertises a
// fixed set of formats.
func Decode(filename string, content []byte) (*Result, error) {
	for _, d := range registry {
		if d.CanDecode(filename) {
			return d.Decode(content)
		}
	}
	return nil, ErrUnsupportedFormat
}

func hasExt(filename, ext string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ext)
}
