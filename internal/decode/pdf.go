package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

type pdfDecoder struct{}

func (pdfDecoder) CanDecode(filename string) bool {
	return hasExt(filename, ".pdf")
}

func (pdfDecoder) Decode(content []byte) (*Result, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return nil, fmt.Errorf("read pdf text: %w", err)
	}
	return &Result{Text: buf.String()}, nil
}
