package decode

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

type docxDecoder struct{}

func (docxDecoder) CanDecode(filename string) bool {
	return hasExt(filename, ".docx")
}

var xmlTag = regexp.MustCompile(`<[^>]+>`)

// Decode extracts word/document.xml from the docx zip and strips the XML
// tags. Naive, but enough for word/character counts; paragraph boundaries
// become newlines via the closing </w:p> tag.
func (docxDecoder) Decode(content []byte) (*Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("open document.xml: %w", err)
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return nil, fmt.Errorf("read document.xml: %w", err)
			}
			break
		}
	}
	if len(docXML) == 0 {
		return nil, fmt.Errorf("document.xml not found in docx")
	}
	text := strings.ReplaceAll(string(docXML), "</w:p>", "\n")
	text = xmlTag.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return &Result{Text: text}, nil
}
