// Package pdf converts uploaded resume PDFs into the formats the review
// pipeline needs: a PNG preview of the first page and the raw text.
package pdf

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ConversionError represents a failure to open or render a PDF document.
type ConversionError struct {
	Message string
	Cause   error
}

func (e *ConversionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf conversion failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf conversion failed: %s", e.Message)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// FirstPagePNG renders the first page of the PDF as a PNG image.
func FirstPagePNG(data []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, &ConversionError{Message: "failed to open document", Cause: err}
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, &ConversionError{Message: "document has no pages"}
	}

	img, err := doc.Image(0)
	if err != nil {
		return nil, &ConversionError{Message: "failed to render first page", Cause: err}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &ConversionError{Message: "failed to encode PNG", Cause: err}
	}
	return buf.Bytes(), nil
}

// ExtractText returns the text content of every page, joined with blank
// lines. Pages that fail to extract are skipped.
func ExtractText(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", &ConversionError{Message: "failed to open document", Cause: err}
	}
	defer doc.Close()

	var pages []string
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			continue
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}
	return strings.Join(pages, "\n\n"), nil
}
