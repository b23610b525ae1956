// Package documents scores statements of purpose and recommendation letters
// with text heuristics and sentence embeddings.
package documents

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	ErrEmptyDocument = errors.New("document is empty")
	ErrUnreadable    = errors.New("document is unreadable")
	ErrTooLarge      = errors.New("document exceeds size limit")
)

// ExtractText returns whitespace-collapsed text. Files named *.txt are read
// as UTF-8 with invalid bytes dropped; everything else is parsed as PDF.
func ExtractText(data []byte, filename string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	if strings.EqualFold(filepath.Ext(filename), ".txt") {
		return clean(strings.ToValidUTF8(string(data), "")), nil
	}

	raw, err := extractPDF(data)
	if err != nil {
		return "", err
	}
	return clean(raw), nil
}

func extractPDF(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: pdf: %v", ErrUnreadable, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrUnreadable, err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: pdf text: %v", ErrUnreadable, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("%w: pdf read: %v", ErrUnreadable, err)
	}
	return buf.String(), nil
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
