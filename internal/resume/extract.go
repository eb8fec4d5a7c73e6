package resume

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

var ErrUnsupportedFile = errors.New("only PDF and TXT files are supported")

const (
	extPDF = ".pdf"
	extTXT = ".txt"
)

// Supported reports whether the file name has an extension we can read.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case extPDF, extTXT:
		return true
	}
	return false
}

// ExtractFile returns the plain text of a PDF or TXT file.
func ExtractFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case extPDF:
		return extractPDF(path)
	case extTXT:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return strings.ToValidUTF8(string(data), ""), nil
	default:
		return "", ErrUnsupportedFile
	}
}

func extractPDF(path string) (_ string, err error) {
	// the pdf reader panics on some malformed documents
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf text: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	text, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(text); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}
