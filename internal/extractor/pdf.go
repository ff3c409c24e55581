// Package extractor recovers text content from uploaded PDF statements.
// Extraction is best-effort: image-based or custom-font PDFs yield
// ErrManualEntry, which drives the manual-entry fallback in the
// ingestion pipeline.
package extractor

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ErrManualEntry signals that no readable text could be recovered and
// the statement must be entered by hand.
var ErrManualEntry = errors.New("manual entry required: no readable text extracted from PDF")

// IsManualEntry reports whether err is the manual-entry sentinel.
func IsManualEntry(err error) bool {
	return errors.Is(err, ErrManualEntry)
}

// PDFExtractor extracts text from PDF files on disk.
type PDFExtractor struct{}

// NewPDFExtractor creates a PDFExtractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText reads the PDF at path and returns its combined text.
// Unreadable output (binary garbage from identity-encoded fonts, or a
// scanned document with no text layer) returns ErrManualEntry rather
// than fabricated text.
func (e *PDFExtractor) ExtractText(path string) (string, error) {
	text, err := extractRows(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	if IsReadableText(text) {
		return text, nil
	}

	plain, err := extractPlainText(path)
	if err == nil && IsReadableText(plain) {
		return plain, nil
	}

	return "", ErrManualEntry
}

// extractRows walks each page row by row, which preserves the tabular
// layout of most statements. The pdf library panics on some malformed
// files, so the whole pass runs under recover.
func extractRows(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library panic: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var lines []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
	}
	return strings.Join(lines, "\n"), nil
}

// extractPlainText is the whole-document fallback path.
func extractPlainText(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library panic: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// statementWords appear in virtually every real statement; extracted
// text containing none of them is treated as garbage.
var statementWords = []string{
	"balance", "payment", "statement", "account", "credit",
	"minimum", "due", "interest", "transaction", "total",
}

// IsReadableText checks that text is long enough, mostly readable
// ASCII, and contains at least one word expected in a statement.
func IsReadableText(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) <= 50 {
		return false
	}
	if readableRatio(trimmed) <= 0.6 {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, word := range statementWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// readableRatio is the fraction of plain ASCII letters, digits,
// whitespace, and common punctuation. A strict ASCII check is used on
// purpose: identity-encoded fonts produce accented garbage that broader
// unicode classes would count as readable.
func readableRatio(text string) float64 {
	total := 0
	readable := 0
	for _, r := range text {
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
			strings.ContainsRune(`.,-/:;()'"$%&@#!?+=*`, r) {
			readable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}
