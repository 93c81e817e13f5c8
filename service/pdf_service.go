package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFService extracts plain text from stored PDF files so papers can be
// found by their question text, not just their metadata.
type PDFService struct {
	maxChars int
}

func NewPDFService(maxChars int) *PDFService {
	if maxChars <= 0 {
		maxChars = 20000
	}
	return &PDFService{
		maxChars: maxChars,
	}
}

// ExtractText returns up to maxChars of the PDF's text content. Scanned
// papers with no text layer come back empty, which is fine; the index then
// matches on metadata only.
func (s *PDFService) ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %v", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %v", err)
	}

	var b strings.Builder
	if _, err := io.CopyN(&b, reader, int64(s.maxChars)); err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read text: %v", err)
	}
	return strings.TrimSpace(b.String()), nil
}
