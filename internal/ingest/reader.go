package ingest

import (
	"fmt"
	"log"
	"os"

	"github.com/ledongthuc/pdf"
)

// pageText is the extracted text of one PDF page, 1-based.
type pageText struct {
	Page int
	Text string
}

// readPDF extracts text per page. A page that fails to extract contributes
// nothing; scanned pages without a text layer commonly do.
func readPDF(path string) ([]pageText, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	pages := make([]pageText, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			log.Printf("ingest: failed to extract text from %s page %d: %v", path, i, err)
			continue
		}
		pages = append(pages, pageText{Page: i, Text: text})
	}
	return pages, nil
}

func readTextLike(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}
