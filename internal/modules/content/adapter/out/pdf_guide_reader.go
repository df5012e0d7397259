package out

import (
	"context"
	"fmt"
	"strings"

	contentout "flo8/internal/modules/content/port/out"
	"rsc.io/pdf"
)

// LocalPDFGuideReader extracts page text from recipe and exercise guides.
type LocalPDFGuideReader struct{}

func NewLocalPDFGuideReader() contentout.GuideReader {
	return &LocalPDFGuideReader{}
}

func (r *LocalPDFGuideReader) ReadPage(_ context.Context, path string, page int) (string, int, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open guide: %w", err)
	}
	total := doc.NumPage()
	if total == 0 {
		return "", 0, nil
	}
	if page > total {
		page = total
	}
	p := doc.Page(page)
	if p.V.IsNull() {
		return "", total, fmt.Errorf("guide page %d is null", page)
	}
	content := p.Content()
	parts := make([]string, 0, len(content.Text))
	for _, text := range content.Text {
		if strings.TrimSpace(text.S) == "" {
			continue
		}
		parts = append(parts, text.S)
	}
	return strings.Join(parts, " "), total, nil
}
