package recipe

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDFText returns the plain text of every page, one page per block.
// The pdf package panics on some malformed documents; those panics are
// returned as errors.
func ExtractPDFText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageContent, err := pageText(page)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		builder.WriteString(pageContent)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// pageText joins the page's text rows with newlines so ingredient lines
// stay separate; GetPlainText alone can run rows together.
func pageText(page pdf.Page) (string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return page.GetPlainText(nil)
	}
	var builder strings.Builder
	for _, row := range rows {
		for i, word := range row.Content {
			if i > 0 {
				builder.WriteString(" ")
			}
			builder.WriteString(word.S)
		}
		builder.WriteString("\n")
	}
	return builder.String(), nil
}
