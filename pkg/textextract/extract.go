// Package textextract pulls plain text out of the document formats the CLI
// accepts, so whole files can be voiced without manual copy-pasting.
package textextract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// SupportedExtensions lists the file extensions ExtractFile understands.
func SupportedExtensions() []string {
	return []string{".pdf", ".txt", ".md"}
}

// ExtractFile reads path and returns its textual content. PDF pages are
// concatenated in order; plain-text and markdown files are returned as-is
// with surrounding whitespace trimmed.
func ExtractFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path)
	case ".txt", ".md":
		return extractPlain(path)
	default:
		return "", fmt.Errorf("unsupported file type %q (supported: %s)",
			filepath.Ext(path), strings.Join(SupportedExtensions(), ", "))
	}
}

func extractPDF(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}

	var buf strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}
	return strings.TrimSpace(buf.String()), nil
}

func extractPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
