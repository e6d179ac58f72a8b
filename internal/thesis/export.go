package thesis

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Supported export formats.
const (
	FormatMarkdown = "md"
	FormatHTML     = "html"
	FormatPDF      = "pdf"
)

// Export writes the document to dir in each requested format and returns
// the written paths. The input is validated first.
func Export(dir string, in Input, formats []string) ([]string, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	if len(formats) == 0 {
		formats = []string{FormatMarkdown}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	md := Render(in)
	base := strings.TrimSuffix(FileName(in), ".md")
	title := "Investment Thesis " + in.Ticker

	var paths []string
	for _, f := range formats {
		var data []byte
		switch strings.ToLower(f) {
		case FormatMarkdown:
			data = []byte(md)
		case FormatHTML:
			page, err := RenderHTML(md, title)
			if err != nil {
				return paths, err
			}
			data = []byte(page)
		case FormatPDF:
			doc, err := RenderPDF(md, title)
			if err != nil {
				return paths, err
			}
			data = doc
		default:
			return paths, fmt.Errorf("unknown export format %q", f)
		}
		path := filepath.Join(dir, base+"."+strings.ToLower(f))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		log.Printf("[INFO] thesis written: %s", path)
		paths = append(paths, path)
	}
	return paths, nil
}
