// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// readDocx joins the text of the body's top-level paragraphs with "\n".
// Tables and other non-paragraph items are skipped.
func readDocx(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return "", err
	}
	doc, err := docx.Parse(f, st.Size())
	if err != nil {
		return "", err
	}

	var paras []string
	for _, it := range doc.Document.Body.Items {
		if p, ok := it.(*docx.Paragraph); ok {
			paras = append(paras, p.String())
		}
	}
	return strings.Join(paras, "\n"), nil
}

// writeDocx emits one paragraph per line.
func writeDocx(path string, lines []string) error {
	w := docx.New().WithDefaultTheme()
	for _, line := range lines {
		w.AddParagraph().AddText(line)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := w.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
