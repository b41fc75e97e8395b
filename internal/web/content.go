// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/pdiddy/file-converter/pkg/types"
)

const introMarkdown = `Convert documents between common formats instantly.

Upload a file, pick the format you want, and download the result. Text is
carried across formats; styles, images, and tables are not.`

// formatsMarkdown lists both allowlists as Markdown bullet lists.
func formatsMarkdown() string {
	var b strings.Builder
	b.WriteString("**Input formats**\n\n")
	for _, ext := range types.ReadableExtensions() {
		f, _ := types.ReadableFormat(ext)
		note := ""
		if f == types.FormatPDF {
			note = " (extracted via OCR)"
		}
		fmt.Fprintf(&b, "- `%s` %s%s\n", ext, labelName(f), note)
	}
	b.WriteString("\n**Output formats**\n\n")
	for _, ext := range types.WritableExtensions() {
		f, _ := types.WritableFormat(ext)
		fmt.Fprintf(&b, "- `%s` %s\n", ext, labelName(f))
	}
	return b.String()
}

// labelName strips the "(.ext)" suffix from a format label.
func labelName(f types.Format) string {
	return strings.TrimSuffix(f.Label(), " ("+f.Ext()+")")
}

// renderMarkdown converts trusted, built-in Markdown to HTML.
func renderMarkdown(md string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
