// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures of the converter:
// formats, the plain-text document pivot, and configuration.
package types

import "strings"

// Format identifies a document format the converter can read or write.
// The value is the canonical extension without the leading dot.
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatWord     Format = "docx"
	FormatPDF      Format = "pdf"
	FormatRTF      Format = "rtf"
	FormatODT      Format = "odt"
	FormatHTML     Format = "html"
)

// formatOrder is the display order used by the CLI help, the formats
// subcommand, and the web form dropdown.
var formatOrder = []Format{
	FormatText,
	FormatWord,
	FormatPDF,
	FormatRTF,
	FormatODT,
	FormatHTML,
	FormatMarkdown,
}

// readOnlyAliases maps extensions that are accepted on input only to the
// format they are read as.
var readOnlyAliases = map[string]Format{
	".htm": FormatHTML,
}

var labels = map[Format]string{
	FormatText:     "Plain Text",
	FormatMarkdown: "Markdown",
	FormatWord:     "Word Document",
	FormatPDF:      "PDF",
	FormatRTF:      "Rich Text",
	FormatODT:      "OpenDocument",
	FormatHTML:     "HTML",
}

// Ext returns the canonical extension including the leading dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Label returns a human-readable name, e.g. "Word Document (.docx)".
func (f Format) Label() string {
	name, ok := labels[f]
	if !ok {
		return f.Ext()
	}
	return name + " (" + f.Ext() + ")"
}

// NormalizeExt lowercases ext, trims surrounding whitespace, and ensures a
// single leading dot. An empty input stays empty.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	return "." + strings.TrimLeft(ext, ".")
}

// ReadableFormat resolves an input extension. Matching is case-insensitive
// and the leading dot is optional.
func ReadableFormat(ext string) (Format, bool) {
	ext = NormalizeExt(ext)
	if f, ok := readOnlyAliases[ext]; ok {
		return f, true
	}
	return canonical(ext)
}

// WritableFormat resolves an output extension. Read-only aliases such as
// ".htm" are rejected.
func WritableFormat(ext string) (Format, bool) {
	return canonical(NormalizeExt(ext))
}

func canonical(ext string) (Format, bool) {
	for _, f := range formatOrder {
		if f.Ext() == ext {
			return f, true
		}
	}
	return "", false
}

// Formats returns every supported format in display order.
func Formats() []Format {
	out := make([]Format, len(formatOrder))
	copy(out, formatOrder)
	return out
}

// ReadableExtensions lists the input allowlist in display order, followed by
// read-only aliases.
func ReadableExtensions() []string {
	exts := WritableExtensions()
	for alias := range readOnlyAliases {
		exts = append(exts, alias)
	}
	return exts
}

// WritableExtensions lists the output allowlist in display order.
func WritableExtensions() []string {
	exts := make([]string, 0, len(formatOrder))
	for _, f := range formatOrder {
		exts = append(exts, f.Ext())
	}
	return exts
}
