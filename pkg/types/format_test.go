// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeExt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"txt", ".txt"},
		{".TXT", ".txt"},
		{"  .Docx ", ".docx"},
		{"..pdf", ".pdf"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeExt(tt.in))
		})
	}
}

func TestReadableFormat(t *testing.T) {
	tests := []struct {
		ext    string
		want   Format
		wantOK bool
	}{
		{".txt", FormatText, true},
		{"MD", FormatMarkdown, true},
		{".docx", FormatWord, true},
		{".pdf", FormatPDF, true},
		{".rtf", FormatRTF, true},
		{".odt", FormatODT, true},
		{".html", FormatHTML, true},
		{".HTM", FormatHTML, true},
		{".exe", "", false},
		{".doc", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			got, ok := ReadableFormat(tt.ext)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWritableFormat_RejectsReadOnlyAlias(t *testing.T) {
	_, ok := WritableFormat(".htm")
	assert.False(t, ok, ".htm is read-only")

	f, ok := WritableFormat("html")
	assert.True(t, ok)
	assert.Equal(t, FormatHTML, f)
}

func TestExtensionLists(t *testing.T) {
	assert.Equal(t,
		[]string{".txt", ".docx", ".pdf", ".rtf", ".odt", ".html", ".md"},
		WritableExtensions())
	assert.Equal(t,
		[]string{".txt", ".docx", ".pdf", ".rtf", ".odt", ".html", ".md", ".htm"},
		ReadableExtensions())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Word Document (.docx)", FormatWord.Label())
	assert.Equal(t, "Plain Text (.txt)", FormatText.Label())
	assert.Equal(t, ".xyz", Format("xyz").Label())
}

func TestDocumentLines(t *testing.T) {
	assert.Equal(t, []string{"Hello", "World"}, NewDocument("Hello\nWorld").Lines())
	assert.Equal(t, []string{""}, NewDocument("").Lines())
}
