// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/file-converter/pkg/types"
)

func TestToLatin1(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain ascii", "plain ascii"},
		{"café naïve ß", "café naïve ß"},
		{"em — dash", "em ? dash"},
		{"漢字", "??"},
		{"smile \U0001F600", "smile ?"},
		{"a\tb", "a    b"},
		{"c1 \u0085 control", "c1 ? control"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, toLatin1(tt.in))
		})
	}
}

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	require.NoError(t, writePDF(path, []string{"Hello", "World"}, types.PDFConfig{FontFamily: "Courier", FontSize: 12}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	text, err := readPDFTextLayer(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Hello")
	assert.Contains(t, text, "World")
}

func TestWritePDF_BreaksPages(t *testing.T) {
	lines := make([]string, 200)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	path := filepath.Join(t.TempDir(), "long.pdf")
	require.NoError(t, writePDF(path, lines, types.PDFConfig{}))

	f, r, err := pdf.Open(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Greater(t, r.NumPage(), 1)
}

func TestWritePDF_BadFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pdf")
	err := writePDF(path, []string{"x"}, types.PDFConfig{FontFamily: "NoSuchFont"})
	require.Error(t, err)
}
