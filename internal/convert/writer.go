// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/file-converter/internal/odt"
	"github.com/pdiddy/file-converter/internal/rtf"
	"github.com/pdiddy/file-converter/pkg/types"
)

// Writer serializes a Document into a file of a writable format.
type Writer struct {
	pdf types.PDFConfig
	rtf types.RTFConfig
}

// NewWriter builds a Writer from the PDF and RTF rendering settings.
func NewWriter(pdfCfg types.PDFConfig, rtfCfg types.RTFConfig) *Writer {
	return &Writer{pdf: pdfCfg, rtf: rtfCfg}
}

// Write creates or truncates path and renders doc into it as format f.
// The format is checked before the file is touched. On a rendering error a
// partially written file may remain.
func (w *Writer) Write(path string, doc types.Document, f types.Format) error {
	var err error
	switch f {
	case types.FormatText, types.FormatMarkdown:
		err = os.WriteFile(path, []byte(doc.Text), 0o644)
	case types.FormatWord:
		err = writeDocx(path, doc.Lines())
	case types.FormatPDF:
		err = writePDF(path, doc.Lines(), w.pdf)
	case types.FormatRTF:
		err = os.WriteFile(path, rtf.Encode(doc.Text, w.rtf.Font), 0o644)
	case types.FormatODT:
		err = writeODT(path, doc.Lines())
	case types.FormatHTML:
		err = writeHTML(path, doc.Lines())
	default:
		return fmt.Errorf("%w: cannot write %s", ErrUnsupportedFormat, f.Ext())
	}
	if err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrConversionFailed, path, err)
	}
	return nil
}

func writeODT(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := odt.Write(f, lines); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeHTML(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := renderHTML(f, title, lines); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
