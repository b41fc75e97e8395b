// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/file-converter/internal/ocr"
	"github.com/pdiddy/file-converter/internal/odt"
	"github.com/pdiddy/file-converter/internal/raster"
	"github.com/pdiddy/file-converter/internal/rtf"
	"github.com/pdiddy/file-converter/pkg/types"
)

// Reader extracts a plain-text Document from a file of a readable format.
type Reader struct {
	pdf    types.PDFConfig
	ocr    ocr.Engine
	raster raster.Rasterizer
}

// NewReader builds a Reader from PDF settings. Unless injected with
// SetOCREngine and SetRasterizer, the OCR engine and rasterizer are created
// for each PDF read and never stored, so a Reader is safe for concurrent use
// once configured.
func NewReader(cfg types.PDFConfig) *Reader {
	return &Reader{pdf: cfg}
}

// SetOCREngine replaces the OCR engine used for PDF pages.
func (r *Reader) SetOCREngine(e ocr.Engine) { r.ocr = e }

// SetRasterizer replaces the PDF page renderer.
func (r *Reader) SetRasterizer(rz raster.Rasterizer) { r.raster = rz }

// Read extracts the text of path, interpreting it as format f.
func (r *Reader) Read(path string, f types.Format) (types.Document, error) {
	var (
		text string
		err  error
	)
	switch f {
	case types.FormatText, types.FormatMarkdown:
		text, err = readRaw(path)
	case types.FormatWord:
		text, err = readDocx(path)
	case types.FormatPDF:
		text, err = r.readPDF(path)
	case types.FormatRTF:
		text, err = readRTF(path)
	case types.FormatODT:
		text, err = readODT(path)
	case types.FormatHTML:
		text, err = readHTML(path)
	default:
		return types.Document{}, fmt.Errorf("%w: cannot read %s", ErrUnsupportedFormat, f.Ext())
	}
	if err != nil {
		return types.Document{}, fmt.Errorf("%w: reading %s as %s: %w", ErrConversionFailed, path, f.Ext(), err)
	}
	return types.NewDocument(text), nil
}

func readRaw(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readRTF(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return rtf.Decode(data)
}

func readODT(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	paras, err := odt.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	return strings.Join(paras, "\n"), nil
}

func readHTML(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return extractHTML(f)
}
