// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/pdiddy/file-converter/internal/ocr"
	"github.com/pdiddy/file-converter/internal/raster"
	"github.com/pdiddy/file-converter/pkg/types"
)

const (
	// latin1Placeholder replaces runes the core PDF fonts cannot show.
	latin1Placeholder = '?'

	pdfMargin     = 15.0 // mm
	ptToMM        = 25.4 / 72
	lineSpacing   = 1.4
	spacesPerTab  = 4
	defaultFont   = "Helvetica"
	defaultSizePt = 11.0
)

// pdfTimestamp is written as both creation and modification date so the
// same text always renders to the same bytes.
var pdfTimestamp = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

func (r *Reader) readPDF(path string) (string, error) {
	switch r.pdf.Extract {
	case types.ExtractText:
		return readPDFTextLayer(path)
	case types.ExtractAuto:
		text, err := readPDFTextLayer(path)
		if err == nil && strings.TrimSpace(text) != "" {
			return text, nil
		}
		return r.readPDFWithOCR(path)
	default:
		return r.readPDFWithOCR(path)
	}
}

// readPDFWithOCR renders every page and joins the per-page OCR output with
// "\n" in page order. Pages are processed one after another.
func (r *Reader) readPDFWithOCR(path string) (string, error) {
	// Resolved per call: one Reader serves concurrent web requests.
	rz := r.raster
	if rz == nil {
		var err error
		if rz, err = raster.Detect(r.pdf.Rasterizer); err != nil {
			return "", err
		}
	}
	engine := r.ocr
	if engine == nil {
		engine = ocr.NewTesseractEngine(r.pdf.Languages, r.pdf.DPI)
	}

	pages, err := rz.Rasterize(path, r.pdf.DPI)
	if err != nil {
		return "", err
	}
	texts := make([]string, 0, len(pages))
	for i, img := range pages {
		text, err := engine.Recognize(img)
		if err != nil {
			return "", fmt.Errorf("OCR page %d: %w", i+1, err)
		}
		texts = append(texts, text)
	}
	return strings.Join(texts, "\n"), nil
}

// readPDFTextLayer reads the text embedded in each page, skipping pages
// without content.
func readPDFTextLayer(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	defer f.Close()

	var texts []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d text: %w", i, err)
		}
		texts = append(texts, text)
	}
	return strings.Join(texts, "\n"), nil
}

// toLatin1 replaces every rune ISO 8859-1 cannot encode, and the C1 control
// range, with a placeholder. Tabs are expanded to spaces.
func toLatin1(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\t' {
			b.WriteString(strings.Repeat(" ", spacesPerTab))
			continue
		}
		if _, ok := charmap.ISO8859_1.EncodeRune(r); !ok || (r >= 0x80 && r < 0xa0) {
			b.WriteRune(latin1Placeholder)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// writePDF lays lines out in one column of A4 pages with a single core
// font. Long lines wrap; pages break automatically.
func writePDF(path string, lines []string, cfg types.PDFConfig) error {
	family := cfg.FontFamily
	if family == "" {
		family = defaultFont
	}
	size := cfg.FontSize
	if size <= 0 {
		size = defaultSizePt
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCatalogSort(true)
	doc.SetCreationDate(pdfTimestamp)
	doc.SetModificationDate(pdfTimestamp)
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(true, pdfMargin)
	doc.AddPage()
	doc.SetFont(family, "", size)
	if err := doc.Error(); err != nil {
		return err
	}

	tr := doc.UnicodeTranslatorFromDescriptor("")
	lineHeight := size * ptToMM * lineSpacing
	for _, line := range lines {
		doc.MultiCell(0, lineHeight, tr(toLatin1(line)), "", "L", false)
	}
	return doc.OutputFileAndClose(path)
}
