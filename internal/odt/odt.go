// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package odt reads and writes OpenDocument Text packages at paragraph
// granularity. Reading walks content.xml and returns the text of every
// text:p and text:h element in document order; writing emits one text:p per
// line into a minimal, valid package.
package odt

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

const (
	mimeType = "application/vnd.oasis.opendocument.text"

	nsText   = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"
	nsOffice = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"
)

// maxSpaceRun caps the spaces a single text:s may expand to.
const maxSpaceRun = 1 << 16

// packageTime is stamped on every zip entry so identical text produces
// identical bytes.
var packageTime = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Read returns the paragraphs of the ODT package in r, in document order.
func Read(r io.ReaderAt, size int64) ([]string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening ODT package: %w", err)
	}
	var content *zip.File
	for _, f := range zr.File {
		if f.Name == "content.xml" {
			content = f
			break
		}
	}
	if content == nil {
		return nil, fmt.Errorf("ODT package has no content.xml")
	}
	rc, err := content.Open()
	if err != nil {
		return nil, fmt.Errorf("opening content.xml: %w", err)
	}
	defer rc.Close()
	return paragraphs(rc)
}

// paragraph accumulates the text of one text:p or text:h, applying the ODF
// whitespace rules: runs of literal whitespace collapse to one space,
// leading and trailing collapsible space is dropped, and text:s, text:tab,
// and text:line-break insert literal characters.
type paragraph struct {
	b           strings.Builder
	collapsible bool // last byte written is a collapsed space
}

func (p *paragraph) chars(s string) {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			if p.collapsible || p.b.Len() == 0 {
				continue
			}
			p.b.WriteByte(' ')
			p.collapsible = true
		default:
			p.b.WriteRune(r)
			p.collapsible = false
		}
	}
}

func (p *paragraph) literal(s string) {
	p.b.WriteString(s)
	p.collapsible = false
}

func (p *paragraph) String() string {
	s := p.b.String()
	if p.collapsible {
		s = s[:len(s)-1]
	}
	return s
}

func paragraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var (
		out   []string
		cur   *paragraph
		depth int // nesting of text:p/text:h inside the current paragraph
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing content.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != nsText {
				continue
			}
			switch t.Name.Local {
			case "p", "h":
				if cur == nil {
					cur = &paragraph{}
				} else {
					depth++
				}
			case "s":
				if cur != nil {
					cur.literal(strings.Repeat(" ", spaceCount(t)))
				}
			case "tab":
				if cur != nil {
					cur.literal("\t")
				}
			case "line-break":
				if cur != nil {
					cur.literal("\n")
				}
			}
		case xml.EndElement:
			if t.Name.Space != nsText || (t.Name.Local != "p" && t.Name.Local != "h") || cur == nil {
				continue
			}
			if depth > 0 {
				depth--
				continue
			}
			out = append(out, cur.String())
			cur = nil
		case xml.CharData:
			if cur != nil {
				cur.chars(string(t))
			}
		}
	}
	return out, nil
}

func spaceCount(t xml.StartElement) int {
	for _, a := range t.Attr {
		if a.Name.Space == nsText && a.Name.Local == "c" {
			if n, err := strconv.Atoi(a.Value); err == nil && n > 0 {
				return min(n, maxSpaceRun)
			}
		}
	}
	return 1
}

// Write produces an ODT package containing one paragraph per line.
func Write(w io.Writer, lines []string) error {
	zw := zip.NewWriter(w)

	// The mimetype entry must come first and be stored uncompressed.
	if err := writeEntry(zw, "mimetype", []byte(mimeType), zip.Store); err != nil {
		return err
	}
	entries := []struct {
		name string
		data []byte
	}{
		{"content.xml", contentXML(lines)},
		{"styles.xml", []byte(stylesXML)},
		{"meta.xml", []byte(metaXML)},
		{"META-INF/manifest.xml", []byte(manifestXML)},
	}
	for _, e := range entries {
		if err := writeEntry(zw, e.name, e.data, zip.Deflate); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing ODT package: %w", err)
	}
	return nil
}

func writeEntry(zw *zip.Writer, name string, data []byte, method uint16) error {
	fw, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   method,
		Modified: packageTime,
	})
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func contentXML(lines []string) []byte {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.WriteString(`<office:document-content xmlns:office="` + nsOffice + `" xmlns:text="` + nsText + `" office:version="1.2">`)
	b.WriteString(`<office:body><office:text>`)
	for _, line := range lines {
		b.WriteString(`<text:p text:style-name="Standard">`)
		encodeLine(&b, line)
		b.WriteString(`</text:p>`)
	}
	b.WriteString(`</office:text></office:body></office:document-content>`)
	return b.Bytes()
}

// encodeLine writes line so that an ODF consumer reproduces it exactly:
// the first space of an inner run stays literal and the rest of the run,
// plus any leading or trailing run, goes into text:s.
func encodeLine(b *bytes.Buffer, line string) {
	spaces := 0
	atStart := true
	flush := func(edge bool) {
		if spaces == 0 {
			return
		}
		n := spaces
		if !edge {
			b.WriteByte(' ')
			n--
		}
		switch {
		case n == 1:
			b.WriteString(`<text:s/>`)
		case n > 1:
			fmt.Fprintf(b, `<text:s text:c="%d"/>`, n)
		}
		spaces = 0
	}
	for _, r := range line {
		switch r {
		case ' ':
			spaces++
			continue
		case '\r':
			continue
		}
		flush(atStart)
		atStart = false
		if r == '\t' {
			b.WriteString(`<text:tab/>`)
			continue
		}
		xml.EscapeText(b, []byte(string(r)))
	}
	flush(true)
}

const stylesXML = xml.Header + `<office:document-styles xmlns:office="` + nsOffice + `" xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0" office:version="1.2">` +
	`<office:styles><style:style style:name="Standard" style:family="paragraph" style:class="text"/></office:styles>` +
	`</office:document-styles>`

const metaXML = xml.Header + `<office:document-meta xmlns:office="` + nsOffice + `" xmlns:meta="urn:oasis:names:tc:opendocument:xmlns:meta:1.0" office:version="1.2">` +
	`<office:meta><meta:generator>file-converter</meta:generator></office:meta>` +
	`</office:document-meta>`

const manifestXML = xml.Header + `<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0" manifest:version="1.2">` +
	`<manifest:file-entry manifest:full-path="/" manifest:version="1.2" manifest:media-type="` + mimeType + `"/>` +
	`<manifest:file-entry manifest:full-path="content.xml" manifest:media-type="text/xml"/>` +
	`<manifest:file-entry manifest:full-path="styles.xml" manifest:media-type="text/xml"/>` +
	`<manifest:file-entry manifest:full-path="meta.xml" manifest:media-type="text/xml"/>` +
	`</manifest:manifest>`
