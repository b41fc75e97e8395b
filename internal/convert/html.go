// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// skippedElements never contribute text. The head is skipped as a whole so
// a document's <title> is not mistaken for body text.
var skippedElements = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
}

// blockElements start and end a line of extracted text.
var blockElements = map[atom.Atom]bool{
	atom.Address:    true,
	atom.Article:    true,
	atom.Aside:      true,
	atom.Blockquote: true,
	atom.Body:       true,
	atom.Caption:    true,
	atom.Dd:         true,
	atom.Details:    true,
	atom.Div:        true,
	atom.Dl:         true,
	atom.Dt:         true,
	atom.Fieldset:   true,
	atom.Figcaption: true,
	atom.Figure:     true,
	atom.Footer:     true,
	atom.Form:       true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Header:     true,
	atom.Hr:         true,
	atom.Li:         true,
	atom.Main:       true,
	atom.Nav:        true,
	atom.Ol:         true,
	atom.P:          true,
	atom.Pre:        true,
	atom.Section:    true,
	atom.Summary:    true,
	atom.Table:      true,
	atom.Tr:         true,
	atom.Ul:         true,
}

// htmlText collects visible text line by line. Inline text accumulates in
// cur until a block boundary, where it is whitespace-collapsed and kept if
// non-empty.
type htmlText struct {
	lines []string
	cur   strings.Builder
}

func (h *htmlText) flush() {
	line := strings.Join(strings.Fields(h.cur.String()), " ")
	h.cur.Reset()
	if line != "" {
		h.lines = append(h.lines, line)
	}
}

func (h *htmlText) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		h.cur.WriteString(n.Data)
		return
	case html.ElementNode:
		if skippedElements[n.DataAtom] {
			return
		}
		if n.DataAtom == atom.Br {
			h.flush()
			return
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}

	block := n.Type == html.ElementNode && blockElements[n.DataAtom]
	if block {
		h.flush()
	} else if n.DataAtom == atom.Td || n.DataAtom == atom.Th {
		// Adjacent cells of one row must not fuse into one word.
		h.cur.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		h.walk(c)
	}
	if block {
		h.flush()
	}
}

// extractHTML parses r and returns its visible text, one block per line.
func extractHTML(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}
	var h htmlText
	h.walk(doc)
	h.flush()
	return strings.Join(h.lines, "\n"), nil
}

// renderHTML emits a fixed HTML5 skeleton with one <p> per non-blank line.
func renderHTML(w io.Writer, title string, lines []string) error {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("</head>\n<body>\n")
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(line))
	}
	b.WriteString("</body>\n</html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}
