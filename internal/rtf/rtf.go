// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rtf reads and writes the plain-text subset of the Rich Text Format.
// Decoding strips control words and ignorable destinations and keeps the
// visible text; encoding emits one paragraph per input line under a fixed
// single-font ANSI preamble.
package rtf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// maxParam bounds control-word parameters.
const maxParam = math.MaxInt32

// DefaultFont is declared in the font table when the caller passes none.
const DefaultFont = "Helvetica"

// Encode renders text as an RTF document. Each "\n"-separated line becomes
// one paragraph. Backslashes and braces are escaped, tabs become \tab, and
// runes outside ASCII are emitted as \uN? escapes.
func Encode(text, font string) []byte {
	if font == "" {
		font = DefaultFont
	}
	var b strings.Builder
	fmt.Fprintf(&b, "{\\rtf1\\ansi\\ansicpg1252\\deff0{\\fonttbl{\\f0\\fnil %s;}}\n", Escape(font))
	b.WriteString("\\f0\\fs22\n")
	for _, line := range strings.Split(text, "\n") {
		b.WriteString("{\\pard ")
		b.WriteString(Escape(line))
		b.WriteString("\\par}\n")
	}
	b.WriteString("}\n")
	return []byte(b.String())
}

// Escape makes s safe for an RTF text run.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\\' || r == '{' || r == '}':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\t':
			b.WriteString("\\tab ")
		case r == '\r':
		case r < 0x80:
			b.WriteRune(r)
		default:
			for _, u := range utf16.Encode([]rune{r}) {
				fmt.Fprintf(&b, "\\u%d?", int16(u))
			}
		}
	}
	return b.String()
}

// skipDestinations are groups whose content is never visible text.
var skipDestinations = map[string]bool{
	"fonttbl":            true,
	"colortbl":           true,
	"stylesheet":         true,
	"info":               true,
	"pict":               true,
	"object":             true,
	"objdata":            true,
	"header":             true,
	"headerl":            true,
	"headerr":            true,
	"headerf":            true,
	"footer":             true,
	"footerl":            true,
	"footerr":            true,
	"footerf":            true,
	"fldinst":            true,
	"listtable":          true,
	"listoverridetable":  true,
	"revtbl":             true,
	"rsidtbl":            true,
	"generator":          true,
	"xmlnstbl":           true,
	"themedata":          true,
	"colorschememapping": true,
	"datastore":          true,
	"latentstyles":       true,
	"filetbl":            true,
}

// symbolWords map control words to the text they stand for.
var symbolWords = map[string]string{
	"par":       "\n",
	"line":      "\n",
	"sect":      "\n",
	"page":      "\n",
	"row":       "\n",
	"tab":       "\t",
	"cell":      "\t",
	"emdash":    "\u2014",
	"endash":    "\u2013",
	"emspace":   " ",
	"enspace":   " ",
	"qmspace":   " ",
	"bullet":    "\u2022",
	"lquote":    "\u2018",
	"rquote":    "\u2019",
	"ldblquote": "\u201c",
	"rdblquote": "\u201d",
}

// codePages maps \ansicpgN values to their decoders.
var codePages = map[int]*charmap.Charmap{
	437:  charmap.CodePage437,
	850:  charmap.CodePage850,
	1250: charmap.Windows1250,
	1251: charmap.Windows1251,
	1252: charmap.Windows1252,
	1253: charmap.Windows1253,
	1254: charmap.Windows1254,
	1255: charmap.Windows1255,
	1256: charmap.Windows1256,
	1257: charmap.Windows1257,
	1258: charmap.Windows1258,
}

type groupState struct {
	skip bool
	uc   int
}

type decoder struct {
	src       []byte
	pos       int
	out       strings.Builder
	state     groupState
	stack     []groupState
	cp        *charmap.Charmap
	pending   int  // fallback characters still to skip after \uN
	surrogate rune // high surrogate awaiting its pair
}

// Decode extracts the visible text of an RTF document. Paragraph and line
// marks become "\n"; a single paragraph mark at the very end of the document
// does not produce a trailing empty line. Unbalanced groups are tolerated.
func Decode(src []byte) (string, error) {
	if !strings.HasPrefix(strings.TrimLeft(string(src[:min(len(src), 64)]), " \t\r\n"), "{\\rtf") {
		return "", fmt.Errorf("not an RTF document: missing {\\rtf header")
	}
	d := &decoder{src: src, cp: charmap.Windows1252, state: groupState{uc: 1}}
	d.run()
	return strings.TrimSuffix(d.out.String(), "\n"), nil
}

func (d *decoder) run() {
	for d.pos < len(d.src) {
		c := d.src[d.pos]
		switch c {
		case '{':
			d.pos++
			d.stack = append(d.stack, d.state)
		case '}':
			d.pos++
			if n := len(d.stack); n > 0 {
				d.state = d.stack[n-1]
				d.stack = d.stack[:n-1]
			}
			d.pending = 0
		case '\\':
			d.pos++
			d.control()
		case '\r', '\n':
			d.pos++
		default:
			d.pos++
			d.emitByte(c)
		}
	}
}

func (d *decoder) control() {
	if d.pos >= len(d.src) {
		return
	}
	c := d.src[d.pos]
	switch {
	case c == '\\' || c == '{' || c == '}':
		d.pos++
		d.emitRune(rune(c))
	case c == '\'':
		d.pos++
		if d.pos+2 > len(d.src) {
			d.pos = len(d.src)
			return
		}
		v, err := strconv.ParseUint(string(d.src[d.pos:d.pos+2]), 16, 8)
		d.pos += 2
		if err != nil {
			return
		}
		d.emitByte(byte(v))
	case c == '*':
		d.pos++
		d.state.skip = true
	case c == '~':
		d.pos++
		d.emitRune('\u00a0')
	case c == '_':
		d.pos++
		d.emitRune('-')
	case c == '\r' || c == '\n':
		d.pos++
		d.emitRune('\n')
	case isLetter(c):
		word, param, hasParam := d.readWord()
		d.word(word, param, hasParam)
	default:
		d.pos++
	}
}

func (d *decoder) readWord() (word string, param int, hasParam bool) {
	start := d.pos
	for d.pos < len(d.src) && isLetter(d.src[d.pos]) {
		d.pos++
	}
	word = string(d.src[start:d.pos])

	neg := false
	if d.pos < len(d.src) && d.src[d.pos] == '-' {
		neg = true
		d.pos++
	}
	digits := d.pos
	for d.pos < len(d.src) && d.src[d.pos] >= '0' && d.src[d.pos] <= '9' {
		// Parameters are signed 16- or 32-bit; longer digit runs saturate.
		if param > (maxParam-9)/10 {
			param = maxParam
		} else {
			param = param*10 + int(d.src[d.pos]-'0')
		}
		d.pos++
	}
	hasParam = d.pos > digits
	if neg {
		if !hasParam {
			d.pos--
		}
		param = -param
	}
	if d.pos < len(d.src) && d.src[d.pos] == ' ' {
		d.pos++
	}
	return word, param, hasParam
}

func (d *decoder) word(word string, param int, hasParam bool) {
	if skipDestinations[word] {
		d.state.skip = true
		return
	}
	switch word {
	case "ansicpg":
		if cm, ok := codePages[param]; ok {
			d.cp = cm
		}
		return
	case "uc":
		if hasParam && param >= 0 {
			d.state.uc = param
		}
		return
	case "u":
		if !hasParam {
			return
		}
		if param < 0 {
			param += 0x10000
		}
		d.emitUnit(rune(param))
		d.pending = d.state.uc
		return
	case "bin":
		if hasParam && param > 0 {
			d.pos += min(param, len(d.src)-d.pos)
		}
		return
	}
	if s, ok := symbolWords[word]; ok {
		d.emitString(s)
	}
}

// emitByte decodes a code-page byte.
func (d *decoder) emitByte(b byte) {
	if b < 0x80 {
		d.emitRune(rune(b))
		return
	}
	d.emitRune(d.cp.DecodeByte(b))
}

func (d *decoder) emitUnit(u rune) {
	if d.state.skip {
		return
	}
	if utf16.IsSurrogate(u) {
		if d.surrogate != 0 {
			d.out.WriteRune(utf16.DecodeRune(d.surrogate, u))
			d.surrogate = 0
			return
		}
		d.surrogate = u
		return
	}
	d.surrogate = 0
	d.out.WriteRune(u)
}

func (d *decoder) emitRune(r rune) {
	d.emitString(string(r))
}

func (d *decoder) emitString(s string) {
	if d.pending > 0 {
		d.pending--
		return
	}
	if d.state.skip {
		return
	}
	d.out.WriteString(s)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
