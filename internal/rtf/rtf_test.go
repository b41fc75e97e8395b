// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rtf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_EscapesBracesAndBackslash(t *testing.T) {
	out := string(Encode(`a{b}c\d`, ""))

	assert.Contains(t, out, `a\{b\}c\\d`)
	assert.True(t, strings.HasPrefix(out, `{\rtf1\ansi`), "document should open with the RTF header")
	assert.Contains(t, out, `{\fonttbl{\f0\fnil Helvetica;}}`)

	got, err := Decode([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, `a{b}c\d`, got)
}

func TestEncode_OneParagraphPerLine(t *testing.T) {
	out := string(Encode("first\nsecond\n\nfourth", "Courier"))
	assert.Equal(t, 4, strings.Count(out, `\par}`))
	assert.Contains(t, out, `\f0\fnil Courier;`)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"single line", "Hello"},
		{"two lines", "Hello\nWorld"},
		{"blank line kept", "Hello\n\nWorld"},
		{"trailing newline kept", "Hello\n"},
		{"leading spaces", "   indented"},
		{"tabs", "col1\tcol2"},
		{"latin-1", "café naïve"},
		{"outside BMP", "note \U0001F600 end"},
		{"cyrillic", "Привет"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(Encode(tt.text, ""))
			require.NoError(t, err)
			assert.Equal(t, tt.text, got)
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "skips font and color tables",
			src:  `{\rtf1\ansi{\fonttbl{\f0 Arial;}}{\colortbl;\red255\green0\blue0;}\f0 Hello\par}`,
			want: "Hello",
		},
		{
			name: "ignorable destination",
			src:  `{\rtf1{\*\generator Riched20;}Text{\*\unknown hidden} here\par}`,
			want: "Text here",
		},
		{
			name: "hex escapes use windows-1252",
			src:  `{\rtf1\ansi caf\'e9 \'93quoted\'94\par}`,
			want: "café “quoted”",
		},
		{
			name: "code page switch",
			src:  `{\rtf1\ansi\ansicpg1251 \'cf\'f0\'e8\par}`,
			want: "При",
		},
		{
			name: "unicode with fallback skip",
			src:  `{\rtf1\uc1\u8364?5\par}`,
			want: "€5",
		},
		{
			name: "uc0 means no fallback",
			src:  `{\rtf1\uc0\u8364 5\par}`,
			want: "€5",
		},
		{
			name: "line and tab",
			src:  `{\rtf1 a\line b\tab c}`,
			want: "a\nb\tc",
		},
		{
			name: "raw newlines are not content",
			src:  "{\\rtf1 one\r\ntwo\\par}",
			want: "onetwo",
		},
		{
			name: "field instruction hidden, result shown",
			src:  `{\rtf1{\field{\*\fldinst HYPERLINK "x"}{\fldrslt link}}\par}`,
			want: "link",
		},
		{
			name: "typographic symbols",
			src:  `{\rtf1 a\emdash b\bullet\par}`,
			want: "a—b•",
		},
		{
			name: "oversized bin length skips to the end",
			src:  `{\rtf1 hello\bin9223372036854775800 x}`,
			want: "hello",
		},
		{
			name: "oversized unicode value becomes replacement char",
			src:  `{\rtf1 x\u99999999999999999999?y\par}`,
			want: "x\uFFFDy",
		},
		{
			name: "oversized negative unicode value",
			src:  `{\rtf1 x\u-99999999999999999999?y\par}`,
			want: "x\uFFFDy",
		},
		{
			name: "oversized uc is scoped to its group",
			src:  `{\rtf1 a{\uc99999999999999999\u8364 hidden}b\par}`,
			want: "a\u20acb",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_RejectsNonRTF(t *testing.T) {
	_, err := Decode([]byte("just some text"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an RTF document")
}

func TestDecode_UnbalancedGroups(t *testing.T) {
	got, err := Decode([]byte(`{\rtf1 Hello}}} world`))
	require.NoError(t, err)
	assert.Equal(t, "Hello world", got)
}
