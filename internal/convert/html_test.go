// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHTML(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "paragraphs become lines",
			html: "<html><body><p>Hello</p><p>World</p></body></html>",
			want: "Hello\nWorld",
		},
		{
			name: "script and style removed",
			html: "<html><head><style>body{color:red}</style></head><body><p>Visible</p><script>alert('x')</script></body></html>",
			want: "Visible",
		},
		{
			name: "title is not body text",
			html: "<html><head><title>Page title</title></head><body>Body</body></html>",
			want: "Body",
		},
		{
			name: "whitespace collapsed inside a block",
			html: "<p>  spread \n\t across   <b>inline</b>   tags  </p>",
			want: "spread across inline tags",
		},
		{
			name: "inline elements do not split words",
			html: "<p>H<sub>2</sub>O</p>",
			want: "H2O",
		},
		{
			name: "br breaks a line",
			html: "<p>line one<br>line two</p>",
			want: "line one\nline two",
		},
		{
			name: "nested blocks and lists",
			html: "<div><h1>Title</h1><ul><li>one</li><li>two</li></ul>tail</div>",
			want: "Title\none\ntwo\ntail",
		},
		{
			name: "table cells separated",
			html: "<table><tr><td>a</td><td>b</td></tr><tr><td>c</td><td>d</td></tr></table>",
			want: "a b\nc d",
		},
		{
			name: "entities decoded",
			html: "<p>Fish &amp; Chips &lt;3</p>",
			want: "Fish & Chips <3",
		},
		{
			name: "comments and noscript ignored",
			html: "<p>kept<!-- hidden --></p><noscript>enable js</noscript>",
			want: "kept",
		},
		{
			name: "empty document",
			html: "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractHTML(strings.NewReader(tt.html))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderHTML(&buf, "My <Doc>", []string{"Hello", "", "   ", "a < b & c"}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>\n"))
	assert.Contains(t, out, "<title>My &lt;Doc&gt;</title>")
	assert.Contains(t, out, "<p>Hello</p>")
	assert.Contains(t, out, "<p>a &lt; b &amp; c</p>")
	assert.Equal(t, 2, strings.Count(out, "<p>"), "blank lines are dropped")

	back, err := extractHTML(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "Hello\na < b & c", back)
}
