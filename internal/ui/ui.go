// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/file-converter/pkg/types"
)

// Banner renders the usage screen shown when convert runs without
// arguments.
func Banner(cmdName string) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("File Converter"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Usage: %s <input_file> <output_format>\n\n", cmdName)
	b.WriteString(FormatTable())
	b.WriteString("\n\n")
	b.WriteString(DimStyle.Render("Examples:"))
	b.WriteString("\n")
	for _, ex := range []string{"report.docx pdf", "notes.txt .md", "scan.pdf docx"} {
		fmt.Fprintf(&b, "  %s %s\n", cmdName, ex)
	}
	return BoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// FormatTable lists readable and writable extensions side by side.
func FormatTable() string {
	in := column("Input formats", types.ReadableExtensions(), types.ReadableFormat)
	out := column("Output formats", types.WritableExtensions(), types.WritableFormat)
	return lipgloss.JoinHorizontal(lipgloss.Top, in, "    ", out)
}

func column(title string, exts []string, lookup func(string) (types.Format, bool)) string {
	lines := []string{HighlightStyle.Render(title)}
	for _, ext := range exts {
		f, _ := lookup(ext)
		lines = append(lines, fmt.Sprintf("  %-6s %s", ext, DimStyle.Render(f.Label())))
	}
	return strings.Join(lines, "\n")
}

// Progress formats the line printed before a conversion starts.
func Progress(name string) string {
	return InfoStyle.Render("Converting " + name + "...")
}

// Success formats the line printed after a conversion.
func Success(path string) string {
	return SuccessStyle.Render("✓ Saved to ") + path
}

// Warning formats a non-fatal notice for stderr.
func Warning(msg string) string {
	return WarningStyle.Render("Warning: ") + msg
}

// Error formats an error for stderr.
func Error(msg string) string {
	return ErrorStyle.Render("Error: ") + msg
}

// Hint formats a dim follow-up line, such as an example invocation.
func Hint(msg string) string {
	return DimStyle.Render(msg)
}
