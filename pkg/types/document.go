// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Document is the plain-text pivot every conversion passes through. It holds
// no formatting, images, or structure: a single string whose lines are
// separated by "\n".
type Document struct {
	Text string
}

// NewDocument wraps extracted text.
func NewDocument(text string) Document {
	return Document{Text: text}
}

// Lines splits the text on "\n". An empty document has a single empty line.
func (d Document) Lines() []string {
	return strings.Split(d.Text, "\n")
}

// ConversionRequest describes one validated conversion.
type ConversionRequest struct {
	// InputPath is the source file on disk.
	InputPath string `json:"input_path" yaml:"input_path"`

	// Input is the format the source is read as.
	Input Format `json:"input" yaml:"input"`

	// Output is the target format.
	Output Format `json:"output" yaml:"output"`
}

// ConversionResult is what an entry point hands back to the user after a
// successful conversion. It is not retained by the converter; Content is
// filled only when the bytes are served, as by the web download.
type ConversionResult struct {
	// OutputPath is the absolute path of the persisted output.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Filename is the base name offered for download.
	Filename string `json:"filename" yaml:"filename"`

	// Content is the converted file's bytes.
	Content []byte `json:"-" yaml:"-"`
}
