// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a document of one format into another through a
// plain-text pivot. A Reader extracts text per input format, a Writer
// renders it per output format, and Converter validates requests and
// places results in a fixed output directory.
package convert

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/file-converter/internal/ocr"
	"github.com/pdiddy/file-converter/internal/raster"
	"github.com/pdiddy/file-converter/pkg/types"
)

// Converter validates conversion requests and runs them read-then-write.
// It keeps no state between calls apart from the output directory.
type Converter struct {
	outputDir string
	reader    *Reader
	writer    *Writer
}

// Option customizes a Converter.
type Option func(*Converter)

// WithOCREngine injects the engine used for PDF pages.
func WithOCREngine(e ocr.Engine) Option {
	return func(c *Converter) { c.reader.SetOCREngine(e) }
}

// WithRasterizer injects the PDF page renderer.
func WithRasterizer(rz raster.Rasterizer) Option {
	return func(c *Converter) { c.reader.SetRasterizer(rz) }
}

// New creates a Converter writing into cfg.OutputDir. The directory is
// created on the first conversion, not here.
func New(cfg types.Config, opts ...Option) *Converter {
	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = types.DefaultOutputDir()
	}
	c := &Converter{
		outputDir: outDir,
		reader:    NewReader(cfg.PDF),
		writer:    NewWriter(cfg.PDF, cfg.RTF),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OutputDir returns the directory conversions are written to.
func (c *Converter) OutputDir() string {
	return c.outputDir
}

// Validate checks a request without touching the filesystem beyond a stat
// of the input. A missing input is reported before any format problem.
func (c *Converter) Validate(inputPath, outputFormat string) (types.ConversionRequest, error) {
	if _, err := os.Stat(inputPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.ConversionRequest{}, fmt.Errorf("%w: %s", ErrNotFound, inputPath)
		}
		return types.ConversionRequest{}, fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}

	inExt := types.NormalizeExt(filepath.Ext(inputPath))
	in, ok := types.ReadableFormat(inExt)
	if !ok {
		if inExt == "" {
			return types.ConversionRequest{}, fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, inputPath)
		}
		return types.ConversionRequest{}, fmt.Errorf("%w: cannot read %s", ErrUnsupportedFormat, inExt)
	}

	outExt := types.NormalizeExt(outputFormat)
	if outExt == "" {
		return types.ConversionRequest{}, fmt.Errorf("%w: no output format given", ErrUnsupportedFormat)
	}
	out, ok := types.WritableFormat(outExt)
	if !ok {
		return types.ConversionRequest{}, fmt.Errorf("%w: cannot write %s", ErrUnsupportedFormat, outExt)
	}

	return types.ConversionRequest{InputPath: inputPath, Input: in, Output: out}, nil
}

// OutputPath returns the absolute destination <outputDir>/<stem><ext> for
// a request.
func (c *Converter) OutputPath(req types.ConversionRequest) (string, error) {
	base := filepath.Base(req.InputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	p, err := filepath.Abs(filepath.Join(c.outputDir, stem+req.Output.Ext()))
	if err != nil {
		return "", fmt.Errorf("%w: resolving output path: %w", ErrConversionFailed, err)
	}
	return p, nil
}

// Convert reads inputPath, renders it as outputFormat (".pdf", "PDF", and
// "pdf" are equivalent), and returns the absolute path of the result. An
// existing file at that path is overwritten.
func (c *Converter) Convert(inputPath, outputFormat string) (string, error) {
	req, err := c.Validate(inputPath, outputFormat)
	if err != nil {
		return "", err
	}
	outPath, err := c.OutputPath(req)
	if err != nil {
		return "", err
	}

	doc, err := c.reader.Read(req.InputPath, req.Input)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", fmt.Errorf("%w: creating output directory: %w", ErrConversionFailed, err)
	}
	if err := c.writer.Write(outPath, doc, req.Output); err != nil {
		return "", err
	}
	return outPath, nil
}
