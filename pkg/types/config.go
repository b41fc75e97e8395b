// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"os"
	"path/filepath"
)

// PDFExtractMode selects how text is pulled out of a PDF.
type PDFExtractMode string

const (
	// ExtractOCR rasterizes every page and runs OCR on the images.
	ExtractOCR PDFExtractMode = "ocr"
	// ExtractText reads the embedded text layer only.
	ExtractText PDFExtractMode = "text"
	// ExtractAuto reads the text layer and falls back to OCR when it is empty.
	ExtractAuto PDFExtractMode = "auto"
)

// Valid reports whether m is one of the known modes.
func (m PDFExtractMode) Valid() bool {
	switch m {
	case ExtractOCR, ExtractText, ExtractAuto:
		return true
	}
	return false
}

// PDFConfig holds settings for reading and writing PDFs.
type PDFConfig struct {
	// Extract selects the extraction strategy: ocr, text, or auto.
	Extract PDFExtractMode `json:"extract" yaml:"extract" mapstructure:"extract"`

	// DPI is the rasterization resolution handed to the rasterizer and OCR engine.
	DPI int `json:"dpi" yaml:"dpi" mapstructure:"dpi"`

	// Languages lists Tesseract language codes (e.g. "eng", "deu").
	Languages []string `json:"languages" yaml:"languages" mapstructure:"languages"`

	// Rasterizer is the preferred page renderer binary: pdftoppm or mutool.
	Rasterizer string `json:"rasterizer" yaml:"rasterizer" mapstructure:"rasterizer"`

	// FontFamily is the core PDF font used when writing (Helvetica, Courier, Times).
	FontFamily string `json:"font_family" yaml:"font_family" mapstructure:"font_family"`

	// FontSize is the point size used when writing.
	FontSize float64 `json:"font_size" yaml:"font_size" mapstructure:"font_size"`
}

// RTFConfig holds settings for writing RTF.
type RTFConfig struct {
	// Font is the single font declared in the RTF font table.
	Font string `json:"font" yaml:"font" mapstructure:"font"`
}

// WebConfig holds settings for the upload form server.
type WebConfig struct {
	// Addr is the listen address (host:port).
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// MaxUploadMB caps the size of an uploaded file in megabytes.
	MaxUploadMB int64 `json:"max_upload_mb" yaml:"max_upload_mb" mapstructure:"max_upload_mb"`

	// AllowedOrigins enables CORS for the listed origins when non-empty.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// Config groups all converter settings.
type Config struct {
	// OutputDir is the flat directory every conversion is written to.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	PDF PDFConfig `json:"pdf" yaml:"pdf" mapstructure:"pdf"`
	RTF RTFConfig `json:"rtf" yaml:"rtf" mapstructure:"rtf"`
	Web WebConfig `json:"web" yaml:"web" mapstructure:"web"`
}

// DefaultOutputDir returns ~/Desktop/Converted Documents, or a relative
// "Converted Documents" when the home directory cannot be determined.
func DefaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "Converted Documents"
	}
	return filepath.Join(home, "Desktop", "Converted Documents")
}

// DefaultConfig returns the settings used when no config file or flag
// overrides them.
func DefaultConfig() Config {
	return Config{
		OutputDir: DefaultOutputDir(),
		PDF: PDFConfig{
			Extract:    ExtractOCR,
			DPI:        200,
			Languages:  []string{"eng"},
			Rasterizer: "pdftoppm",
			FontFamily: "Helvetica",
			FontSize:   11,
		},
		RTF: RTFConfig{
			Font: "Helvetica",
		},
		Web: WebConfig{
			Addr:        "127.0.0.1:8501",
			MaxUploadMB: 200,
		},
	}
}
