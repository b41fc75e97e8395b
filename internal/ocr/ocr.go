// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr recognizes text in rasterized page images.
package ocr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Engine turns one page image into text. Recognition errors and garbage
// output are returned as-is; callers do not correct them.
type Engine interface {
	Recognize(image []byte) (string, error)
}

// TesseractEngine implements Engine with the gosseract client. A fresh
// client is created per page.
type TesseractEngine struct {
	languages     []string
	dpi           int
	clientFactory func() *gosseract.Client
}

// NewTesseractEngine constructs a Tesseract-backed engine. Empty languages
// leave Tesseract's default (eng); dpi <= 0 lets Tesseract guess.
func NewTesseractEngine(languages []string, dpi int) *TesseractEngine {
	return &TesseractEngine{
		languages:     languages,
		dpi:           dpi,
		clientFactory: gosseract.NewClient,
	}
}

// Recognize runs OCR on a PNG (or any format Leptonica decodes).
func (e *TesseractEngine) Recognize(image []byte) (string, error) {
	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return "", fmt.Errorf("set languages %s: %w", strings.Join(e.languages, "+"), err)
		}
	}
	if e.dpi > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), strconv.Itoa(e.dpi)); err != nil {
			return "", fmt.Errorf("set dpi: %w", err)
		}
	}
	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}
