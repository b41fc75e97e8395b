// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger wraps charmbracelet/log with helpers for conversion and
// upload events. Only entry points log; the conversion core stays silent.
package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ConversionStarted logs the start of a conversion
func (l *Logger) ConversionStarted(input, format string) {
	l.Debug("conversion started",
		"input", input,
		"format", format)
}

// ConversionCompleted logs a successful conversion
func (l *Logger) ConversionCompleted(input, output string, duration time.Duration) {
	l.Info("conversion completed",
		"input", input,
		"output", output,
		"duration", duration.Round(time.Millisecond))
}

// ConversionFailed logs a failed conversion
func (l *Logger) ConversionFailed(input, format string, err error) {
	l.Error("conversion failed",
		"input", input,
		"format", format,
		"error", err)
}

// UploadReceived logs an accepted upload
func (l *Logger) UploadReceived(id, name string, size int64) {
	l.Info("upload received",
		"id", id,
		"name", name,
		"bytes", size)
}

// UploadRejected logs an upload that failed validation
func (l *Logger) UploadRejected(name, reason string) {
	l.Warn("upload rejected",
		"name", name,
		"reason", reason)
}

// ServerStarted logs the web form listen address
func (l *Logger) ServerStarted(addr, outputDir string) {
	l.Info("web form listening",
		"addr", "http://"+addr,
		"output_dir", outputDir)
}

// ConfigLoaded logs the config file in use
func (l *Logger) ConfigLoaded(path string) {
	l.Debug("config loaded", "file", path)
}
