// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "errors"

// Sentinel errors for the three failure kinds. Every error returned by this
// package wraps exactly one of them; use errors.Is or Kind to classify.
var (
	// ErrNotFound reports a missing input file.
	ErrNotFound = errors.New("file not found")

	// ErrUnsupportedFormat reports an extension outside the readable or
	// writable allowlist.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrConversionFailed reports a failure inside an extraction or
	// rendering library, or in the filesystem around it.
	ErrConversionFailed = errors.New("conversion failed")
)

// ErrorKind names the failure class of an error for entry points.
type ErrorKind string

const (
	KindNone              ErrorKind = ""
	KindNotFound          ErrorKind = "not_found"
	KindUnsupportedFormat ErrorKind = "unsupported_format"
	KindConversionFailed  ErrorKind = "conversion_failed"
)

// Kind classifies err. Errors from outside this package are reported as
// conversion failures; nil reports KindNone.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnsupportedFormat):
		return KindUnsupportedFormat
	default:
		return KindConversionFailed
	}
}
