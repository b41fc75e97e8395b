// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package raster renders PDF pages to PNG images by running an external
// renderer: poppler's pdftoppm or MuPDF's mutool. Both share one
// implementation and differ only in binary name and argument layout.
package raster

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	BinPdftoppm = "pdftoppm"
	BinMutool   = "mutool"

	pagePrefix = "page"
)

// Rasterizer turns every page of a PDF into a PNG image.
type Rasterizer interface {
	// Name returns the renderer binary name ("pdftoppm" or "mutool").
	Name() string

	// Available reports whether the renderer binary exists on PATH.
	Available() bool

	// Rasterize renders pdfPath at dpi and returns one PNG per page in page
	// order.
	Rasterize(pdfPath string, dpi int) ([][]byte, error)
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args []string, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args []string, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stderr = stderr
	return cmd.Run()
}

// renderer implements Rasterizer for one binary. argsFor builds the command
// line that writes pages as <outPrefix>-<n>.png.
type renderer struct {
	bin     string
	argsFor func(pdfPath, outPrefix string, dpi int) []string
	exec    executor
}

func (r *renderer) Name() string { return r.bin }

func (r *renderer) Available() bool {
	_, err := r.exec.LookPath(r.bin)
	return err == nil
}

func (r *renderer) Rasterize(pdfPath string, dpi int) ([][]byte, error) {
	outDir, err := os.MkdirTemp("", "raster-*")
	if err != nil {
		return nil, fmt.Errorf("creating raster directory: %w", err)
	}
	defer os.RemoveAll(outDir)

	var stderr bytes.Buffer
	args := r.argsFor(pdfPath, filepath.Join(outDir, pagePrefix), dpi)
	if err := r.exec.Run(r.bin, args, &stderr); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("running %s on %s: %w: %s", r.bin, pdfPath, err, msg)
		}
		return nil, fmt.Errorf("running %s on %s: %w", r.bin, pdfPath, err)
	}

	pages, err := collectPages(outDir)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%s produced no pages for %s", r.bin, pdfPath)
	}
	return pages, nil
}

// collectPages reads page-<n>.png files from dir ordered by n. pdftoppm
// zero-pads n depending on the page count, so ordering is numeric.
func collectPages(dir string) ([][]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading raster directory: %w", err)
	}

	type page struct {
		num  int
		path string
	}
	var found []page
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".png" || !strings.HasPrefix(name, pagePrefix+"-") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, pagePrefix+"-"), ".png"))
		if err != nil {
			continue
		}
		found = append(found, page{num: n, path: filepath.Join(dir, name)})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].num < found[j].num })

	images := make([][]byte, 0, len(found))
	for _, p := range found {
		data, err := os.ReadFile(p.path)
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", p.num, err)
		}
		images = append(images, data)
	}
	return images, nil
}

func newPdftoppm(exec executor) *renderer {
	return &renderer{
		bin: BinPdftoppm,
		argsFor: func(pdfPath, outPrefix string, dpi int) []string {
			return []string{"-r", strconv.Itoa(dpi), "-png", pdfPath, outPrefix}
		},
		exec: exec,
	}
}

func newMutool(exec executor) *renderer {
	return &renderer{
		bin: BinMutool,
		argsFor: func(pdfPath, outPrefix string, dpi int) []string {
			return []string{"draw", "-q", "-r", strconv.Itoa(dpi), "-o", outPrefix + "-%d.png", pdfPath}
		},
		exec: exec,
	}
}

var defaultExec = &osExecutor{}

// Detect returns the preferred renderer when it is on PATH and falls back to
// the other one. An empty preference means pdftoppm.
func Detect(preferred string) (Rasterizer, error) {
	return detect(defaultExec, preferred)
}

func detect(exec executor, preferred string) (Rasterizer, error) {
	var order []*renderer
	switch preferred {
	case "", BinPdftoppm:
		order = []*renderer{newPdftoppm(exec), newMutool(exec)}
	case BinMutool:
		order = []*renderer{newMutool(exec), newPdftoppm(exec)}
	default:
		return nil, fmt.Errorf("unknown rasterizer %q: want %s or %s", preferred, BinPdftoppm, BinMutool)
	}

	for _, r := range order {
		if r.Available() {
			return r, nil
		}
	}
	return nil, fmt.Errorf(
		"no PDF rasterizer available: neither %s nor %s found on PATH",
		BinPdftoppm, BinMutool,
	)
}
