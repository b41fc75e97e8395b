// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the single-page upload form. An upload is kept in a
// temporary directory under a random token until the user picks a target
// format; the conversion then runs against that temporary copy, which is
// removed afterwards, and the result is offered for download from the
// converter's output directory.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/pdiddy/file-converter/internal/convert"
	"github.com/pdiddy/file-converter/internal/logger"
	"github.com/pdiddy/file-converter/pkg/types"
)

const (
	// uploadTTL bounds how long an unconverted upload is kept.
	uploadTTL = time.Hour

	multipartMemory   = 32 << 20
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

// Converter is the subset of convert.Converter the form needs.
type Converter interface {
	Convert(inputPath, outputFormat string) (string, error)
	OutputDir() string
}

type upload struct {
	id       string
	dir      string
	path     string
	name     string
	ext      string
	size     int64
	received time.Time
}

type formatOption struct {
	Ext   string
	Label string
}

type uploadView struct {
	ID      string
	Name    string
	SizeKB  float64
	Options []formatOption
}

type resultView struct {
	Filename    string
	DownloadURL string
	SavedTo     string
}

type pageData struct {
	Intro       template.HTML
	FormatsHelp template.HTML
	Accept      string
	Error       string
	Upload      *uploadView
	Result      *resultView
}

// Server holds the form's handlers and its pending uploads.
type Server struct {
	conv    Converter
	cfg     types.WebConfig
	log     *logger.Logger
	tmpl    *template.Template
	intro   template.HTML
	formats template.HTML
	now     func() time.Time

	mu      sync.Mutex
	uploads map[string]*upload
}

// New builds a Server. The page template and Markdown panels are rendered
// once here.
func New(conv Converter, cfg types.WebConfig, log *logger.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/page.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	intro, err := renderMarkdown(introMarkdown)
	if err != nil {
		return nil, err
	}
	formats, err := renderMarkdown(formatsMarkdown())
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Server{
		conv:    conv,
		cfg:     cfg,
		log:     log,
		tmpl:    tmpl,
		intro:   intro,
		formats: formats,
		now:     time.Now,
		uploads: make(map[string]*upload),
	}, nil
}

// Handler returns the routed handler, wrapped in CORS when origins are
// configured.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("POST /convert", s.handleConvert)
	mux.HandleFunc("GET /download/{name}", s.handleDownload)

	if len(s.cfg.AllowedOrigins) == 0 {
		return mux
	}
	return cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down and removes
// pending uploads.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.ServerStarted(s.cfg.Addr, s.conv.OutputDir())

	select {
	case err := <-errCh:
		s.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	return err
}

// Close removes every pending upload.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.uploads {
		os.RemoveAll(u.dir)
		delete(s.uploads, id)
	}
}

func (s *Server) page() pageData {
	return pageData{
		Intro:       s.intro,
		FormatsHelp: s.formats,
		Accept:      strings.Join(types.ReadableExtensions(), ","),
	}
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.Execute(w, data); err != nil {
		s.log.Error("rendering page", "error", err)
	}
}

func (s *Server) renderError(w http.ResponseWriter, status int, msg string) {
	data := s.page()
	data.Error = msg
	s.render(w, status, data)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, s.page())
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadMB<<20)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.log.UploadRejected("", "too large")
			s.renderError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("File is too large: the limit is %d MB.", s.cfg.MaxUploadMB))
			return
		}
		s.renderError(w, http.StatusBadRequest, "Upload failed: "+err.Error())
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.renderError(w, http.StatusBadRequest, "Choose a file to upload.")
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	ext := types.NormalizeExt(filepath.Ext(name))
	if _, ok := types.ReadableFormat(ext); !ok {
		s.log.UploadRejected(name, "unsupported extension")
		s.renderError(w, http.StatusUnsupportedMediaType,
			fmt.Sprintf("Unsupported file type %q. Supported: %s", ext, strings.Join(types.ReadableExtensions(), ", ")))
		return
	}
	// The output is named after the stem, and download names may not start
	// with a dot.
	if strings.TrimSuffix(name, filepath.Ext(name)) == "" {
		s.log.UploadRejected(name, "empty file name")
		s.renderError(w, http.StatusBadRequest,
			fmt.Sprintf("File name %q needs a name before the extension.", name))
		return
	}

	u, err := s.store(name, ext, file)
	if err != nil {
		s.log.Error("storing upload", "name", name, "error", err)
		s.renderError(w, http.StatusInternalServerError, "Upload failed: "+err.Error())
		return
	}
	s.log.UploadReceived(u.id, u.name, u.size)

	data := s.page()
	data.Upload = &uploadView{
		ID:      u.id,
		Name:    u.name,
		SizeKB:  float64(u.size) / 1024,
		Options: targetOptions(u.ext),
	}
	s.render(w, http.StatusOK, data)
}

// targetOptions lists writable formats except the upload's own.
func targetOptions(inputExt string) []formatOption {
	in, _ := types.ReadableFormat(inputExt)
	var opts []formatOption
	for _, f := range types.Formats() {
		if f == in {
			continue
		}
		opts = append(opts, formatOption{Ext: f.Ext(), Label: f.Label()})
	}
	return opts
}

// store copies the upload into a fresh temp directory under its original
// name, so the output keeps the same stem.
func (s *Server) store(name, ext string, src io.Reader) (*upload, error) {
	s.sweep()

	dir, err := os.MkdirTemp("", "file-converter-upload-*")
	if err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("creating upload file: %w", err)
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("saving upload: %w", err)
	}

	u := &upload{
		id:       uuid.NewString(),
		dir:      dir,
		path:     path,
		name:     name,
		ext:      ext,
		size:     n,
		received: s.now(),
	}
	s.mu.Lock()
	s.uploads[u.id] = u
	s.mu.Unlock()
	return u, nil
}

// take removes and returns a pending upload.
func (s *Server) take(id string) (*upload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.uploads[id]
	if ok {
		delete(s.uploads, id)
	}
	return u, ok
}

// sweep drops uploads older than uploadTTL.
func (s *Server) sweep() {
	cutoff := s.now().Add(-uploadTTL)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.uploads {
		if u.received.Before(cutoff) {
			os.RemoveAll(u.dir)
			delete(s.uploads, id)
		}
	}
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("id")
	format := r.FormValue("format")

	u, ok := s.take(id)
	if !ok {
		s.renderError(w, http.StatusNotFound, "That upload has expired. Please upload the file again.")
		return
	}
	defer os.RemoveAll(u.dir)

	start := s.now()
	s.log.ConversionStarted(u.name, format)
	out, err := s.conv.Convert(u.path, format)
	if err != nil {
		s.log.ConversionFailed(u.name, format, err)
		status := http.StatusUnprocessableEntity
		if convert.Kind(err) == convert.KindConversionFailed {
			status = http.StatusInternalServerError
		}
		s.renderError(w, status, "Error: "+err.Error())
		return
	}
	s.log.ConversionCompleted(u.name, out, s.now().Sub(start))

	result := types.ConversionResult{OutputPath: out, Filename: filepath.Base(out)}
	data := s.page()
	data.Result = &resultView{
		Filename:    result.Filename,
		DownloadURL: "/download/" + url.PathEscape(result.Filename),
		SavedTo:     result.OutputPath,
	}
	s.render(w, http.StatusOK, data)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		http.Error(w, "invalid file name", http.StatusBadRequest)
		return
	}
	result, modTime, err := loadResult(s.conv.OutputDir(), name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	http.ServeContent(w, r, result.Filename, modTime, bytes.NewReader(result.Content))
}

// loadResult reads a converted file back from the output directory.
func loadResult(dir, name string) (types.ConversionResult, time.Time, error) {
	path := filepath.Join(dir, name)
	st, err := os.Stat(path)
	if err != nil {
		return types.ConversionResult{}, time.Time{}, err
	}
	if st.IsDir() {
		return types.ConversionResult{}, time.Time{}, fmt.Errorf("%s is a directory", name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ConversionResult{}, time.Time{}, err
	}
	return types.ConversionResult{OutputPath: path, Filename: name, Content: data}, st.ModTime(), nil
}
