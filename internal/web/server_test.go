// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/file-converter/internal/convert"
	"github.com/pdiddy/file-converter/pkg/types"
)

// fakeConverter copies the input's text into <outDir>/<stem><ext>.
type fakeConverter struct {
	outDir string
	calls  []string
	err    error
	seen   string
}

func (f *fakeConverter) OutputDir() string { return f.outDir }

func (f *fakeConverter) Convert(inputPath, outputFormat string) (string, error) {
	f.calls = append(f.calls, outputFormat)
	if f.err != nil {
		return "", f.err
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return "", err
	}
	f.seen = string(data)
	base := filepath.Base(inputPath)
	out := filepath.Join(f.outDir, strings.TrimSuffix(base, filepath.Ext(base))+types.NormalizeExt(outputFormat))
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", err
	}
	return out, nil
}

func newTestServer(t *testing.T, conv Converter) *Server {
	t.Helper()
	cfg := types.DefaultConfig().Web
	cfg.MaxUploadMB = 1
	s, err := New(conv, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func uploadRequest(t *testing.T, name string, body []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(body)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func convertRequest(id, format string) *http.Request {
	form := url.Values{"id": {id}, "format": {format}}
	req := httptest.NewRequest(http.MethodPost, "/convert", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

var idPattern = regexp.MustCompile(`name="id" value="([^"]+)"`)

func uploadID(t *testing.T, body string) string {
	t.Helper()
	m := idPattern.FindStringSubmatch(body)
	require.Len(t, m, 2, "upload token not found in page")
	return m[1]
}

func TestIndex(t *testing.T) {
	s := newTestServer(t, &fakeConverter{outDir: t.TempDir()})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Convert documents between common formats instantly.")
	assert.Contains(t, body, `accept=".txt,.docx,.pdf,.rtf,.odt,.html,.md,.htm"`)
	assert.Contains(t, body, "<code>.htm</code>")
	assert.Contains(t, body, "extracted via OCR")
}

func TestUploadAndConvert(t *testing.T) {
	conv := &fakeConverter{outDir: t.TempDir()}
	s := newTestServer(t, conv)
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, uploadRequest(t, "notes.txt", []byte("Hello\nWorld")))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "notes.txt")
	assert.NotContains(t, body, `<option value=".txt">`, "input format is not offered as a target")
	assert.Contains(t, body, `<option value=".pdf">PDF (.pdf)</option>`)

	id := uploadID(t, body)
	s.mu.Lock()
	u := s.uploads[id]
	s.mu.Unlock()
	require.NotNil(t, u)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, convertRequest(id, ".md"))
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "Conversion complete!")
	assert.Contains(t, body, "/download/notes.md")
	assert.Contains(t, body, filepath.Join(conv.outDir, "notes.md"))
	assert.Equal(t, "Hello\nWorld", conv.seen)

	_, err := os.Stat(u.dir)
	assert.True(t, os.IsNotExist(err), "temporary upload should be removed after conversion")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, convertRequest(id, ".md"))
	assert.Equal(t, http.StatusNotFound, rec.Code, "an upload converts once")
}

func TestUpload_Rejections(t *testing.T) {
	s := newTestServer(t, &fakeConverter{outDir: t.TempDir()})
	h := s.Handler()

	t.Run("unsupported extension", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, uploadRequest(t, "tool.exe", []byte("MZ")))
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		assert.Contains(t, rec.Body.String(), "Unsupported file type")
	})

	t.Run("too large", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, uploadRequest(t, "big.txt", bytes.Repeat([]byte("x"), 2<<20)))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Contains(t, rec.Body.String(), "limit is 1 MB")
	})

	t.Run("extension without a name", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, uploadRequest(t, ".txt", []byte("hidden")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "needs a name before the extension")
	})

	t.Run("missing file field", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("other", "x"))
		require.NoError(t, mw.Close())
		req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Empty(t, s.uploads)
}

func TestConvert_ErrorPanel(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unsupported", fmt.Errorf("%w: cannot write .xyz", convert.ErrUnsupportedFormat), http.StatusUnprocessableEntity},
		{"library failure", fmt.Errorf("%w: broken docx", convert.ErrConversionFailed), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := &fakeConverter{outDir: t.TempDir(), err: tt.err}
			s := newTestServer(t, conv)
			h := s.Handler()

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, uploadRequest(t, "a.txt", []byte("a")))
			id := uploadID(t, rec.Body.String())

			rec = httptest.NewRecorder()
			h.ServeHTTP(rec, convertRequest(id, ".xyz"))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.err.Error())
		})
	}
}

func TestDownload(t *testing.T) {
	conv := &fakeConverter{outDir: t.TempDir()}
	require.NoError(t, os.WriteFile(filepath.Join(conv.outDir, "report.pdf"), []byte("%PDF-1.3"), 0o644))
	h := newTestServer(t, conv).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download/report.pdf", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="report.pdf"`, rec.Header().Get("Content-Disposition"))
	data, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download/missing.pdf", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download/..%2Fsecret", nil))
	assert.NotEqual(t, http.StatusOK, rec.Code)
}

func TestSweep_DropsStaleUploads(t *testing.T) {
	s := newTestServer(t, &fakeConverter{outDir: t.TempDir()})
	now := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	u, err := s.store("old.txt", ".txt", strings.NewReader("old"))
	require.NoError(t, err)

	now = now.Add(2 * uploadTTL)
	s.sweep()

	s.mu.Lock()
	_, ok := s.uploads[u.id]
	s.mu.Unlock()
	assert.False(t, ok)
	_, err = os.Stat(u.dir)
	assert.True(t, os.IsNotExist(err))
}

func TestHandler_CORS(t *testing.T) {
	cfg := types.DefaultConfig().Web
	cfg.AllowedOrigins = []string{"http://example.test"}
	s, err := New(&fakeConverter{outDir: t.TempDir()}, cfg, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://example.test")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "http://example.test", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestTargetOptions(t *testing.T) {
	opts := targetOptions(".htm")
	for _, o := range opts {
		assert.NotEqual(t, ".html", o.Ext)
	}
	assert.Len(t, opts, len(types.Formats())-1)
}

func TestLoadResult(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# Notes"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.md"), 0o755))

	result, modTime, err := loadResult(dir, "notes.md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "notes.md"), result.OutputPath)
	assert.Equal(t, "notes.md", result.Filename)
	assert.Equal(t, []byte("# Notes"), result.Content)
	assert.False(t, modTime.IsZero())

	_, _, err = loadResult(dir, "sub.md")
	assert.Error(t, err)

	_, _, err = loadResult(dir, "absent.md")
	assert.Error(t, err)
}
