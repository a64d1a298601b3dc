package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gnemet/SlideSift/internal/pptx"
	"github.com/gnemet/SlideSift/internal/report"
	"github.com/go-chi/chi/v5"
)

const tsvContentType = "text/tab-separated-values; charset=utf-8"

type reportJSON struct {
	Filename string `json:"filename"`
	Content  string `json:"content,omitempty"`
	Error    string `json:"error,omitempty"`
}

type extractResponse struct {
	Source       string     `json:"source"`
	TextDetails  reportJSON `json:"text_details"`
	ShapeSummary reportJSON `json:"shape_summary"`
}

// readUpload returns the uploaded presentation. On failure it has already
// written the error response.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	maxBytes := s.cfg.Application.MaxUploadBytes
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", maxBytes), http.StatusRequestEntityTooLarge)
			return "", nil, false
		}
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".pptx" {
		jsonError(w, fmt.Sprintf("unsupported file type: %q, expected .pptx", ext), http.StatusBadRequest)
		return "", nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusBadRequest)
		return "", nil, false
	}
	if int64(len(data)) > maxBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", maxBytes), http.StatusRequestEntityTooLarge)
		return "", nil, false
	}
	return filename, data, true
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	kind, err := report.ParseKind(chi.URLParam(r, "report"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	p, err := pptx.Parse(data)
	if err != nil {
		s.log.Warn("could not load presentation", "file", filename, "error", err)
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	out := report.Build(kind, filename, p, report.Options{BOM: s.cfg.Output.BOM})
	if out.Err != nil {
		s.log.Error("report failed", "file", filename, "report", kind, "error", out.Err)
		jsonError(w, out.Err.Error(), statusFor(out.Err))
		return
	}
	s.log.Info("report generated", "file", filename, "report", kind, "bytes", len(out.Content))

	w.Header().Set("Content-Type", tsvContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": out.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.Content)))
	w.Write(out.Content)
}

func (s *Server) handleExtractAll(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	res := report.Generate(filename, bytes.NewReader(data), report.Options{BOM: s.cfg.Output.BOM})
	resp := extractResponse{
		Source:       filename,
		TextDetails:  s.reportJSON(filename, res.TextDetails),
		ShapeSummary: s.reportJSON(filename, res.ShapeSummary),
	}

	status := http.StatusOK
	if res.TextDetails.Err != nil && res.ShapeSummary.Err != nil {
		status = statusFor(res.TextDetails.Err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) reportJSON(filename string, out report.Output) reportJSON {
	if out.Err != nil {
		s.log.Warn("report failed", "file", filename, "report", out.Kind, "error", out.Err)
		return reportJSON{Filename: out.Filename, Error: out.Err.Error()}
	}
	s.log.Info("report generated", "file", filename, "report", out.Kind, "bytes", len(out.Content))
	return reportJSON{Filename: out.Filename, Content: string(out.Content)}
}

func (s *Server) handleReprocess(w http.ResponseWriter, r *http.Request) {
	if s.watcher == nil {
		jsonError(w, "stage directory watching is disabled", http.StatusServiceUnavailable)
		return
	}
	moved, err := s.watcher.ReprocessAll()
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{"requeued": moved})
}

// statusFor maps extraction errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pptx.ErrUnreadableSource):
		return http.StatusBadRequest
	case errors.Is(err, pptx.ErrMalformedDocument):
		return http.StatusUnprocessableEntity
	}
	// extract.ErrExtractionFailure and anything unexpected
	return http.StatusInternalServerError
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return "unnamed"
	}
	return strings.ReplaceAll(name, "..", "_")
}
