package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/gnemet/SlideSift/internal/docs"
	"github.com/gnemet/SlideSift/internal/i18n"
	"github.com/go-chi/chi/v5"
)

type pageData struct {
	Lang     string
	Langs    []string
	Title    string
	Version  string
	Pages    []docs.Page
	Watching bool
	Busy     bool
	MaxMB    int64
	Body     template.HTML
}

func (s *Server) baseData(w http.ResponseWriter, r *http.Request) pageData {
	lang := i18n.GetLang(r)
	if r.URL.Query().Get("lang") == lang {
		http.SetCookie(w, &http.Cookie{Name: "lang", Value: lang, Path: "/", MaxAge: 365 * 24 * 3600, SameSite: http.SameSiteLaxMode})
	}
	pages, err := s.docs.GetAllPages()
	if err != nil {
		s.log.Error("listing help pages", "error", err)
	}
	d := pageData{
		Lang:    lang,
		Langs:   i18n.GetAvailableLangs(),
		Title:   i18n.T(lang, "app.title"),
		Version: s.cfg.Application.Version,
		Pages:   pages,
		MaxMB:   s.cfg.Application.MaxUploadBytes >> 20,
	}
	if s.watcher != nil {
		d.Watching = true
		d.Busy = s.watcher.IsProcessing()
	}
	return d
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data pageData, status int) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.Error("rendering template", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, "index.html", s.baseData(w, r), http.StatusOK)
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "page")
	if code == "" {
		code = "index"
	}
	data := s.baseData(w, r)

	page, body, err := s.docs.Render(code)
	if errors.Is(err, docs.ErrPageNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.log.Error("rendering help page", "page", code, "error", err)
		http.Error(w, "help page error", http.StatusInternalServerError)
		return
	}
	data.Title = page.Title
	data.Body = body
	s.renderTemplate(w, "doc.html", data, http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	processing := s.watcher != nil && s.watcher.IsProcessing()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":     "ok",
		"processing": processing,
	})
}
