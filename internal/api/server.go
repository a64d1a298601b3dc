package api

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gnemet/SlideSift/internal/config"
	"github.com/gnemet/SlideSift/internal/docs"
	"github.com/gnemet/SlideSift/internal/i18n"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Watcher is the part of the stage directory observer the API exposes.
type Watcher interface {
	IsProcessing() bool
	ReprocessAll() (int, error)
}

// Server is the HTTP front end for SlideSift.
type Server struct {
	router  chi.Router
	log     *slog.Logger
	cfg     *config.Config
	watcher Watcher
	docs    *docs.Provider
	tmpl    *template.Template
}

// NewServer creates and configures the HTTP server. watcher may be nil when
// the stage directory is not watched.
func NewServer(cfg *config.Config, log *slog.Logger, watcher Watcher) (*Server, error) {
	i18n.Init()
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"T": i18n.T,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		log:     log,
		cfg:     cfg,
		watcher: watcher,
		docs:    docs.NewProvider(),
		tmpl:    tmpl,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/", s.handleIndex)
	r.Get("/docs", s.handleDocs)
	r.Get("/docs/{page}", s.handleDocs)
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/extract", s.handleExtractAll)
		r.Post("/extract/{report}", s.handleExtract)
		r.Post("/reprocess", s.handleReprocess)
	})

	s.router = r
}
