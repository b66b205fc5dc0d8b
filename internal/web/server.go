// Package web provides the HTTP server, pages and handlers for the wander site.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/evcraddock/wander/internal/catalog"
	"github.com/evcraddock/wander/internal/email"
	"github.com/evcraddock/wander/internal/inquiry"
	"github.com/evcraddock/wander/internal/logging"
	"github.com/evcraddock/wander/internal/metrics"
	"github.com/evcraddock/wander/internal/wizard"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// pages are rendered inside layout.html.
var pages = []string{"home.html", "destination.html", "customize.html", "contact.html", "notfound.html"}

// Catalog is the remote travel catalog.
type Catalog interface {
	Banners(ctx context.Context) ([]catalog.Banner, error)
	FeaturedDestinations(ctx context.Context) ([]catalog.Featured, error)
	Destination(ctx context.Context, handle string) (*catalog.Destination, error)
}

// Options holds the server's collaborators.
type Options struct {
	Catalog   Catalog
	Sessions  wizard.Store
	Inquiries *inquiry.Repository
	Plans     *inquiry.PlanRepository
	Notifier  *email.Notifier
	Metrics   *metrics.Metrics

	SessionTTL    time.Duration
	SecureCookies bool
}

// Server is the web UI HTTP server.
type Server struct {
	catalog   Catalog
	sessions  wizard.Store
	inquiries *inquiry.Repository
	plans     *inquiry.PlanRepository
	notifier  *email.Notifier
	metrics   *metrics.Metrics

	sessionTTL    time.Duration
	secureCookies bool

	templates map[string]*template.Template
	router    chi.Router
}

// NewServer creates a web server.
func NewServer(opts Options) (*Server, error) {
	if opts.Catalog == nil || opts.Sessions == nil || opts.Inquiries == nil || opts.Plans == nil {
		return nil, errors.New("catalog, sessions, inquiries and plans are required")
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = wizard.DefaultSessionTTL
	}

	tmpls, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		catalog:       opts.Catalog,
		sessions:      opts.Sessions,
		inquiries:     opts.Inquiries,
		plans:         opts.Plans,
		notifier:      opts.Notifier,
		metrics:       opts.Metrics,
		sessionTTL:    opts.SessionTTL,
		secureCookies: opts.SecureCookies,
		templates:     tmpls,
	}

	if err := s.routes(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseTemplates() (map[string]*template.Template, error) {
	base, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}

	out := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning layout for %s: %w", page, err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+page); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", page, err)
		}
		out[page] = t
	}
	return out, nil
}

func (s *Server) routes() error {
	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return fmt.Errorf("creating static sub-fs: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger)
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Get("/", s.handleHome)
	r.Get("/destination/{handle}", s.handleDestination)

	r.Route("/customize", func(r chi.Router) {
		r.Get("/", s.handleCustomize)
		r.Post("/destination", s.handleSelectDestination)
		r.Post("/duration", s.handleSelectDuration)
		r.Post("/traveller", s.handleSelectTraveller)
		r.Post("/rooms", s.handleRooms)
		r.Post("/back", s.handleBack)
		r.Post("/continue", s.handleContinue)
		r.Post("/close", s.handleClose)
		r.Get("/itinerary.pdf", s.handleItineraryPDF)
	})

	r.Get("/api/wizard", s.handleAPIWizard)

	r.Get("/get-in-touch", s.handleContact)
	r.Post("/get-in-touch", s.handleContactPost)

	r.NotFound(s.handleNotFound)

	s.router = r
	return nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting web server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
