package web

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/evcraddock/wander/internal/catalog"
	"github.com/evcraddock/wander/internal/destination"
)

var funcMap = template.FuncMap{
	"lower": strings.ToLower,
	"dict":  dict,
}

// dict builds a map from alternating keys and values, for passing several
// values to a nested template.
func dict(pairs ...interface{}) (map[string]interface{}, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict needs an even number of arguments")
	}
	m := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

type homeData struct {
	Banners       []catalog.Banner
	Featured      []catalog.Featured
	FeaturedError string
}

type destinationData struct {
	Page  destination.Page
	Error string
}

// handleHome renders the landing page. A failed banners fetch leaves the
// carousel empty; a failed featured fetch shows a message instead of cards.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var data homeData

	banners, err := s.catalog.Banners(ctx)
	if err != nil {
		slog.WarnContext(ctx, "loading banners", "error", err)
	}
	data.Banners = banners

	featured, err := s.catalog.FeaturedDestinations(ctx)
	if err != nil {
		slog.WarnContext(ctx, "loading featured destinations", "error", err)
	}
	data.Featured = featured
	if len(featured) == 0 {
		data.FeaturedError = "No destinations available at the moment."
	}

	s.render(w, http.StatusOK, "home.html", data)
}

// handleDestination renders the detail page of one destination.
func (s *Server) handleDestination(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	if !catalog.ValidHandle(handle) {
		s.handleNotFound(w, r)
		return
	}

	dest, err := s.catalog.Destination(r.Context(), handle)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, catalog.ErrNotFound) {
			status = http.StatusNotFound
		}
		slog.WarnContext(r.Context(), "loading destination", "handle", handle, "error", err)
		s.render(w, status, "destination.html", destinationData{
			Page:  destination.NewPage(handle, nil),
			Error: "We couldn't load the trips for this destination. Please try again later.",
		})
		return
	}

	s.render(w, http.StatusOK, "destination.html", destinationData{
		Page: destination.NewPage(handle, dest.Trips),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusNotFound, "notfound.html", nil)
}

// render executes the layout of the named page.
func (s *Server) render(w http.ResponseWriter, status int, name string, data interface{}) {
	t, ok := s.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown template %q", name), http.StatusInternalServerError)
		return
	}

	var buf strings.Builder
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}
