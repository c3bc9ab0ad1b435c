// It defines the API server, sets up the routes (endpoints)
// using chi, and links them to the handler functions.

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vrsandeep/mango-easyyomi/internal/core"
)

// Server holds the dependencies for our API.
type Server struct {
	app *core.App
}

// NewServer creates a new Server instance.
func NewServer(app *core.App) *Server {
	return &Server{app: app}
}

// Router sets up and returns the main router for the application.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)    // Logs requests to the console
	r.Use(middleware.Recoverer) // Recovers from panics
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/sources", s.handleListSources)

	r.Route("/api/sources/{sourceID}", func(r chi.Router) {
		r.Use(SourceMiddleware)

		r.Get("/", s.handleGetSource)
		r.Get("/popular", s.handlePopular)
		r.Get("/latest", s.handleLatest)
		r.Get("/search", s.handleSearch)
		r.Get("/filters", s.handleFilters)
		r.Get("/details", s.handleDetails)
		r.Get("/chapters", s.handleChapters)
		r.Get("/pages", s.handlePages)
		r.Get("/image", s.handleImage)

		// Settings form
		r.Get("/preferences", s.handleListPreferences)
		r.Post("/preferences", s.handleSubmitPreference)
		r.Post("/preferences/validate", s.handleValidatePreference)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.app.DB.Ping(); err != nil {
		RespondWithError(w, http.StatusServiceUnavailable, "Database connection failed")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
