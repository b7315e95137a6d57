package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/ingest/alpha"
	"github.com/claude/liftlog/internal/tracker"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	tracker *tracker.Tracker
	alpha   *alpha.Provider
	log     *slog.Logger
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(t *tracker.Tracker, alphaProvider *alpha.Provider, log *slog.Logger) *Server {
	s := &Server{
		tracker: t,
		alpha:   alphaProvider,
		log:     log,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1/workouts", func(r chi.Router) {
		r.Get("/", s.handleListWorkouts)
		r.Post("/", s.handleCreateWorkout)
		r.Get("/recent", s.handleRecentWorkouts)
		r.Get("/{id}", s.handleGetWorkout)
		r.Put("/{id}", s.handleUpdateWorkout)
		r.Delete("/{id}", s.handleDeleteWorkout)
		r.Get("/{id}/repeat", s.handleRepeatWorkout)
		r.Post("/{id}/routine", s.handleSaveAsRoutine)
	})

	s.router.Route("/api/v1/routines", func(r chi.Router) {
		r.Get("/", s.handleListRoutines)
		r.Post("/", s.handleCreateRoutine)
		r.Get("/{id}", s.handleGetRoutine)
		r.Put("/{id}", s.handleUpdateRoutine)
		r.Delete("/{id}", s.handleDeleteRoutine)
		r.Get("/{id}/start", s.handleStartRoutine)
		r.Get("/{id}/edit", s.handleEditRoutine)
	})

	s.router.Get("/api/v1/calendar", s.handleCalendar)
	s.router.Get("/api/v1/records", s.handleRecords)
	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/exercises", s.handleExercises)
	s.router.Get("/api/v1/exercises/suggest", s.handleSuggest)
	s.router.Get("/api/v1/progress/series", s.handleSeries)
	s.router.Get("/api/v1/progress/volume", s.handleVolume)

	s.router.Post("/api/v1/import/alpha", s.handleAlphaImport)
}

// MountMCP serves an MCP transport handler on /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
}
