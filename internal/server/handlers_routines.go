package server

import (
	"net/http"

	"github.com/claude/liftlog/internal/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListRoutines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Routines())
}

func (s *Server) handleGetRoutine(w http.ResponseWriter, r *http.Request) {
	rt, err := s.tracker.Routine(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (s *Server) handleCreateRoutine(w http.ResponseWriter, r *http.Request) {
	var d models.RoutineDraft
	if !decodeBody(w, r, &d) {
		return
	}
	rt, err := s.tracker.CreateRoutine(r.Context(), d)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rt)
}

func (s *Server) handleUpdateRoutine(w http.ResponseWriter, r *http.Request) {
	var d models.RoutineDraft
	if !decodeBody(w, r, &d) {
		return
	}
	rt, err := s.tracker.UpdateRoutine(r.Context(), chi.URLParam(r, "id"), d)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (s *Server) handleDeleteRoutine(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.DeleteRoutine(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStartRoutine(w http.ResponseWriter, r *http.Request) {
	d, err := s.tracker.StartFromRoutine(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleEditRoutine(w http.ResponseWriter, r *http.Request) {
	d, err := s.tracker.EditRoutine(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
