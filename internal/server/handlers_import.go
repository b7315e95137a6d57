package server

import (
	"errors"
	"net/http"

	"github.com/claude/liftlog/internal/storage"
)

const maxImportBytes = 32 << 20

func (s *Server) handleAlphaImport(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxImportBytes)
	result, err := s.alpha.Ingest(r.Context(), body)
	if err != nil {
		s.log.Error("alpha import error", "error", err)
		status := http.StatusBadRequest
		if errors.Is(err, storage.ErrWriteFailed) {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}
