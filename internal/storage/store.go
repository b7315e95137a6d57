package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/claude/liftlog/internal/models"
)

var (
	// ErrNoData is returned by a Backend that has never been written.
	ErrNoData = errors.New("no stored snapshot")
	// ErrWriteFailed wraps any failure to persist a snapshot.
	ErrWriteFailed = errors.New("saving snapshot")
)

// Backend is the raw storage capability: one blob in, one blob out.
type Backend interface {
	// Read returns the last written blob, or ErrNoData if there is none.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the stored blob.
	Write(ctx context.Context, data []byte) error
	Close() error
}

// Store serializes snapshots to and from a Backend.
type Store struct {
	backend Backend
	log     *slog.Logger
}

// NewStore creates a Store over backend.
func NewStore(backend Backend, log *slog.Logger) *Store {
	return &Store{backend: backend, log: log}
}

// Load reads the stored snapshot. It never fails: a missing, unreadable or
// malformed blob yields a fresh empty snapshot.
func (s *Store) Load(ctx context.Context) *models.Snapshot {
	data, err := s.backend.Read(ctx)
	if errors.Is(err, ErrNoData) {
		s.log.Info("no stored data, starting empty")
		return models.NewSnapshot()
	}
	if err != nil {
		s.log.Warn("reading snapshot failed, starting empty", "error", err)
		return models.NewSnapshot()
	}

	snap := &models.Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		s.log.Warn("stored snapshot is malformed, starting empty", "error", err, "bytes", len(data))
		return models.NewSnapshot()
	}
	snap.Normalize()
	s.log.Debug("snapshot loaded",
		"routines", len(snap.Routines),
		"workouts", len(snap.Workouts),
		"records", len(snap.PersonalRecords),
	)
	return snap
}

// Save writes the whole snapshot as one blob. Failures are returned
// wrapped in ErrWriteFailed and not retried.
func (s *Store) Save(ctx context.Context, snap *models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%w: encoding: %w", ErrWriteFailed, err)
	}
	if err := s.backend.Write(ctx, data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
