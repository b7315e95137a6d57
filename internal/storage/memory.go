package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps the blob in memory. Data is lost on exit.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
	// WriteErr, when set, is returned by every Write.
	WriteErr error
}

// NewMemoryBackend returns a backend preloaded with data (nil for none).
func NewMemoryBackend(data []byte) *MemoryBackend {
	return &MemoryBackend{data: data}
}

func (m *MemoryBackend) Read(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNoData
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryBackend) Write(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.data = append([]byte(nil), data...)
	return nil
}

// Bytes returns a copy of the stored blob.
func (m *MemoryBackend) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

func (m *MemoryBackend) Close() error { return nil }
