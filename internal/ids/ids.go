// Package ids produces opaque entity identifiers.
package ids

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator hands out identifiers unique within a dataset.
type Generator interface {
	NewID() string
}

// UUID generates random (v4) UUID strings.
type UUID struct{}

// NewID implements Generator.
func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequence generates "<prefix>-1", "<prefix>-2", ... in order.
// Useful where ids must be predictable, e.g. in tests.
type Sequence struct {
	Prefix string
	n      atomic.Int64
}

// NewID implements Generator.
func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s-%d", s.Prefix, s.n.Add(1))
}
