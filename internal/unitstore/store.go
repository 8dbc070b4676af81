// Package unitstore defines the contract for collecting generated units
// during a generation pass.
package unitstore

import (
	"context"
	"errors"

	"github.com/vk/textembed/internal/engine"
)

// ErrDuplicateKey is returned when two resources map to the same
// namespace, container and member.
var ErrDuplicateKey = errors.New("duplicate generated member")

// Store collects the units of one pass. Implementations must be safe for
// concurrent use.
type Store interface {
	// Put adds a unit. It returns an error wrapping ErrDuplicateKey if a unit
	// with the same key is already present; the first unit is kept.
	Put(ctx context.Context, unit *engine.Unit) error

	// Get returns the unit stored under key, or nil.
	Get(ctx context.Context, key engine.SourceKey) (*engine.Unit, error)

	// Units returns every stored unit ordered by hint name.
	Units(ctx context.Context) ([]*engine.Unit, error)
}
