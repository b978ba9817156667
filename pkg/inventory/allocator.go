package inventory

import (
	"github.com/pkg/errors"

	"github.com/larderdb/larder/pkg/storage"
)

// Allocator hands out monotonically increasing product ids backed by the
// storage counter cell. The first allocated id is 1, and ids are never
// reused, including ids of removed products.
type Allocator struct {
	backend storage.Backend
}

// NewAllocator creates an allocator over the given backend.
func NewAllocator(backend storage.Backend) *Allocator {
	return &Allocator{backend: backend}
}

// NextID increments the counter, persists it, and returns the new value.
// When the counter cannot be persisted no id is handed out.
func (a *Allocator) NextID() (uint64, error) {
	current, err := a.backend.Counter()
	if err != nil {
		return 0, errors.Wrap(err, "read id counter")
	}

	next := current + 1
	if err := a.backend.SetCounter(next); err != nil {
		return 0, errors.Wrap(err, "persist id counter")
	}

	return next, nil
}
