package inventory

import (
	"github.com/pkg/errors"

	"github.com/larderdb/larder/pkg/storage"
)

// Codec serializes products for storage. The builtin implementation
// lives in pkg/codec.
type Codec interface {
	Encode(p Product) ([]byte, error)
	Decode(data []byte) (Product, error)
}

// Repository stores products through a storage backend, encoding on the
// way in and decoding on the way out, so callers never share memory with
// the store.
type Repository struct {
	backend storage.Backend
	codec   Codec
}

// NewRepository creates a repository over the given backend and codec.
func NewRepository(backend storage.Backend, codec Codec) *Repository {
	return &Repository{backend: backend, codec: codec}
}

// Find loads the product with the given id. Absent ids report
// storage.ErrNotFound; a record that fails to decode is corruption, not
// a missing product.
func (r *Repository) Find(id uint64) (Product, error) {
	data, err := r.backend.Get(id)
	if err != nil {
		return Product{}, err
	}

	product, err := r.codec.Decode(data)
	if err != nil {
		return Product{}, errors.Wrapf(err, "decode product %d", id)
	}
	return product, nil
}

// Store persists the product under its id.
func (r *Repository) Store(p Product) error {
	data, err := r.codec.Encode(p)
	if err != nil {
		return errors.Wrapf(err, "encode product %d", p.ID)
	}
	return r.backend.Put(p.ID, data)
}

// Remove deletes the product record.
func (r *Repository) Remove(id uint64) error {
	return r.backend.Delete(id)
}

// Count returns the number of stored products.
func (r *Repository) Count() (int, error) {
	return r.backend.Count()
}
