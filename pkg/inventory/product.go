// Package inventory implements the product catalog and stock operations
// backed by a durable storage backend.
package inventory

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Category classifies a product. The zero value is CategoryBakery.
type Category uint8

const (
	CategoryBakery Category = iota
	CategoryCake
	CategoryCookies
)

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	return c <= CategoryCookies
}

// String returns the display name of the category.
func (c Category) String() string {
	switch c {
	case CategoryCake:
		return "Cake"
	case CategoryCookies:
		return "Cookies"
	default:
		return "Bakery"
	}
}

// ParseCategory maps a category name to its value. The empty string
// selects the default CategoryBakery; any other unknown name is an error.
func ParseCategory(name string) (Category, error) {
	switch name {
	case "", "Bakery":
		return CategoryBakery, nil
	case "Cake":
		return CategoryCake, nil
	case "Cookies":
		return CategoryCookies, nil
	default:
		return CategoryBakery, errors.Errorf("unknown category %q", name)
	}
}

// MarshalJSON encodes the category as its display name.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a category from its display name.
func (c *Category) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseCategory(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Product is a single inventory record. Timestamps are Unix nanoseconds;
// UpdatedAt is nil until the first mutation after creation.
type Product struct {
	ID        uint64   `json:"id"`
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	Quantity  uint32   `json:"quantity"`
	CreatedAt uint64   `json:"created_at"`
	UpdatedAt *uint64  `json:"updated_at,omitempty"`
}

// ProductPayload carries the caller-supplied fields used to create a
// product or replace an existing one.
type ProductPayload struct {
	Name     string   `json:"name"`
	Quantity uint32   `json:"quantity"`
	Category Category `json:"category"`
}

// Validate checks the payload before any state is touched.
func (p ProductPayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return InvalidOperationError("Product name cannot be empty.")
	}
	if p.Quantity == 0 {
		return InvalidOperationError("Product quantity must be greater than zero.")
	}
	return nil
}

// StockPayload carries the amount for a restock or offload operation.
type StockPayload struct {
	Amount uint32 `json:"amount"`
}

// Validate checks the payload before any state is touched.
func (p StockPayload) Validate() error {
	if p.Amount == 0 {
		return InvalidOperationError("Stock amount must be greater than zero.")
	}
	return nil
}

// Clock supplies record timestamps in Unix nanoseconds. Tests substitute
// a fixed clock for deterministic records.
type Clock func() uint64

// SystemClock is the default Clock.
func SystemClock() uint64 {
	return uint64(time.Now().UnixNano())
}
