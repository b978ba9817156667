// Package api provides interfaces for dependency injection
package api

import "github.com/larderdb/larder/pkg/inventory"

// IInventoryService defines the inventory operations the HTTP layer exposes
type IInventoryService interface {
	GetProduct(id uint64) (inventory.Product, error)
	GetStock(id uint64) (uint32, error)
	AddProduct(payload inventory.ProductPayload) (inventory.Product, error)
	UpdateProduct(id uint64, payload inventory.ProductPayload) (inventory.Product, error)
	AddQuantity(id uint64, payload inventory.StockPayload) (inventory.Product, error)
	OffloadQuantity(id uint64, payload inventory.StockPayload) (inventory.Product, error)
	RemoveProduct(id uint64) (inventory.Product, error)
	Count() (int, error)
}
