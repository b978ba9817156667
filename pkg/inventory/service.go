package inventory

import (
	"math"
	"sync"

	"github.com/pkg/errors"

	"github.com/larderdb/larder/pkg/storage"
)

// Service implements the inventory operations. A single mutex serializes
// every operation, reads included, so each one observes and produces a
// consistent store state.
type Service struct {
	repo       *Repository
	allocator  *Allocator
	dispatcher Dispatcher
	clock      Clock
	mutex      sync.Mutex
}

// NewService creates the inventory service. A nil dispatcher discards
// events and a nil clock falls back to the system clock.
func NewService(repo *Repository, allocator *Allocator, dispatcher Dispatcher, clock Clock) *Service {
	if dispatcher == nil {
		dispatcher = NopDispatcher{}
	}
	if clock == nil {
		clock = SystemClock
	}
	return &Service{
		repo:       repo,
		allocator:  allocator,
		dispatcher: dispatcher,
		clock:      clock,
	}
}

// GetProduct returns the product with the given id.
func (s *Service) GetProduct(id uint64) (Product, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.find(id, "A product with id=%d was not found")
}

// GetStock returns the current quantity of the product with the given id.
func (s *Service) GetStock(id uint64) (uint32, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	product, err := s.find(id, "A product with id=%d was not found")
	if err != nil {
		return 0, err
	}
	return product.Quantity, nil
}

// AddProduct validates the payload, allocates the next id, and stores a
// new product. Validation failures leave the id counter untouched.
func (s *Service) AddProduct(payload ProductPayload) (Product, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := payload.Validate(); err != nil {
		return Product{}, err
	}

	id, err := s.allocator.NextID()
	if err != nil {
		return Product{}, err
	}

	product := Product{
		ID:        id,
		Name:      payload.Name,
		Category:  payload.Category,
		Quantity:  payload.Quantity,
		CreatedAt: s.clock(),
	}

	if err := s.repo.Store(product); err != nil {
		return Product{}, err
	}

	s.dispatch(EventProductAdded, product)
	return product, nil
}

// UpdateProduct replaces the name, category, and quantity of an existing
// product. The creation timestamp is preserved.
func (s *Service) UpdateProduct(id uint64, payload ProductPayload) (Product, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := payload.Validate(); err != nil {
		return Product{}, err
	}

	product, err := s.find(id, "Couldn't update a product with id=%d. Product not found")
	if err != nil {
		return Product{}, err
	}

	product.Name = payload.Name
	product.Category = payload.Category
	product.Quantity = payload.Quantity
	s.touch(&product)

	if err := s.repo.Store(product); err != nil {
		return Product{}, err
	}

	s.dispatch(EventProductUpdated, product)
	return product, nil
}

// AddQuantity increases a product's stock by the payload amount. The
// addition is checked; a result past the uint32 range fails with
// ErrQuantityOverflow and leaves the record unchanged.
func (s *Service) AddQuantity(id uint64, payload StockPayload) (Product, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := payload.Validate(); err != nil {
		return Product{}, err
	}

	product, err := s.find(id, "Couldn't add quantity to product with id=%d. Product not found")
	if err != nil {
		return Product{}, err
	}

	if uint64(product.Quantity)+uint64(payload.Amount) > math.MaxUint32 {
		return Product{}, errors.Wrapf(ErrQuantityOverflow,
			"product %d holds %d, adding %d", id, product.Quantity, payload.Amount)
	}
	product.Quantity += payload.Amount
	s.touch(&product)

	if err := s.repo.Store(product); err != nil {
		return Product{}, err
	}

	s.dispatch(EventProductRestocked, product)
	return product, nil
}

// OffloadQuantity decreases a product's stock by the payload amount.
// Offloading from an empty product, or more than is available, fails
// without touching the record. Offloading the exact available quantity
// leaves the product at zero.
func (s *Service) OffloadQuantity(id uint64, payload StockPayload) (Product, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := payload.Validate(); err != nil {
		return Product{}, err
	}

	product, err := s.find(id, "Couldn't offload a product with id=%d. Product not found")
	if err != nil {
		return Product{}, err
	}

	if product.Quantity == 0 {
		return Product{}, InvalidOperationError(
			"Product with id=%d cannot be offloaded because the quantity is 0", id)
	}
	if payload.Amount > product.Quantity {
		return Product{}, InvalidOperationError(
			"Cannot offload more than available quantity. Available: %d, Trying to offload: %d",
			product.Quantity, payload.Amount)
	}
	product.Quantity -= payload.Amount
	s.touch(&product)

	if err := s.repo.Store(product); err != nil {
		return Product{}, err
	}

	s.dispatch(EventProductOffloaded, product)
	return product, nil
}

// RemoveProduct deletes a product and returns its last stored state.
func (s *Service) RemoveProduct(id uint64) (Product, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	product, err := s.find(id, "Couldn't delete a product with id=%d. Product not found")
	if err != nil {
		return Product{}, err
	}

	if err := s.repo.Remove(id); err != nil {
		return Product{}, err
	}

	s.dispatch(EventProductRemoved, product)
	return product, nil
}

// Count returns the number of products in the store.
func (s *Service) Count() (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.repo.Count()
}

// find loads a product, translating an absent id into the operation's
// not-found message.
func (s *Service) find(id uint64, notFoundFormat string) (Product, error) {
	product, err := s.repo.Find(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Product{}, NotFoundError(notFoundFormat, id)
		}
		return Product{}, err
	}
	return product, nil
}

// touch stamps the product as mutated now.
func (s *Service) touch(p *Product) {
	now := s.clock()
	p.UpdatedAt = &now
}

func (s *Service) dispatch(eventType string, product Product) {
	event := NewEvent(eventType, product.ID, product.Quantity, s.clock())
	s.dispatcher.Dispatch(event) //nolint:errcheck // events are advisory
}
