package inventory

import (
	"github.com/segmentio/ksuid"
	"github.com/sirupsen/logrus"
)

// Event types emitted after successful mutations.
const (
	EventProductAdded     = "product.added"
	EventProductUpdated   = "product.updated"
	EventProductRestocked = "product.restocked"
	EventProductOffloaded = "product.offloaded"
	EventProductRemoved   = "product.removed"
)

// Event is a notification about a completed mutation. Events carry the
// product's quantity after the operation.
type Event struct {
	ID        string `json:"id"` // Sortable unique event id
	Type      string `json:"type"`
	ProductID uint64 `json:"product_id"`
	Quantity  uint32 `json:"quantity"`
	At        uint64 `json:"at"` // Unix nanoseconds
}

// NewEvent builds an event with a fresh ksuid.
func NewEvent(eventType string, productID uint64, quantity uint32, at uint64) Event {
	return Event{
		ID:        ksuid.New().String(),
		Type:      eventType,
		ProductID: productID,
		Quantity:  quantity,
		At:        at,
	}
}

// Dispatcher receives events emitted by the service.
type Dispatcher interface {
	Dispatch(event Event) error
}

// LogDispatcher writes events to a structured logger.
type LogDispatcher struct {
	logger logrus.FieldLogger
}

// NewLogDispatcher creates a dispatcher that logs every event.
func NewLogDispatcher(logger logrus.FieldLogger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

// Dispatch logs the event at info level.
func (d *LogDispatcher) Dispatch(event Event) error {
	d.logger.WithFields(logrus.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"product_id": event.ProductID,
		"quantity":   event.Quantity,
	}).Info("inventory event")
	return nil
}

// NopDispatcher discards events.
type NopDispatcher struct{}

// Dispatch does nothing.
func (NopDispatcher) Dispatch(Event) error { return nil }
