// Package storage defines the contract shared by every storage backend.
//
// A backend persists opaque encoded product records keyed by id, plus a
// single id counter cell kept separate from the records. Callers serialize
// access; backends own their durability guarantees.
package storage

// Driver names accepted by the configuration.
const (
	DriverLogfile = "logfile"
	DriverPebble  = "pebble"
	DriverSQLite  = "sqlite"
)

// Backend is the persistence surface the inventory layer writes through.
type Backend interface {
	// Get returns the stored bytes for id, or ErrNotFound.
	Get(id uint64) ([]byte, error)

	// Put stores data under id, overwriting any previous record.
	Put(id uint64, data []byte) error

	// Delete removes the record for id. Deleting an absent id is a no-op.
	Delete(id uint64) error

	// Counter reads the id counter cell. A backend with no cell yet
	// returns zero.
	Counter() (uint64, error)

	// SetCounter durably replaces the id counter cell.
	SetCounter(value uint64) error

	// Count returns the number of live records.
	Count() (int, error)

	// Sync flushes buffered writes to stable media.
	Sync() error

	// Close releases resources. The backend is unusable afterwards.
	Close() error
}

// Errors
var (
	ErrNotFound   = &Error{"record not found"}
	ErrCorruption = &Error{"data corruption detected"}
	ErrClosed     = &Error{"storage backend is closed"}
)

// Error represents a storage backend error
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
