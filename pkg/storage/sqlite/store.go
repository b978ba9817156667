// Package sqlite implements a storage backend on SQLite, for deployments
// that want records inspectable with ordinary SQL tooling.
package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/larderdb/larder/pkg/storage"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial schema
const currentSchemaVersion = 1

// Store provides durable product storage on a single SQLite file.
// The database runs in WAL mode for concurrent read access.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "connect to database")
	}

	// SQLite supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return errors.Wrapf(err, "execute %q", pragma)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and records the schema
// version. This function is idempotent.
func applySchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return errors.Wrap(err, "get user_version")
	}
	if version >= currentSchemaVersion {
		return nil
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		return errors.Wrap(err, "execute schema")
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return errors.Wrap(err, "set user_version")
	}

	return nil
}

// Get retrieves the stored bytes for an id
func (s *Store) Get(id uint64) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM products WHERE id = ?", int64(id)).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select product %d", id)
	}
	return data, nil
}

// Put stores bytes under an id, overwriting any previous record
func (s *Store) Put(id uint64, data []byte) error {
	_, err := s.db.Exec(
		"INSERT INTO products (id, data) VALUES (?, ?) ON CONFLICT (id) DO UPDATE SET data = excluded.data",
		int64(id), data,
	)
	return errors.Wrapf(err, "upsert product %d", id)
}

// Delete removes the record for an id. Deleting an absent id is a no-op.
func (s *Store) Delete(id uint64) error {
	_, err := s.db.Exec("DELETE FROM products WHERE id = ?", int64(id))
	return errors.Wrapf(err, "delete product %d", id)
}

// Counter reads the id counter cell. A database that never allocated an
// id reads as zero.
func (s *Store) Counter() (uint64, error) {
	var value int64
	err := s.db.QueryRow("SELECT value FROM id_counter WHERE id = 1").Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "select id counter")
	}
	return uint64(value), nil
}

// SetCounter durably replaces the id counter cell
func (s *Store) SetCounter(value uint64) error {
	_, err := s.db.Exec(
		"INSERT INTO id_counter (id, value) VALUES (1, ?) ON CONFLICT (id) DO UPDATE SET value = excluded.value",
		int64(value),
	)
	return errors.Wrap(err, "upsert id counter")
}

// Count returns the number of live records
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return 0, errors.Wrap(err, "count products")
	}
	return count, nil
}

// Sync checkpoints the write-ahead log into the main database file
func (s *Store) Sync() error {
	_, err := s.db.Exec("PRAGMA wal_checkpoint(FULL)")
	return errors.Wrap(err, "checkpoint wal")
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
