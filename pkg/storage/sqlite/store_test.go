package sqlite

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/larderdb/larder/pkg/storage"
)

func openTestStore(t *testing.T, dir string) *Store {
	t.Helper()

	store, err := Open(filepath.Join(dir, "larder.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	return store
}

func TestStore_BasicOperations(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "larder_sqlite_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	store := openTestStore(t, tmpDir)
	defer store.Close()

	value := []byte("encoded product record")

	if err := store.Put(1, value); err != nil {
		t.Fatalf("Failed to put record: %v", err)
	}

	retrieved, err := store.Get(1)
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if !bytes.Equal(retrieved, value) {
		t.Errorf("Retrieved value mismatch: got %q, want %q", retrieved, value)
	}

	if _, err := store.Get(999); err != storage.ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	// Overwrites replace the stored bytes
	if err := store.Put(1, []byte("updated")); err != nil {
		t.Fatalf("Failed to overwrite record: %v", err)
	}
	retrieved, err = store.Get(1)
	if err != nil {
		t.Fatalf("Failed to get updated record: %v", err)
	}
	if string(retrieved) != "updated" {
		t.Errorf("Updated value mismatch: got %s, want updated", retrieved)
	}

	if err := store.Delete(1); err != nil {
		t.Fatalf("Failed to delete record: %v", err)
	}
	if _, err := store.Get(1); err != storage.ErrNotFound {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	// Deleting an absent id is a no-op
	if err := store.Delete(999); err != nil {
		t.Errorf("Expected nil deleting absent id, got %v", err)
	}
}

func TestStore_Counter(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "larder_sqlite_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	store := openTestStore(t, tmpDir)
	defer store.Close()

	counter, err := store.Counter()
	if err != nil {
		t.Fatalf("Failed to read counter: %v", err)
	}
	if counter != 0 {
		t.Errorf("Expected initial counter 0, got %d", counter)
	}

	for want := uint64(1); want <= 3; want++ {
		if err := store.SetCounter(want); err != nil {
			t.Fatalf("Failed to set counter to %d: %v", want, err)
		}
		got, err := store.Counter()
		if err != nil {
			t.Fatalf("Failed to read counter: %v", err)
		}
		if got != want {
			t.Errorf("Counter mismatch: got %d, want %d", got, want)
		}
	}
}

func TestStore_Count(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "larder_sqlite_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	store := openTestStore(t, tmpDir)
	defer store.Close()

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Failed to count records: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 records initially, got %d", count)
	}

	for id := uint64(1); id <= 3; id++ {
		if err := store.Put(id, []byte("record")); err != nil {
			t.Fatalf("Failed to put record %d: %v", id, err)
		}
	}
	if err := store.SetCounter(3); err != nil {
		t.Fatalf("Failed to set counter: %v", err)
	}

	count, err = store.Count()
	if err != nil {
		t.Fatalf("Failed to count records: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 records, got %d", count)
	}
}

func TestStore_Reopen(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "larder_sqlite_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	store1 := openTestStore(t, tmpDir)
	if err := store1.Put(1, []byte("persistent")); err != nil {
		t.Fatalf("Failed to put data: %v", err)
	}
	if err := store1.SetCounter(1); err != nil {
		t.Fatalf("Failed to set counter: %v", err)
	}
	if err := store1.Close(); err != nil {
		t.Fatalf("Failed to close first store: %v", err)
	}

	// Opening an existing database must not disturb its contents
	store2 := openTestStore(t, tmpDir)
	defer store2.Close()

	retrieved, err := store2.Get(1)
	if err != nil {
		t.Fatalf("Failed to get persisted data: %v", err)
	}
	if string(retrieved) != "persistent" {
		t.Errorf("Persisted value mismatch: got %s, want persistent", retrieved)
	}

	counter, err := store2.Counter()
	if err != nil {
		t.Fatalf("Failed to read counter: %v", err)
	}
	if counter != 1 {
		t.Errorf("Persisted counter mismatch: got %d, want 1", counter)
	}
}

func TestStore_SchemaVersion(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "larder_sqlite_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	store := openTestStore(t, tmpDir)
	defer store.Close()

	var version int
	if err := store.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("Failed to read user_version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("Expected schema version %d, got %d", currentSchemaVersion, version)
	}
}
