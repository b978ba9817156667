package logfile

import "sync"

// keydir maps each live id to the location of its latest log entry,
// giving O(1) lookups without touching disk.
type keydir struct {
	entries map[uint64]keydirEntry
	mutex   sync.RWMutex
}

func newKeydir() *keydir {
	return &keydir{
		entries: make(map[uint64]keydirEntry),
	}
}

// Put adds or updates the location entry for an id
func (kd *keydir) Put(id uint64, entry keydirEntry) {
	kd.mutex.Lock()
	defer kd.mutex.Unlock()

	kd.entries[id] = entry
}

// Get retrieves the location entry for an id
func (kd *keydir) Get(id uint64) (keydirEntry, bool) {
	kd.mutex.RLock()
	defer kd.mutex.RUnlock()

	entry, exists := kd.entries[id]
	return entry, exists
}

// Delete removes an id from the keydir
func (kd *keydir) Delete(id uint64) {
	kd.mutex.Lock()
	defer kd.mutex.Unlock()

	delete(kd.entries, id)
}

// Size returns the number of live ids
func (kd *keydir) Size() int {
	kd.mutex.RLock()
	defer kd.mutex.RUnlock()

	return len(kd.entries)
}

// IDs returns all live ids in no particular order
func (kd *keydir) IDs() []uint64 {
	kd.mutex.RLock()
	defer kd.mutex.RUnlock()

	ids := make([]uint64, 0, len(kd.entries))
	for id := range kd.entries {
		ids = append(ids, id)
	}
	return ids
}

// BuildFromLog scans a log file and populates the keydir. Later entries
// win; a tombstone removes the id.
func (kd *keydir) BuildFromLog(reader *Reader) error {
	kd.mutex.Lock()
	defer kd.mutex.Unlock()

	kd.entries = make(map[uint64]keydirEntry)

	if err := reader.Seek(0); err != nil {
		return err
	}

	iterator := reader.Iterator()
	defer iterator.Close()

	for iterator.Next() {
		entry := iterator.Entry()
		if entry == nil {
			continue
		}

		if entry.IsTombstone() {
			delete(kd.entries, entry.ID)
			continue
		}

		kd.entries[entry.ID] = keydirEntry{
			Offset:    reader.Offset() - int64(entry.Size()),
			Size:      uint32(entry.Size()),
			Timestamp: entry.Timestamp,
		}
	}

	return iterator.Err()
}
