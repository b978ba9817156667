// Package logfile implements the default storage backend: an append-only
// record log with an in-memory keydir, crash recovery by scanning and
// truncating the log tail, and a separate durable cell for the id counter.
package logfile

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/larderdb/larder/pkg/storage"
)

// Store is a log-structured storage backend
type Store struct {
	opts         Options
	writer       *Writer
	reader       *Reader
	keydir       *keydir
	counter      *counterCell
	counterValue uint64
	dataFile     string
	recovery     RecoveryResult
	mutex        sync.Mutex
	isOpen       bool
}

// RecoveryResult describes what opening the log found and repaired
type RecoveryResult struct {
	EntriesValidated int64         // Entries that passed validation
	TruncatedBytes   int64         // Bytes dropped from the corrupt tail
	FileSizeBefore   int64         // Log size before recovery
	FileSizeAfter    int64         // Log size after recovery
	RecoveryTime     time.Duration // Time spent scanning and repairing
}

// Stats holds statistics about the store
type Stats struct {
	Records   int   // Live records
	DataBytes int64 // Log size in bytes
}

// Open initializes the store, recovering from a corrupt log tail if one
// is found, and rebuilds the keydir from the surviving entries.
func Open(opts Options) (*Store, error) {
	if err := os.MkdirAll(opts.Dir, 0750); err != nil {
		return nil, err
	}

	s := &Store{
		opts:     opts,
		dataFile: filepath.Join(opts.Dir, "active.data"),
		keydir:   newKeydir(),
		counter:  newCounterCell(opts.Dir),
	}

	recovery, err := s.validateLog()
	if err != nil {
		return nil, err
	}
	s.recovery = recovery

	writer, err := NewWriter(WriterConfig{
		FilePath:      s.dataFile,
		FsyncInterval: opts.FsyncInterval,
	})
	if err != nil {
		return nil, err
	}
	s.writer = writer

	reader, err := NewReader(ReaderConfig{FilePath: s.dataFile})
	if err != nil {
		s.writer.Close()
		return nil, err
	}
	s.reader = reader

	if err := s.keydir.BuildFromLog(s.reader); err != nil {
		s.reader.Close()
		s.writer.Close()
		return nil, err
	}

	value, err := s.counter.Load()
	if err != nil {
		s.reader.Close()
		s.writer.Close()
		return nil, err
	}
	s.counterValue = value

	s.isOpen = true
	return s, nil
}

// Get retrieves the stored bytes for an id
func (s *Store) Get(id uint64) ([]byte, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isOpen {
		return nil, storage.ErrClosed
	}

	loc, exists := s.keydir.Get(id)
	if !exists {
		return nil, storage.ErrNotFound
	}

	// Buffered appends must reach the OS before ReadAt can see them
	if err := s.writer.Flush(); err != nil {
		return nil, err
	}

	entry, err := s.reader.ReadAt(loc.Offset)
	if err != nil {
		return nil, err
	}
	if entry.IsTombstone() {
		return nil, storage.ErrNotFound
	}

	return entry.Value, nil
}

// Put stores bytes under an id, superseding any previous entry
func (s *Store) Put(id uint64, data []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isOpen {
		return storage.ErrClosed
	}

	entry, offset, err := s.writer.Append(id, data)
	if err != nil {
		return err
	}

	s.keydir.Put(id, keydirEntry{
		Offset:    offset,
		Size:      uint32(entry.Size()),
		Timestamp: entry.Timestamp,
	})

	return nil
}

// Delete writes a tombstone for an id. Deleting an absent id is a no-op.
func (s *Store) Delete(id uint64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isOpen {
		return storage.ErrClosed
	}

	if _, exists := s.keydir.Get(id); !exists {
		return nil
	}

	if _, _, err := s.writer.Append(id, nil); err != nil {
		return err
	}
	s.keydir.Delete(id)

	return nil
}

// Counter reads the id counter cell
func (s *Store) Counter() (uint64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isOpen {
		return 0, storage.ErrClosed
	}

	return s.counterValue, nil
}

// SetCounter durably replaces the id counter cell
func (s *Store) SetCounter(value uint64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isOpen {
		return storage.ErrClosed
	}

	if err := s.counter.Store(value); err != nil {
		return err
	}
	s.counterValue = value

	return nil
}

// Count returns the number of live records
func (s *Store) Count() (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isOpen {
		return 0, storage.ErrClosed
	}

	return s.keydir.Size(), nil
}

// Sync forces buffered writes to stable media
func (s *Store) Sync() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isOpen {
		return storage.ErrClosed
	}

	return s.writer.Sync()
}

// Close shuts down the store
func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isOpen {
		return nil
	}
	s.isOpen = false

	// Close the writer first so everything is flushed
	if err := s.writer.Close(); err != nil {
		s.reader.Close()
		return err
	}

	return s.reader.Close()
}

// Recovery reports what opening the log found and repaired
func (s *Store) Recovery() RecoveryResult {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.recovery
}

// Stats returns store statistics
func (s *Store) Stats() Stats {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isOpen {
		return Stats{}
	}

	return Stats{
		Records:   s.keydir.Size(),
		DataBytes: s.writer.Size(),
	}
}

// validateLog scans the log and truncates everything after the last
// valid entry. Anything unreadable at the tail is dropped rather than
// served back corrupted.
func (s *Store) validateLog() (RecoveryResult, error) {
	start := time.Now()

	fileInfo, err := os.Stat(s.dataFile)
	if err != nil {
		if os.IsNotExist(err) {
			return RecoveryResult{RecoveryTime: time.Since(start)}, nil
		}
		return RecoveryResult{}, err
	}
	fileSizeBefore := fileInfo.Size()

	reader, err := NewReader(ReaderConfig{FilePath: s.dataFile})
	if err != nil {
		return RecoveryResult{}, err
	}
	defer reader.Close()

	var entriesValidated int64
	var lastValidOffset int64
	corruptionFound := false

	for {
		_, err := reader.ReadNext()
		if err != nil {
			if err == io.EOF {
				break
			}
			corruptionFound = true
			break
		}
		entriesValidated++
		lastValidOffset = reader.Offset()
	}

	fileSizeAfter := fileSizeBefore
	if corruptionFound {
		file, err := os.OpenFile(s.dataFile, os.O_RDWR, 0600)
		if err != nil {
			return RecoveryResult{}, err
		}
		if err := file.Truncate(lastValidOffset); err != nil {
			file.Close()
			return RecoveryResult{}, err
		}
		if err := file.Sync(); err != nil {
			file.Close()
			return RecoveryResult{}, err
		}
		if err := file.Close(); err != nil {
			return RecoveryResult{}, err
		}
		fileSizeAfter = lastValidOffset
	}

	return RecoveryResult{
		EntriesValidated: entriesValidated,
		TruncatedBytes:   fileSizeBefore - fileSizeAfter,
		FileSizeBefore:   fileSizeBefore,
		FileSizeAfter:    fileSizeAfter,
		RecoveryTime:     time.Since(start),
	}, nil
}
