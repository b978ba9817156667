package logfile

import "time"

// keydirEntry records where the latest version of an id lives in the log
type keydirEntry struct {
	Offset    int64  // Byte offset within the file
	Size      uint32 // Size of the entry in bytes
	Timestamp uint64 // Entry timestamp
}

// WriterConfig holds configuration for the log writer
type WriterConfig struct {
	FilePath      string        // Path to the active data file
	FsyncInterval time.Duration // How often to fsync (0 = every write)
	BufferSize    int           // Write buffer size
}

// ReaderConfig holds configuration for the log reader
type ReaderConfig struct {
	FilePath    string // Path to the data file
	StartOffset int64  // Offset to start reading from
}

// Options holds configuration for the log-structured store
type Options struct {
	Dir           string        // Directory for data files
	FsyncInterval time.Duration // Fsync interval for durability
}

// EntryIterator provides streaming access to log entries
type EntryIterator interface {
	Next() bool
	Entry() *Entry
	Err() error
	Close() error
}
