package logfile

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/larderdb/larder/pkg/storage"
)

// Reader provides sequential access to entries in a log file
type Reader struct {
	file   *os.File
	reader *bufio.Reader
	offset int64
	config ReaderConfig
}

// NewReader creates a new log reader for the specified file
func NewReader(config ReaderConfig) (*Reader, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, err
	}

	if config.StartOffset > 0 {
		if _, err := file.Seek(config.StartOffset, io.SeekStart); err != nil {
			file.Close()
			return nil, err
		}
	}

	return &Reader{
		file:   file,
		reader: bufio.NewReader(file),
		offset: config.StartOffset,
		config: config,
	}, nil
}

// ReadNext reads the entry at the current offset. It returns io.EOF at a
// clean end of the log; a partial or invalid entry is corruption.
func (r *Reader) ReadNext() (*Entry, error) {
	header := make([]byte, entryHeaderSize)
	n, err := io.ReadFull(r.reader, header)
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		if err == io.ErrUnexpectedEOF {
			return nil, errors.Wrap(storage.ErrCorruption, "partial entry header at log tail")
		}
		return nil, err
	}
	r.offset += int64(n)

	entry, err := decodeEntryHeader(header)
	if err != nil {
		return nil, errors.Wrap(storage.ErrCorruption, err.Error())
	}

	if !entry.IsTombstone() {
		entry.Value = make([]byte, entry.ValueSize)
		n, err = io.ReadFull(r.reader, entry.Value)
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, errors.Wrap(storage.ErrCorruption, "partial entry body at log tail")
			}
			return nil, err
		}
		r.offset += int64(n)
	}

	if err := entry.validate(); err != nil {
		return nil, errors.Wrap(storage.ErrCorruption, err.Error())
	}

	return entry, nil
}

// ReadAt reads the entry starting at a specific offset. It opens its own
// file handle so the sequential read position is left untouched.
func (r *Reader) ReadAt(offset int64) (*Entry, error) {
	file, err := os.Open(r.config.FilePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	header := make([]byte, entryHeaderSize)
	if _, err := file.ReadAt(header, offset); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errors.Wrap(storage.ErrCorruption, "entry header past log tail")
		}
		return nil, err
	}

	entry, err := decodeEntryHeader(header)
	if err != nil {
		return nil, errors.Wrap(storage.ErrCorruption, err.Error())
	}

	if !entry.IsTombstone() {
		entry.Value = make([]byte, entry.ValueSize)
		if _, err := file.ReadAt(entry.Value, offset+entryHeaderSize); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, errors.Wrap(storage.ErrCorruption, "entry body past log tail")
			}
			return nil, err
		}
	}

	if err := entry.validate(); err != nil {
		return nil, errors.Wrap(storage.ErrCorruption, err.Error())
	}

	return entry, nil
}

// Seek sets the read offset
func (r *Reader) Seek(offset int64) error {
	if _, err := r.file.Seek(offset, io.SeekStart); err != nil {
		return err
	}

	r.reader = bufio.NewReader(r.file) // Recreate reader to clear buffer
	r.offset = offset
	return nil
}

// Offset returns the current read offset
func (r *Reader) Offset() int64 {
	return r.offset
}

// Iterator returns a streaming iterator over entries
func (r *Reader) Iterator() EntryIterator {
	return &logEntryIterator{reader: r}
}

// Close closes the log reader
func (r *Reader) Close() error {
	return r.file.Close()
}

// logEntryIterator implements EntryIterator for streaming access
type logEntryIterator struct {
	reader *Reader
	entry  *Entry
	err    error
}

func (it *logEntryIterator) Next() bool {
	it.entry, it.err = it.reader.ReadNext()
	return it.err == nil
}

func (it *logEntryIterator) Entry() *Entry {
	return it.entry
}

func (it *logEntryIterator) Err() error {
	if it.err == io.EOF {
		return nil
	}
	return it.err
}

func (it *logEntryIterator) Close() error {
	// The underlying reader is owned by the caller
	return nil
}
