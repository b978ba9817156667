package logfile

import (
	"encoding/binary"
	"hash/crc32"
	"time"

	"github.com/pkg/errors"
)

const (
	// entryHeaderSize is the fixed portion of a log entry:
	// CRC32(4) + ID(8) + ValueSize(4) + Timestamp(8)
	entryHeaderSize = 24

	// maxValueBytes bounds a single entry body. Anything larger in a
	// header is corruption, not data.
	maxValueBytes = 1 << 20
)

// Entry is one append-only log record. A zero-length value marks a
// tombstone for the id.
type Entry struct {
	CRC32     uint32 // CRC32 checksum for integrity
	ID        uint64 // Record id
	ValueSize uint32 // Size of the value in bytes
	Timestamp uint64 // Unix timestamp in nanoseconds
	Value     []byte // Encoded record data
}

// NewEntry creates an entry for id with the current timestamp.
func NewEntry(id uint64, value []byte) *Entry {
	return &Entry{
		ID:        id,
		ValueSize: uint32(len(value)),
		Timestamp: uint64(time.Now().UnixNano()),
		Value:     value,
	}
}

// IsTombstone reports whether the entry marks a deletion.
func (e *Entry) IsTombstone() bool {
	return e.ValueSize == 0
}

// Size returns the total size of the entry when encoded.
func (e *Entry) Size() int {
	return entryHeaderSize + len(e.Value)
}

// Encode serializes the entry.
// Format: [CRC32(4)][ID(8)][ValueSize(4)][Timestamp(8)][Value]
// The CRC32 (IEEE) covers every byte after the checksum itself.
func (e *Entry) Encode() []byte {
	buf := make([]byte, e.Size())

	binary.LittleEndian.PutUint64(buf[4:], e.ID)
	binary.LittleEndian.PutUint32(buf[12:], e.ValueSize)
	binary.LittleEndian.PutUint64(buf[16:], e.Timestamp)
	copy(buf[entryHeaderSize:], e.Value)

	e.CRC32 = crc32.ChecksumIEEE(buf[4:])
	binary.LittleEndian.PutUint32(buf[0:], e.CRC32)

	return buf
}

// decodeEntryHeader parses a header without its body. The caller reads
// ValueSize further bytes and calls validate on the assembled entry.
func decodeEntryHeader(header []byte) (*Entry, error) {
	if len(header) < entryHeaderSize {
		return nil, errors.Errorf("entry header too short: %d bytes", len(header))
	}

	e := &Entry{
		CRC32:     binary.LittleEndian.Uint32(header[0:4]),
		ID:        binary.LittleEndian.Uint64(header[4:12]),
		ValueSize: binary.LittleEndian.Uint32(header[12:16]),
		Timestamp: binary.LittleEndian.Uint64(header[16:24]),
	}
	if e.ValueSize > maxValueBytes {
		return nil, errors.Errorf("entry declares %d value bytes, bound is %d", e.ValueSize, maxValueBytes)
	}
	return e, nil
}

// validate recomputes the checksum over the assembled entry.
func (e *Entry) validate() error {
	crc := crc32.NewIEEE()

	var fixed [entryHeaderSize - 4]byte
	binary.LittleEndian.PutUint64(fixed[0:], e.ID)
	binary.LittleEndian.PutUint32(fixed[8:], e.ValueSize)
	binary.LittleEndian.PutUint64(fixed[12:], e.Timestamp)

	if _, err := crc.Write(fixed[:]); err != nil {
		return err
	}
	if _, err := crc.Write(e.Value); err != nil {
		return err
	}

	if e.CRC32 != crc.Sum32() {
		return errors.Errorf("entry checksum mismatch: stored %08x, computed %08x", e.CRC32, crc.Sum32())
	}
	return nil
}
