package logfile

import (
	"encoding/binary"
	"hash/crc32"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/larderdb/larder/pkg/storage"
)

// counterFileSize is CRC32(4) + Value(8).
const counterFileSize = 12

// counterCell persists the id counter in its own small file, separate
// from the record log. Writes go through a temp file and rename so a
// crash leaves either the old cell or the new one, never a torn write.
type counterCell struct {
	path string
}

func newCounterCell(dir string) *counterCell {
	return &counterCell{path: filepath.Join(dir, "counter.cell")}
}

// Load reads the cell. A missing file means the counter was never
// written and loads as zero.
func (c *counterCell) Load() (uint64, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	if len(data) != counterFileSize {
		return 0, errors.Wrapf(storage.ErrCorruption, "counter cell is %d bytes, want %d", len(data), counterFileSize)
	}
	stored := binary.LittleEndian.Uint32(data[0:4])
	if computed := crc32.ChecksumIEEE(data[4:]); stored != computed {
		return 0, errors.Wrapf(storage.ErrCorruption, "counter cell checksum mismatch: stored %08x, computed %08x", stored, computed)
	}

	return binary.LittleEndian.Uint64(data[4:12]), nil
}

// Store durably replaces the cell value.
func (c *counterCell) Store(value uint64) error {
	buf := make([]byte, counterFileSize)
	binary.LittleEndian.PutUint64(buf[4:], value)
	binary.LittleEndian.PutUint32(buf[0:], crc32.ChecksumIEEE(buf[4:]))

	tmp := c.path + ".tmp"
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	if _, err := file.Write(buf); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, c.path)
}
