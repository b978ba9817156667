package codec

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/pkg/errors"

	"github.com/larderdb/larder/pkg/inventory"
)

const (
	// MaxEncodedSize is the hard bound on a serialized product record.
	// Encoding fails rather than truncate when a record would exceed it.
	MaxEncodedSize = 1024

	// HeaderSize is the fixed portion of an encoded record:
	// CRC32(4) + Flags(1) + ID(8) + Category(1) + Quantity(4) +
	// CreatedAt(8) + UpdatedAt(8) + NameLen(2)
	HeaderSize = 36

	// MaxNameBytes is the longest product name that fits in a record.
	MaxNameBytes = MaxEncodedSize - HeaderSize

	flagHasUpdatedAt = 0x01
	knownFlags       = flagHasUpdatedAt
)

// Codec errors. Decode failures mean the stored bytes cannot be trusted
// and are treated as corruption by callers.
var (
	ErrTooLarge  = errors.New("encoded product exceeds size bound")
	ErrTruncated = errors.New("product record truncated")
	ErrChecksum  = errors.New("product record checksum mismatch")
)

// ProductCodec serializes products into a fixed binary layout:
//
//	[CRC32(4)][Flags(1)][ID(8)][Category(1)][Quantity(4)][CreatedAt(8)][UpdatedAt(8)][NameLen(2)][Name]
//
// All integers are little-endian. The CRC32 (IEEE) covers every byte
// after the checksum itself.
type ProductCodec struct{}

// NewProductCodec creates a new product codec instance.
func NewProductCodec() *ProductCodec {
	return &ProductCodec{}
}

// Encode serializes a product. It fails with ErrTooLarge when the record
// would exceed MaxEncodedSize.
func (c *ProductCodec) Encode(p inventory.Product) ([]byte, error) {
	if !p.Category.Valid() {
		return nil, errors.Errorf("cannot encode unknown category %d", uint8(p.Category))
	}
	name := []byte(p.Name)
	if len(name) > MaxNameBytes {
		return nil, errors.Wrapf(ErrTooLarge, "record is %d bytes, bound is %d", HeaderSize+len(name), MaxEncodedSize)
	}

	buf := make([]byte, HeaderSize+len(name))

	var flags byte
	if p.UpdatedAt != nil {
		flags |= flagHasUpdatedAt
		binary.LittleEndian.PutUint64(buf[26:], *p.UpdatedAt)
	}
	buf[4] = flags
	binary.LittleEndian.PutUint64(buf[5:], p.ID)
	buf[13] = byte(p.Category)
	binary.LittleEndian.PutUint32(buf[14:], p.Quantity)
	binary.LittleEndian.PutUint64(buf[18:], p.CreatedAt)
	binary.LittleEndian.PutUint16(buf[34:], uint16(len(name)))
	copy(buf[HeaderSize:], name)

	binary.LittleEndian.PutUint32(buf[0:], crc32.ChecksumIEEE(buf[4:]))

	return buf, nil
}

// Decode deserializes a product record, verifying length and checksum.
// The returned product shares no memory with data.
func (c *ProductCodec) Decode(data []byte) (inventory.Product, error) {
	var p inventory.Product

	if len(data) < HeaderSize {
		return p, errors.Wrapf(ErrTruncated, "%d bytes, header needs %d", len(data), HeaderSize)
	}
	nameLen := int(binary.LittleEndian.Uint16(data[34:36]))
	if len(data) != HeaderSize+nameLen {
		return p, errors.Wrapf(ErrTruncated, "%d bytes, record declares %d", len(data), HeaderSize+nameLen)
	}
	stored := binary.LittleEndian.Uint32(data[0:4])
	if computed := crc32.ChecksumIEEE(data[4:]); stored != computed {
		return p, errors.Wrapf(ErrChecksum, "stored %08x, computed %08x", stored, computed)
	}

	flags := data[4]
	if flags&^byte(knownFlags) != 0 {
		return p, errors.Errorf("unknown record flags %02x", flags)
	}
	category := inventory.Category(data[13])
	if !category.Valid() {
		return p, errors.Errorf("unknown category %d in record", data[13])
	}

	p.ID = binary.LittleEndian.Uint64(data[5:13])
	p.Category = category
	p.Quantity = binary.LittleEndian.Uint32(data[14:18])
	p.CreatedAt = binary.LittleEndian.Uint64(data[18:26])
	if flags&flagHasUpdatedAt != 0 {
		updatedAt := binary.LittleEndian.Uint64(data[26:34])
		p.UpdatedAt = &updatedAt
	}
	p.Name = string(data[HeaderSize : HeaderSize+nameLen])

	return p, nil
}

// EncodedSize returns the size of p once encoded, without encoding it.
func (c *ProductCodec) EncodedSize(p inventory.Product) int {
	return HeaderSize + len(p.Name)
}
