// Package codec provides product record serialization for Larder.
//
// The codec package implements the binary record format every storage
// backend persists. Records are bounded, checksummed, and self-describing,
// so a backend can hand back stored bytes without knowing their shape.
//
// # Record Format
//
// A product is serialized in a binary format with the following structure:
//
//	[CRC32(4)][Flags(1)][ID(8)][Category(1)][Quantity(4)][CreatedAt(8)][UpdatedAt(8)][NameLen(2)][Name]
//
// Fields:
//   - CRC32: 32-bit CRC checksum for integrity validation (little-endian)
//   - Flags: bit 0 set when the record carries an updated-at timestamp
//   - ID: 64-bit product identifier (little-endian)
//   - Category: category ordinal (0 Bakery, 1 Cake, 2 Cookies)
//   - Quantity: 32-bit stock level (little-endian)
//   - CreatedAt: 64-bit Unix timestamp in nanoseconds (little-endian)
//   - UpdatedAt: 64-bit Unix timestamp in nanoseconds, zero when bit 0 of
//     Flags is clear (little-endian)
//   - NameLen: 16-bit name length in bytes (little-endian)
//   - Name: variable-length UTF-8 name data
//
// The total record size is: 36 bytes (header) + len(name), and must not
// exceed MaxEncodedSize (1024 bytes). Encoding a product past the bound
// fails with ErrTooLarge; records are never silently truncated.
//
// # CRC32 Calculation
//
// The CRC32 checksum is calculated over every byte after the CRC32 field
// itself, covering the remaining header fields and the name data. Any
// corruption in the record is detected during decoding.
//
// # Usage
//
// Basic encoding and decoding:
//
//	codec := codec.NewProductCodec()
//
//	encoded, err := codec.Encode(product)
//	if err != nil {
//	    return err
//	}
//
//	decoded, err := codec.Decode(encoded)
//	if err != nil {
//	    return err // Record is corrupted
//	}
//
// # Error Handling
//
// Decode validates structure before trusting any field: the byte length
// must match the declared name length exactly, the checksum must match,
// and the flags and category must be known values. A failed decode means
// the stored bytes cannot be trusted and callers treat it as corruption.
//
// # Thread Safety
//
// ProductCodec instances are stateless and safe for concurrent use.
// Decoded products share no memory with the input buffer.
package codec
