package codec_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/larderdb/larder/pkg/codec"
	"github.com/larderdb/larder/pkg/inventory"
)

// ExampleProductCodec_basic demonstrates basic record encoding and decoding
func ExampleProductCodec_basic() {
	codec := codec.NewProductCodec()

	product := inventory.Product{
		ID:        1,
		Name:      "Sourdough Loaf",
		Category:  inventory.CategoryBakery,
		Quantity:  12,
		CreatedAt: 1719043200000000000,
	}

	encoded, err := codec.Encode(product)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Encoded %d bytes\n", len(encoded))

	decoded, err := codec.Decode(encoded)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Name: %s\n", decoded.Name)
	fmt.Printf("Category: %s\n", decoded.Category)
	fmt.Printf("Quantity: %d\n", decoded.Quantity)

	// Output:
	// Encoded 50 bytes
	// Name: Sourdough Loaf
	// Category: Bakery
	// Quantity: 12
}

// ExampleProductCodec_sizeBound demonstrates the record size bound
func ExampleProductCodec_sizeBound() {
	c := codec.NewProductCodec()

	oversized := inventory.Product{
		ID:        2,
		Name:      string(make([]byte, codec.MaxNameBytes+1)),
		Category:  inventory.CategoryCake,
		Quantity:  1,
		CreatedAt: 1719043200000000000,
	}

	_, err := c.Encode(oversized)
	fmt.Printf("Too large: %t\n", errors.Is(err, codec.ErrTooLarge))

	// Output:
	// Too large: true
}

// ExampleProductCodec_errorHandling demonstrates corruption detection
func ExampleProductCodec_errorHandling() {
	c := codec.NewProductCodec()

	// Malformed data is rejected before any field is trusted
	_, err := c.Decode([]byte{0x01, 0x02, 0x03})
	fmt.Printf("Truncated: %t\n", errors.Is(err, codec.ErrTruncated))

	// A single flipped bit fails the checksum
	encoded, err := c.Encode(inventory.Product{
		ID:        3,
		Name:      "Shortbread",
		Category:  inventory.CategoryCookies,
		Quantity:  24,
		CreatedAt: 1719043200000000000,
	})
	if err != nil {
		log.Fatal(err)
	}
	encoded[len(encoded)-1] ^= 0x01

	_, err = c.Decode(encoded)
	fmt.Printf("Corrupted: %t\n", errors.Is(err, codec.ErrChecksum))

	// Output:
	// Truncated: true
	// Corrupted: true
}
