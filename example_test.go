package bitarray_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hupe1980/bitarray"
)

// Example demonstrates basic bit manipulation.
func Example() {
	b := bitarray.New(1000)

	b.Set(69)
	b.SetRegion(100, 104)
	b.Toggle(999)

	fmt.Println(b.Count())
	fmt.Println(b.Test(69))

	idx, ok := b.NextSet(70)
	fmt.Println(idx, ok)
	// Output:
	// 7
	// true
	// 100 true
}

// Example_codec demonstrates the hex and binary text codecs.
func Example_codec() {
	b, err := bitarray.FromHex("DEADBEEF")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(b.Len())
	fmt.Println(b.HexString())

	// Lengths that are not a multiple of 4 left-pad the final hex digit.
	b2, err := bitarray.FromBin("1010111")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(b2.HexString())
	// Output:
	// 32
	// DEADBEEF
	// A7
}

// Example_persistence demonstrates saving and loading a bit array.
func Example_persistence() {
	dir, err := os.MkdirTemp("", "bitarray")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	b := bitarray.New(256)
	b.SetMany(0, 128, 255)

	path := filepath.Join(dir, "flags.bits")
	if err := b.Save(path); err != nil {
		log.Fatal(err)
	}

	loaded, err := bitarray.Load(path)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(loaded.Len(), loaded.Count())
	fmt.Println(b.Equal(loaded))
	// Output:
	// 256 3
	// true
}
