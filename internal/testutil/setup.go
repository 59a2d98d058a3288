// Package testutil builds synthetic HOB list images for tests.
package testutil

import (
	"testing"

	"github.com/joshuapare/hobkit/hob/physmem"
	"github.com/joshuapare/hobkit/internal/format"
)

// TestedAttributes is the attribute set of tested system memory.
const TestedAttributes = format.AttrPresent | format.AttrInitialized | format.AttrTested

// Handoff returns the raw bytes of a hand-off record. EndOfHobList is left
// as given; producers differ in how carefully they maintain it.
func Handoff(bottom, top, freeBottom, freeTop uint64) []byte {
	b := make([]byte, format.HandoffSize)
	_ = format.PutHandoff(b, format.Handoff{
		Version:          format.HandoffTableVersion,
		MemoryBottom:     bottom,
		MemoryTop:        top,
		FreeMemoryBottom: freeBottom,
		FreeMemoryTop:    freeTop,
	})
	return b
}

// Resource returns the raw bytes of a resource descriptor.
func Resource(rt format.ResourceType, attr format.ResourceAttribute, start, length uint64) []byte {
	b := make([]byte, format.ResourceDescriptorSize)
	_ = format.PutResourceDescriptor(b, format.ResourceDescriptor{
		ResourceType:   rt,
		Attribute:      attr,
		PhysicalStart:  start,
		ResourceLength: length,
	})
	return b
}

// TestedMemory returns a resource descriptor for tested system memory.
func TestedMemory(start, length uint64) []byte {
	return Resource(format.ResourceSystemMemory, TestedAttributes, start, length)
}

// Raw returns a record of type t carrying payload, padded to the record
// alignment.
func Raw(t format.HobType, payload []byte) []byte {
	b := make([]byte, format.Align8(format.HeaderSize+len(payload)))
	_ = format.PutHeader(b, format.Header{Type: t, Length: uint16(len(b))})
	copy(b[format.HeaderSize:], payload)
	return b
}

// EndOfList returns an end-of-list marker.
func EndOfList() []byte {
	b := make([]byte, format.HeaderSize)
	_ = format.PutEndOfList(b)
	return b
}

// Pack concatenates records and terminates them with an end-of-list marker.
func Pack(records ...[]byte) []byte {
	var out []byte
	for _, r := range records {
		out = append(out, r...)
	}
	return append(out, EndOfList()...)
}

// Memory maps Pack(records...) at base in a fresh address space.
func Memory(t testing.TB, base uint64, records ...[]byte) *physmem.Map {
	t.Helper()
	m, err := physmem.New(physmem.Segment{Base: base, Data: Pack(records...)})
	if err != nil {
		t.Fatalf("map list image: %v", err)
	}
	return m
}
