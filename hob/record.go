package hob

import (
	"fmt"

	"github.com/joshuapare/hobkit/internal/format"
)

// Record is one entry of a list. Raw covers the whole record, header
// included, and aliases the memory the list was read from.
type Record struct {
	Addr   uint64
	Header format.Header
	Raw    []byte
}

// Type returns the record type from the header.
func (r Record) Type() format.HobType {
	return r.Header.Type
}

// Payload returns the bytes that follow the generic header.
func (r Record) Payload() []byte {
	return r.Raw[format.HeaderSize:]
}

// End returns the address of the record that follows this one.
func (r Record) End() uint64 {
	return r.Addr + uint64(r.Header.Length)
}

func (r Record) String() string {
	return fmt.Sprintf("%s@0x%x+0x%x", r.Header.Type, r.Addr, r.Header.Length)
}

// Payload is the typed view of a record. The concrete types are
// format.Handoff, format.ResourceDescriptor, format.GUIDExtension,
// format.EndOfList and, for everything else, format.Opaque.
type Payload interface {
	HobType() format.HobType
}

// Decode returns the typed view of r.
func (r Record) Decode() (Payload, error) {
	switch r.Header.Type {
	case format.TypeHandoff:
		return format.ParseHandoff(r.Raw)
	case format.TypeResourceDescriptor:
		return format.ParseResourceDescriptor(r.Raw)
	case format.TypeGUIDExtension:
		return format.ParseGUIDExtension(r.Raw)
	case format.TypeEndOfList:
		return format.EndOfList{}, nil
	default:
		return format.Opaque{Type: r.Header.Type, Data: r.Payload()}, nil
	}
}
