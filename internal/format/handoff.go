package format

import (
	"github.com/cockroachdb/errors"

	"github.com/joshuapare/hobkit/internal/buf"
)

// Handoff is the hand-off information table (PHIT). It describes the memory
// that backs the list it heads: the list occupies [MemoryBottom, MemoryTop)
// and [FreeMemoryBottom, FreeMemoryTop) is still unused.
//
//	Offset  Size  Field
//	0x00    8     Generic header (Type = 0x0001)
//	0x08    4     Version
//	0x0C    4     BootMode
//	0x10    8     EfiMemoryTop
//	0x18    8     EfiMemoryBottom
//	0x20    8     EfiFreeMemoryTop
//	0x28    8     EfiFreeMemoryBottom
//	0x30    8     EfiEndOfHobList
//
// The producing stage stores Top before Bottom; callers only ever see the
// named fields.
type Handoff struct {
	Version          uint32
	BootMode         uint32
	MemoryTop        uint64
	MemoryBottom     uint64
	FreeMemoryTop    uint64
	FreeMemoryBottom uint64
	EndOfHobList     uint64
}

// HobType implements the record payload variant.
func (Handoff) HobType() HobType { return TypeHandoff }

// FreeSize returns the number of unused bytes, or 0 when the free bounds
// are inverted.
func (h Handoff) FreeSize() uint64 {
	n, _ := buf.SubUnderflowSafe(h.FreeMemoryTop, h.FreeMemoryBottom)
	return n
}

// ParseHandoff decodes the hand-off record at the start of b.
func ParseHandoff(b []byte) (Handoff, error) {
	rec, err := expect(b, TypeHandoff, HandoffSize)
	if err != nil {
		return Handoff{}, errors.Wrap(err, "handoff")
	}
	return Handoff{
		Version:          buf.U32LE(rec[HandoffVersionOffset:]),
		BootMode:         buf.U32LE(rec[HandoffBootModeOffset:]),
		MemoryTop:        buf.U64LE(rec[HandoffMemoryTopOffset:]),
		MemoryBottom:     buf.U64LE(rec[HandoffMemoryBottomOffset:]),
		FreeMemoryTop:    buf.U64LE(rec[HandoffFreeMemoryTopOffset:]),
		FreeMemoryBottom: buf.U64LE(rec[HandoffFreeMemoryBottomOffset:]),
		EndOfHobList:     buf.U64LE(rec[HandoffEndOfListOffset:]),
	}, nil
}

// PutHandoff encodes h, header included, at the start of b.
func PutHandoff(b []byte, h Handoff) error {
	if !buf.Has(b, 0, HandoffSize) {
		return errors.Wrap(ErrTruncated, "handoff")
	}
	if err := PutHeader(b, Header{Type: TypeHandoff, Length: HandoffSize}); err != nil {
		return err
	}
	buf.PutU32LE(b[HandoffVersionOffset:], h.Version)
	buf.PutU32LE(b[HandoffBootModeOffset:], h.BootMode)
	buf.PutU64LE(b[HandoffMemoryTopOffset:], h.MemoryTop)
	buf.PutU64LE(b[HandoffMemoryBottomOffset:], h.MemoryBottom)
	buf.PutU64LE(b[HandoffFreeMemoryTopOffset:], h.FreeMemoryTop)
	buf.PutU64LE(b[HandoffFreeMemoryBottomOffset:], h.FreeMemoryBottom)
	buf.PutU64LE(b[HandoffEndOfListOffset:], h.EndOfHobList)
	return nil
}
