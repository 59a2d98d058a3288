package hob

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/hobkit/internal/buf"
	"github.com/joshuapare/hobkit/internal/format"
)

// Region holds the four bounds recorded in a hand-off record. The list is
// written from FreeMemoryBottom upward; FreeMemoryTop caps its growth.
// MemoryBottom and MemoryTop are published as-is and need not enclose the
// free range.
type Region struct {
	MemoryBottom     uint64
	MemoryTop        uint64
	FreeMemoryBottom uint64
	FreeMemoryTop    uint64
}

// RegionOf returns the bounds recorded in h.
func RegionOf(h format.Handoff) Region {
	return Region{
		MemoryBottom:     h.MemoryBottom,
		MemoryTop:        h.MemoryTop,
		FreeMemoryBottom: h.FreeMemoryBottom,
		FreeMemoryTop:    h.FreeMemoryTop,
	}
}

// FreeSize returns FreeMemoryTop - FreeMemoryBottom, or 0 when inverted.
func (r Region) FreeSize() uint64 {
	n, _ := buf.SubUnderflowSafe(r.FreeMemoryTop, r.FreeMemoryBottom)
	return n
}

// Validate reports whether an empty list fits in the free range.
func (r Region) Validate() error {
	if r.FreeMemoryTop < r.FreeMemoryBottom {
		return errors.Wrapf(ErrBadRegion, "free range inverted: %s", r)
	}
	if r.FreeSize() < format.EmptyListSize {
		return errors.Wrapf(ErrOutOfResources, "free range 0x%x < 0x%x: %s", r.FreeSize(), format.EmptyListSize, r)
	}
	return nil
}

func (r Region) String() string {
	return fmt.Sprintf("memory [0x%x, 0x%x) free [0x%x, 0x%x)",
		r.MemoryBottom, r.MemoryTop, r.FreeMemoryBottom, r.FreeMemoryTop)
}
