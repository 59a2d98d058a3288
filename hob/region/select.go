package region

import (
	"github.com/cockroachdb/errors"

	"github.com/joshuapare/hobkit/hob"
	"github.com/joshuapare/hobkit/internal/format"
)

// DefaultMinimalSize is the default size of the region reserved for the new
// list (64 MiB).
const DefaultMinimalSize uint64 = 0x04000000

// Placement records which branch of the selection produced a region.
type Placement int

const (
	// PlacementRelocated: no descriptor contains the old list, so the region
	// sits at the top of the highest suitable descriptor.
	PlacementRelocated Placement = iota + 1
	// PlacementAbove: the region extends the old list upward in place.
	PlacementAbove
	// PlacementBelow: the region extends the old list downward in place.
	PlacementBelow
	// PlacementRelocatedElsewhere: the descriptor containing the old list is
	// full, so the region sits at the top of another descriptor.
	PlacementRelocatedElsewhere
)

func (p Placement) String() string {
	switch p {
	case PlacementRelocated:
		return "relocated"
	case PlacementAbove:
		return "above"
	case PlacementBelow:
		return "below"
	case PlacementRelocatedElsewhere:
		return "relocated-elsewhere"
	default:
		return "unknown"
	}
}

// InPlace reports whether the region extends the old list's own range.
func (p Placement) InPlace() bool {
	return p == PlacementAbove || p == PlacementBelow
}

// Selection is the outcome of Select.
type Selection struct {
	Region    hob.Region
	Placement Placement
	// Descriptor is the descriptor the region was carved from.
	Descriptor Descriptor
	// Containing is the descriptor that contains the old list, if any.
	Containing *Descriptor
}

// Selector picks the region for a migrated list. The zero value uses
// DefaultMinimalSize and BelowLimit.
type Selector struct {
	// MinimalSize is the size the new list's free range must provide.
	MinimalSize uint64
	// Ceiling bounds descriptors considered for relocation.
	Ceiling uint64
}

func (s Selector) minimalSize() uint64 {
	if s.MinimalSize == 0 {
		return DefaultMinimalSize
	}
	return s.MinimalSize
}

func (s Selector) ceiling() uint64 {
	if s.Ceiling == 0 {
		return BelowLimit
	}
	return s.Ceiling
}

// Select decides where the list described by h moves to. The branches are
// tried in order:
//
//  1. no qualifying descriptor contains [MemoryBottom, MemoryTop): take the
//     top MinimalSize bytes of the highest descriptor below the ceiling;
//  2. the containing descriptor has MinimalSize bytes above MemoryTop:
//     extend upward from MemoryTop;
//  3. it has MinimalSize bytes below MemoryBottom: extend downward;
//  4. otherwise take the top of the highest other descriptor.
//
// ErrRegionNotFound is returned when branch 1 or 4 finds no descriptor.
func (s Selector) Select(l *hob.List, h format.Handoff) (Selection, error) {
	size := s.minimalSize()

	phit, ok, err := FindContaining(l, h.MemoryBottom, h.MemoryTop)
	if err != nil {
		return Selection{}, err
	}
	if !ok {
		d, err := s.relocate(l, size, nil)
		if err != nil {
			return Selection{}, err
		}
		return Selection{Region: topOf(d, size), Placement: PlacementRelocated, Descriptor: d}, nil
	}

	if phit.Top()-h.MemoryTop >= size {
		return Selection{
			Region: hob.Region{
				MemoryBottom:     h.FreeMemoryTop,
				FreeMemoryBottom: h.MemoryTop,
				FreeMemoryTop:    h.MemoryTop + size,
				MemoryTop:        h.MemoryTop + size,
			},
			Placement:  PlacementAbove,
			Descriptor: phit,
			Containing: &phit,
		}, nil
	}

	if h.MemoryBottom-phit.PhysicalStart >= size {
		return Selection{
			Region: hob.Region{
				MemoryBottom:     h.MemoryBottom - size,
				FreeMemoryBottom: h.MemoryBottom - size,
				FreeMemoryTop:    h.MemoryBottom,
				MemoryTop:        h.MemoryTop,
			},
			Placement:  PlacementBelow,
			Descriptor: phit,
			Containing: &phit,
		}, nil
	}

	d, err := s.relocate(l, size, &phit)
	if err != nil {
		return Selection{}, err
	}
	return Selection{
		Region:     topOf(d, size),
		Placement:  PlacementRelocatedElsewhere,
		Descriptor: d,
		Containing: &phit,
	}, nil
}

func (s Selector) relocate(l *hob.List, size uint64, exclude *Descriptor) (Descriptor, error) {
	d, ok, err := FindHighestBelow(l, s.ceiling(), size, exclude)
	if err != nil {
		return Descriptor{}, err
	}
	if !ok {
		return Descriptor{}, errors.WithHintf(
			errors.Wrapf(ErrRegionNotFound, "need 0x%x bytes below 0x%x", size, s.ceiling()),
			"the boot loader must report at least one tested system memory range of 0x%x bytes", size)
	}
	return d, nil
}

// topOf returns the region made of the last size bytes of d.
func topOf(d Descriptor, size uint64) hob.Region {
	top := d.Top()
	return hob.Region{
		MemoryBottom:     top - size,
		FreeMemoryBottom: top - size,
		FreeMemoryTop:    top,
		MemoryTop:        top,
	}
}

// Select runs a Selector with the given minimal size.
func Select(l *hob.List, h format.Handoff, minimalSize uint64) (Selection, error) {
	return Selector{MinimalSize: minimalSize}.Select(l, h)
}
