package region

import (
	"io"

	"github.com/joshuapare/hobkit/hob"
)

// BelowLimit is the address ceiling FindHighestBelowLimit applies: the new
// list must stay addressable by 32-bit code.
const BelowLimit uint64 = 1 << 32

// FindContaining returns the first qualifying descriptor, in list order,
// whose range contains [base, top). Overlapping descriptors resolve to the
// earliest one.
func FindContaining(l *hob.List, base, top uint64) (Descriptor, bool, error) {
	it := l.Records()
	for {
		rec, err := it.Next()
		if err == io.EOF {
			return Descriptor{}, false, nil
		}
		if err != nil {
			return Descriptor{}, false, err
		}
		d, ok := Qualify(rec)
		if !ok {
			continue
		}
		if base < d.PhysicalStart || top > d.Top() {
			continue
		}
		return d, true, nil
	}
}

// FindHighestBelowLimit is FindHighestBelow with the BelowLimit ceiling.
func FindHighestBelowLimit(l *hob.List, minSize uint64, exclude *Descriptor) (Descriptor, bool, error) {
	return FindHighestBelow(l, BelowLimit, minSize, exclude)
}

// FindHighestBelow returns the qualifying descriptor with the greatest
// start address among those that end at or below limit, are at least
// minSize long and are not exclude. A nil exclude excludes nothing. When two
// candidates share a start address the earlier one in list order is kept.
func FindHighestBelow(l *hob.List, limit, minSize uint64, exclude *Descriptor) (Descriptor, bool, error) {
	var (
		best  Descriptor
		found bool
	)
	it := l.Records()
	for {
		rec, err := it.Next()
		if err == io.EOF {
			return best, found, nil
		}
		if err != nil {
			return Descriptor{}, false, err
		}
		d, ok := Qualify(rec)
		if !ok {
			continue
		}
		if exclude != nil && d.Addr == exclude.Addr {
			continue
		}
		if d.Top() > limit || d.ResourceLength < minSize {
			continue
		}
		if !found || best.PhysicalStart < d.PhysicalStart {
			best, found = d, true
		}
	}
}
