// Package physmem models a physical address space as a set of mapped
// segments. Boot code addresses memory by physical address; this package
// lets the same code run against a memory dump or a synthetic layout.
package physmem

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/hobkit/internal/buf"
)

var (
	// ErrUnmapped indicates an access to addresses no segment covers.
	ErrUnmapped = errors.New("physmem: address not mapped")
	// ErrOverlap indicates a new mapping would share bytes with an existing one.
	ErrOverlap = errors.New("physmem: mapping overlaps existing segment")
	// ErrRange indicates a range that wraps the 64-bit address space.
	ErrRange = errors.New("physmem: range wraps address space")
)

// Segment is one contiguous mapping.
type Segment struct {
	Base uint64
	Data []byte
}

// Top returns the first address past the segment.
func (s Segment) Top() uint64 {
	return s.Base + uint64(len(s.Data))
}

// Map is a sparse physical address space. The zero value is empty and ready
// to use. Map is not safe for concurrent mutation.
type Map struct {
	segs []Segment // sorted by Base, non-overlapping
}

// New returns a map holding the given segments.
func New(segs ...Segment) (*Map, error) {
	m := &Map{}
	for _, s := range segs {
		if err := m.Add(s.Base, s.Data); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add maps data at base. The slice is used in place, not copied.
func (m *Map) Add(base uint64, data []byte) error {
	top, ok := buf.AddOverflowSafe(base, uint64(len(data)))
	if !ok {
		return errors.Wrapf(ErrRange, "add [0x%x, +0x%x)", base, len(data))
	}
	if len(data) == 0 {
		return nil
	}
	for _, s := range m.segs {
		if buf.Overlaps(base, top, s.Base, s.Top()) {
			return errors.Wrapf(ErrOverlap, "add [0x%x, 0x%x) over [0x%x, 0x%x)", base, top, s.Base, s.Top())
		}
	}
	i := sort.Search(len(m.segs), func(i int) bool { return m.segs[i].Base > base })
	m.segs = append(m.segs, Segment{})
	copy(m.segs[i+1:], m.segs[i:])
	m.segs[i] = Segment{Base: base, Data: data}
	return nil
}

// find returns the segment containing addr.
func (m *Map) find(addr uint64) (Segment, bool) {
	i := sort.Search(len(m.segs), func(i int) bool { return m.segs[i].Base > addr })
	if i == 0 {
		return Segment{}, false
	}
	s := m.segs[i-1]
	if addr >= s.Top() {
		return Segment{}, false
	}
	return s, true
}

// Bytes returns the n bytes at addr. The range must lie inside a single
// segment; the returned slice aliases it.
func (m *Map) Bytes(addr, n uint64) ([]byte, error) {
	if _, ok := buf.AddOverflowSafe(addr, n); !ok {
		return nil, errors.Wrapf(ErrRange, "read [0x%x, +0x%x)", addr, n)
	}
	s, ok := m.find(addr)
	if !ok {
		return nil, errors.Wrapf(ErrUnmapped, "read at 0x%x", addr)
	}
	b, ok := buf.Slice(s.Data, addr-s.Base, n)
	if !ok {
		return nil, errors.Wrapf(ErrUnmapped, "read [0x%x, +0x%x) past segment end 0x%x", addr, n, s.Top())
	}
	return b, nil
}

// Reserve returns writable storage for [addr, addr+n). A range inside an
// existing segment is returned in place; a wholly unmapped range is backed
// by a fresh zeroed segment. Partial overlap is an error.
func (m *Map) Reserve(addr, n uint64) ([]byte, error) {
	if b, err := m.Bytes(addr, n); err == nil {
		return b, nil
	}
	top, ok := buf.AddOverflowSafe(addr, n)
	if !ok {
		return nil, errors.Wrapf(ErrRange, "reserve [0x%x, +0x%x)", addr, n)
	}
	for _, s := range m.segs {
		if buf.Overlaps(addr, top, s.Base, s.Top()) {
			return nil, errors.Wrapf(ErrOverlap, "reserve [0x%x, 0x%x) straddles [0x%x, 0x%x)", addr, top, s.Base, s.Top())
		}
	}
	data := make([]byte, n)
	if err := m.Add(addr, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Segments returns the mappings in address order. The slice is a copy; the
// Data fields alias the mapped memory.
func (m *Map) Segments() []Segment {
	out := make([]Segment, len(m.segs))
	copy(out, m.segs)
	return out
}
