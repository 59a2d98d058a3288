package hob

import (
	"io"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/hobkit/internal/format"
)

// List is a HOB list anchored at a physical address. It holds no state of
// its own beyond the anchor, so every walk starts from the base again.
type List struct {
	mem  Memory
	base uint64
}

// Open returns the list whose first record sits at base.
func Open(mem Memory, base uint64) *List {
	return &List{mem: mem, base: base}
}

// Base returns the address of the first record.
func (l *List) Base() uint64 {
	return l.base
}

// Memory returns the memory the list is read from.
func (l *List) Memory() Memory {
	return l.mem
}

// Records returns a fresh iterator positioned at the first record.
func (l *List) Records() *Iterator {
	return &Iterator{mem: l.mem, addr: l.base}
}

// First returns the first record of type t, the end-of-list marker included.
func (l *List) First(t format.HobType) (Record, error) {
	it := l.Records()
	for {
		rec, err := it.Next()
		if err == io.EOF {
			return Record{}, errors.Wrapf(ErrNotFound, "%s", t)
		}
		if err != nil {
			return Record{}, err
		}
		if rec.Type() == t {
			return rec, nil
		}
	}
}

// Handoff decodes the first hand-off record of the list. Producers put it
// first, but the list may start anywhere.
func (l *List) Handoff() (format.Handoff, error) {
	rec, err := l.First(format.TypeHandoff)
	if err != nil {
		return format.Handoff{}, err
	}
	return format.ParseHandoff(rec.Raw)
}

// End returns the address just past the end-of-list marker.
func (l *List) End() (uint64, error) {
	end, err := l.First(format.TypeEndOfList)
	if err != nil {
		return 0, err
	}
	return end.End(), nil
}

// Len returns the number of records before the end-of-list marker.
func (l *List) Len() (int, error) {
	n := 0
	it := l.Records()
	for {
		rec, err := it.Next()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return 0, err
		}
		if rec.Type() != format.TypeEndOfList {
			n++
		}
	}
}

// Bytes returns the list's raw bytes from its base through the end-of-list
// marker.
func (l *List) Bytes() ([]byte, error) {
	end, err := l.End()
	if err != nil {
		return nil, err
	}
	return l.mem.Bytes(l.base, end-l.base)
}
