package hob

import (
	"io"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/hobkit/internal/buf"
	"github.com/joshuapare/hobkit/internal/format"
)

// Iterator walks a list one record at a time. Obtain one from List.Records.
type Iterator struct {
	mem  Memory
	addr uint64
	done bool
}

// Next returns the next record. The end-of-list record is returned once;
// every call after it returns io.EOF. A malformed record ends the walk with
// an error.
func (it *Iterator) Next() (Record, error) {
	if it.done {
		return Record{}, io.EOF
	}

	head, err := it.mem.Bytes(it.addr, format.HeaderSize)
	if err != nil {
		it.done = true
		return Record{}, errors.Wrapf(ErrCorrupt, "header at 0x%x: %v", it.addr, err)
	}
	h, err := format.ParseHeader(head)
	if err != nil {
		it.done = true
		return Record{}, errors.Wrapf(ErrCorrupt, "record at 0x%x: %v", it.addr, err)
	}
	raw, err := it.mem.Bytes(it.addr, uint64(h.Length))
	if err != nil {
		it.done = true
		return Record{}, errors.Wrapf(ErrCorrupt, "%s at 0x%x: %v", h.Type, it.addr, err)
	}

	rec := Record{Addr: it.addr, Header: h, Raw: raw}
	if h.Type == format.TypeEndOfList {
		it.done = true
		return rec, nil
	}

	next, ok := buf.AddOverflowSafe(it.addr, uint64(h.Length))
	if !ok {
		it.done = true
		return Record{}, errors.Wrapf(ErrCorrupt, "%s at 0x%x wraps the address space", h.Type, it.addr)
	}
	it.addr = next
	return rec, nil
}
