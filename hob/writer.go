package hob

import (
	"github.com/cockroachdb/errors"

	"github.com/joshuapare/hobkit/internal/format"
)

// Writer appends records to a list it constructed. A Writer owns its list's
// memory until the caller stops using it; it is not safe for concurrent use.
type Writer struct {
	mem    Memory
	base   uint64 // address of the hand-off record
	window []byte // [base, FreeMemoryTop)
	phit   format.Handoff
}

// Construct lays out an empty list at r.FreeMemoryBottom: a hand-off record
// describing r, immediately followed by the end-of-list marker. The
// hand-off record's free bottom ends up just past the marker.
func Construct(mem WritableMemory, r Region) (*Writer, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	window, err := mem.Reserve(r.FreeMemoryBottom, r.FreeSize())
	if err != nil {
		return nil, errors.Wrapf(err, "hob: reserve %s", r)
	}

	base := r.FreeMemoryBottom
	w := &Writer{
		mem:    mem,
		base:   base,
		window: window,
		phit: format.Handoff{
			Version:          format.HandoffTableVersion,
			BootMode:         format.BootWithFullConfiguration,
			MemoryTop:        r.MemoryTop,
			MemoryBottom:     r.MemoryBottom,
			FreeMemoryTop:    r.FreeMemoryTop,
			FreeMemoryBottom: base + format.EmptyListSize,
			EndOfHobList:     base + format.HandoffSize,
		},
	}
	if err := format.PutEndOfList(window[format.HandoffSize:]); err != nil {
		return nil, err
	}
	if err := w.flush(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Writer) flush() error {
	return format.PutHandoff(w.window, w.phit)
}

// Append creates a record of type t carrying payload at the end of the
// list. The record length is rounded up to the record alignment and the
// padding is zeroed.
func (w *Writer) Append(t format.HobType, payload []byte) (Record, error) {
	if t == format.TypeEndOfList {
		return Record{}, errors.Newf("hob: cannot append %s", t)
	}
	length := format.Align8(format.HeaderSize + len(payload))
	if length > format.MaxRecordLength {
		return Record{}, errors.Wrapf(format.ErrBadLength, "%s payload of %d bytes", t, len(payload))
	}
	if w.phit.FreeSize() < uint64(length) {
		return Record{}, errors.Wrapf(ErrOutOfResources, "%s needs 0x%x, 0x%x free", t, length, w.phit.FreeSize())
	}

	at := w.phit.EndOfHobList
	off := at - w.base
	raw := w.window[off : off+uint64(length)]
	h := format.Header{Type: t, Length: uint16(length)}
	if err := format.PutHeader(raw, h); err != nil {
		return Record{}, err
	}
	n := copy(raw[format.HeaderSize:], payload)
	clear(raw[format.HeaderSize+n:])

	end := at + uint64(length)
	if err := format.PutEndOfList(w.window[end-w.base:]); err != nil {
		return Record{}, err
	}
	w.phit.EndOfHobList = end
	w.phit.FreeMemoryBottom = end + format.HeaderSize
	if err := w.flush(); err != nil {
		return Record{}, err
	}
	return Record{Addr: at, Header: h, Raw: raw}, nil
}

// Copy appends a record with rec's type and payload.
func (w *Writer) Copy(rec Record) (Record, error) {
	return w.Append(rec.Type(), rec.Payload())
}

// Handoff returns the list's current hand-off record.
func (w *Writer) Handoff() format.Handoff {
	return w.phit
}

// List returns a read view of the list being written.
func (w *Writer) List() *List {
	return Open(w.mem, w.base)
}
