package format

import (
	"github.com/cockroachdb/errors"

	"github.com/joshuapare/hobkit/internal/buf"
)

// Header is the generic header that precedes every record.
//
//	Offset  Size  Description
//	0x00    2     Type
//	0x02    2     Length, including this header
//	0x04    4     Reserved
type Header struct {
	Type   HobType
	Length uint16
}

// ParseHeader decodes the generic header at the start of b. It rejects
// lengths shorter than the header itself, which would otherwise stall a
// list walk.
func ParseHeader(b []byte) (Header, error) {
	if !buf.Has(b, 0, HeaderSize) {
		return Header{}, errors.Wrap(ErrTruncated, "header")
	}
	h := Header{
		Type:   HobType(buf.U16LE(b[HeaderTypeOffset:])),
		Length: buf.U16LE(b[HeaderLengthOffset:]),
	}
	if h.Length < HeaderSize {
		return Header{}, errors.Wrapf(ErrBadLength, "header: %s length %d", h.Type, h.Length)
	}
	return h, nil
}

// PutHeader encodes h at the start of b with a zero reserved field.
func PutHeader(b []byte, h Header) error {
	if !buf.Has(b, 0, HeaderSize) {
		return errors.Wrap(ErrTruncated, "header")
	}
	buf.PutU16LE(b[HeaderTypeOffset:], uint16(h.Type))
	buf.PutU16LE(b[HeaderLengthOffset:], h.Length)
	buf.PutU32LE(b[HeaderReservedOffset:], 0)
	return nil
}

// PutEndOfList writes a payload-less end-of-list marker at the start of b.
func PutEndOfList(b []byte) error {
	return PutHeader(b, Header{Type: TypeEndOfList, Length: HeaderSize})
}

// expect checks that b holds a whole record of type t at least min bytes long
// and returns the record bytes trimmed to its declared length.
func expect(b []byte, t HobType, min int) ([]byte, error) {
	h, err := ParseHeader(b)
	if err != nil {
		return nil, err
	}
	if h.Type != t {
		return nil, errors.Wrapf(ErrTypeMismatch, "want %s, got %s", t, h.Type)
	}
	if int(h.Length) < min {
		return nil, errors.Wrapf(ErrBadLength, "%s: length %d < %d", t, h.Length, min)
	}
	if int(h.Length) > len(b) {
		return nil, errors.Wrapf(ErrTruncated, "%s: length %d > buffer %d", t, h.Length, len(b))
	}
	return b[:h.Length], nil
}
