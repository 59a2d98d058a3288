package format

import "github.com/cockroachdb/errors"

// GUIDExtension is a vendor record identified by Name; Data is everything
// after the name up to the record's declared length.
type GUIDExtension struct {
	Name GUID
	Data []byte
}

// HobType implements the record payload variant.
func (GUIDExtension) HobType() HobType { return TypeGUIDExtension }

// ParseGUIDExtension decodes the GUID extension record at the start of b.
// Data aliases b.
func ParseGUIDExtension(b []byte) (GUIDExtension, error) {
	rec, err := expect(b, TypeGUIDExtension, GUIDExtensionHeaderSize)
	if err != nil {
		return GUIDExtension{}, errors.Wrap(err, "guid extension")
	}
	var g GUIDExtension
	copy(g.Name[:], rec[GUIDExtensionNameOffset:GUIDExtensionDataOffset])
	g.Data = rec[GUIDExtensionDataOffset:]
	return g, nil
}

// Payload returns the encoded bytes that follow the generic header.
func (g GUIDExtension) Payload() []byte {
	b := make([]byte, GUIDExtensionDataOffset-HeaderSize+len(g.Data))
	copy(b, g.Name[:])
	copy(b[len(g.Name):], g.Data)
	return b
}

// Opaque carries the payload of record types this package does not decode.
type Opaque struct {
	Type HobType
	Data []byte
}

// HobType implements the record payload variant.
func (o Opaque) HobType() HobType { return o.Type }

// EndOfList is the payload-less terminator.
type EndOfList struct{}

// HobType implements the record payload variant.
func (EndOfList) HobType() HobType { return TypeEndOfList }
