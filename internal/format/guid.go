package format

import (
	"encoding/hex"
	"fmt"

	"github.com/cockroachdb/errors"
)

// GUID is an EFI_GUID in its in-memory byte order: the first three fields
// are little-endian, the trailing eight bytes are stored as-is.
type GUID [16]byte

// String formats g in the registry form, e.g.
// 4ED4BF27-4092-42E9-807D-527B1D00C9BD.
func (g GUID) String() string {
	return fmt.Sprintf("%08X-%04X-%04X-%02X%02X-%02X%02X%02X%02X%02X%02X",
		uint32(g[0])|uint32(g[1])<<8|uint32(g[2])<<16|uint32(g[3])<<24,
		uint16(g[4])|uint16(g[5])<<8,
		uint16(g[6])|uint16(g[7])<<8,
		g[8], g[9], g[10], g[11], g[12], g[13], g[14], g[15])
}

// IsZero reports whether g is the all-zero GUID.
func (g GUID) IsZero() bool {
	return g == GUID{}
}

// ParseGUID parses the registry form produced by String.
func ParseGUID(s string) (GUID, error) {
	if len(s) != 36 || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return GUID{}, errors.Newf("format: invalid GUID %q", s)
	}
	raw, err := hex.DecodeString(s[0:8] + s[9:13] + s[14:18] + s[19:23] + s[24:36])
	if err != nil {
		return GUID{}, errors.Wrapf(err, "format: invalid GUID %q", s)
	}
	var g GUID
	// Data1..Data3 are big-endian in text and little-endian in memory.
	g[0], g[1], g[2], g[3] = raw[3], raw[2], raw[1], raw[0]
	g[4], g[5] = raw[5], raw[4]
	g[6], g[7] = raw[7], raw[6]
	copy(g[8:], raw[8:16])
	return g, nil
}
