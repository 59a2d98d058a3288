// Package region chooses where a migrated HOB list lives. It classifies the
// resource descriptors of a list, searches them for a range that contains
// or can host the list, and turns the result into hand-off bounds.
package region

import (
	"github.com/joshuapare/hobkit/hob"
	"github.com/joshuapare/hobkit/internal/format"
)

// AttributeMask selects the attribute bits that decide whether system
// memory is usable for the list. Cacheability and ECC bits are ignored.
const AttributeMask = format.AttrPresent |
	format.AttrInitialized |
	format.AttrTested |
	format.AttrReadProtected |
	format.AttrWriteProtected |
	format.AttrExecutionProtected |
	format.AttrReadOnlyProtected |
	format.Attr16BitIO |
	format.Attr32BitIO |
	format.Attr64BitIO |
	format.AttrPersistent

// TestedAttributes is the required value of the masked attribute bits.
const TestedAttributes = format.AttrPresent | format.AttrInitialized | format.AttrTested

// Descriptor is a resource descriptor together with the address of the
// record it was decoded from. The address is its identity within a list.
type Descriptor struct {
	Addr uint64
	format.ResourceDescriptor
}

// Top returns the first address past the described range. Only call it on
// descriptors returned by Qualify, whose end is known not to wrap.
func (d Descriptor) Top() uint64 {
	return d.PhysicalStart + d.ResourceLength
}

// IsTestedMemory reports whether rd describes present, initialized and
// tested system memory with no protection, I/O or persistence bits set.
func IsTestedMemory(rd format.ResourceDescriptor) bool {
	return rd.ResourceType == format.ResourceSystemMemory &&
		rd.Attribute&AttributeMask == TestedAttributes
}

// Qualify decodes rec as a qualifying descriptor. Records of other types,
// descriptors that are not tested memory, empty descriptors and descriptors
// whose range wraps the address space do not qualify.
func Qualify(rec hob.Record) (Descriptor, bool) {
	if rec.Type() != format.TypeResourceDescriptor {
		return Descriptor{}, false
	}
	rd, err := format.ParseResourceDescriptor(rec.Raw)
	if err != nil || !IsTestedMemory(rd) || rd.ResourceLength == 0 {
		return Descriptor{}, false
	}
	if _, ok := rd.End(); !ok {
		return Descriptor{}, false
	}
	return Descriptor{Addr: rec.Addr, ResourceDescriptor: rd}, true
}
