package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/hobkit/internal/buf"
)

// ResourceType classifies the range a resource descriptor covers.
type ResourceType uint32

const (
	ResourceSystemMemory       ResourceType = 0x00000000
	ResourceMemoryMappedIO     ResourceType = 0x00000001
	ResourceIO                 ResourceType = 0x00000002
	ResourceFirmwareDevice     ResourceType = 0x00000003
	ResourceMemoryMappedIOPort ResourceType = 0x00000004
	ResourceMemoryReserved     ResourceType = 0x00000005
	ResourceIOReserved         ResourceType = 0x00000006
)

var resourceTypeNames = [...]string{
	"SystemMemory",
	"MemoryMappedIO",
	"IO",
	"FirmwareDevice",
	"MemoryMappedIOPort",
	"MemoryReserved",
	"IOReserved",
}

func (t ResourceType) String() string {
	if int(t) < len(resourceTypeNames) {
		return resourceTypeNames[t]
	}
	return fmt.Sprintf("ResourceType(0x%X)", uint32(t))
}

// ResourceAttribute is the attribute bitmask of a resource descriptor.
type ResourceAttribute uint32

const (
	AttrPresent               ResourceAttribute = 0x00000001
	AttrInitialized           ResourceAttribute = 0x00000002
	AttrTested                ResourceAttribute = 0x00000004
	AttrSingleBitECC          ResourceAttribute = 0x00000008
	AttrMultipleBitECC        ResourceAttribute = 0x00000010
	AttrECCReserved1          ResourceAttribute = 0x00000020
	AttrECCReserved2          ResourceAttribute = 0x00000040
	AttrReadProtected         ResourceAttribute = 0x00000080
	AttrWriteProtected        ResourceAttribute = 0x00000100
	AttrExecutionProtected    ResourceAttribute = 0x00000200
	AttrUncacheable           ResourceAttribute = 0x00000400
	AttrWriteCombineable      ResourceAttribute = 0x00000800
	AttrWriteThroughCacheable ResourceAttribute = 0x00001000
	AttrWriteBackCacheable    ResourceAttribute = 0x00002000
	Attr16BitIO               ResourceAttribute = 0x00004000
	Attr32BitIO               ResourceAttribute = 0x00008000
	Attr64BitIO               ResourceAttribute = 0x00010000
	AttrUncachedExported      ResourceAttribute = 0x00020000
	AttrReadOnlyProtected     ResourceAttribute = 0x00040000
	AttrReadOnlyProtectable   ResourceAttribute = 0x00080000
	AttrReadProtectable       ResourceAttribute = 0x00100000
	AttrWriteProtectable      ResourceAttribute = 0x00200000
	AttrExecutionProtectable  ResourceAttribute = 0x00400000
	AttrPersistent            ResourceAttribute = 0x00800000
	AttrPersistable           ResourceAttribute = 0x01000000
	AttrMoreReliable          ResourceAttribute = 0x02000000
)

var attributeNames = []struct {
	bit  ResourceAttribute
	name string
}{
	{AttrPresent, "Present"},
	{AttrInitialized, "Initialized"},
	{AttrTested, "Tested"},
	{AttrSingleBitECC, "SingleBitECC"},
	{AttrMultipleBitECC, "MultipleBitECC"},
	{AttrECCReserved1, "ECCReserved1"},
	{AttrECCReserved2, "ECCReserved2"},
	{AttrReadProtected, "ReadProtected"},
	{AttrWriteProtected, "WriteProtected"},
	{AttrExecutionProtected, "ExecutionProtected"},
	{AttrUncacheable, "Uncacheable"},
	{AttrWriteCombineable, "WriteCombineable"},
	{AttrWriteThroughCacheable, "WriteThroughCacheable"},
	{AttrWriteBackCacheable, "WriteBackCacheable"},
	{Attr16BitIO, "16BitIO"},
	{Attr32BitIO, "32BitIO"},
	{Attr64BitIO, "64BitIO"},
	{AttrUncachedExported, "UncachedExported"},
	{AttrReadOnlyProtected, "ReadOnlyProtected"},
	{AttrReadOnlyProtectable, "ReadOnlyProtectable"},
	{AttrReadProtectable, "ReadProtectable"},
	{AttrWriteProtectable, "WriteProtectable"},
	{AttrExecutionProtectable, "ExecutionProtectable"},
	{AttrPersistent, "Persistent"},
	{AttrPersistable, "Persistable"},
	{AttrMoreReliable, "MoreReliable"},
}

// String lists the set bits joined by '|', with any unnamed remainder in hex.
func (a ResourceAttribute) String() string {
	if a == 0 {
		return "0"
	}
	var parts []string
	rest := a
	for _, n := range attributeNames {
		if a&n.bit != 0 {
			parts = append(parts, n.name)
			rest &^= n.bit
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%X", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseResourceAttribute parses the String form back into a mask. Names are
// case-sensitive; hex literals are accepted for unnamed bits.
func ParseResourceAttribute(s string) (ResourceAttribute, error) {
	var a ResourceAttribute
	if s == "" || s == "0" {
		return 0, nil
	}
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		found := false
		for _, n := range attributeNames {
			if n.name == part {
				a |= n.bit
				found = true
				break
			}
		}
		if found {
			continue
		}
		v, err := strconv.ParseUint(part, 0, 32)
		if err != nil {
			return 0, errors.Newf("format: unknown resource attribute %q", part)
		}
		a |= ResourceAttribute(v)
	}
	return a, nil
}

// ParseResourceType parses the String form of a resource type.
func ParseResourceType(s string) (ResourceType, error) {
	for i, name := range resourceTypeNames {
		if name == s {
			return ResourceType(i), nil
		}
	}
	return 0, errors.Newf("format: unknown resource type %q", s)
}

// ResourceDescriptor describes one physical range and its attributes.
//
//	Offset  Size  Field
//	0x00    8     Generic header (Type = 0x0003)
//	0x08    16    Owner GUID
//	0x18    4     ResourceType
//	0x1C    4     ResourceAttribute
//	0x20    8     PhysicalStart
//	0x28    8     ResourceLength
type ResourceDescriptor struct {
	Owner          GUID
	ResourceType   ResourceType
	Attribute      ResourceAttribute
	PhysicalStart  uint64
	ResourceLength uint64
}

// HobType implements the record payload variant.
func (ResourceDescriptor) HobType() HobType { return TypeResourceDescriptor }

// End returns PhysicalStart+ResourceLength, with ok = false when the sum
// wraps the address space.
func (r ResourceDescriptor) End() (uint64, bool) {
	return buf.AddOverflowSafe(r.PhysicalStart, r.ResourceLength)
}

// Contains reports whether [base, top) lies inside the descriptor's range.
func (r ResourceDescriptor) Contains(base, top uint64) bool {
	end, ok := r.End()
	if !ok {
		return false
	}
	return base >= r.PhysicalStart && top <= end
}

// ParseResourceDescriptor decodes the resource descriptor at the start of b.
func ParseResourceDescriptor(b []byte) (ResourceDescriptor, error) {
	rec, err := expect(b, TypeResourceDescriptor, ResourceDescriptorSize)
	if err != nil {
		return ResourceDescriptor{}, errors.Wrap(err, "resource descriptor")
	}
	var r ResourceDescriptor
	copy(r.Owner[:], rec[ResourceOwnerOffset:ResourceOwnerOffset+len(r.Owner)])
	r.ResourceType = ResourceType(buf.U32LE(rec[ResourceTypeOffset:]))
	r.Attribute = ResourceAttribute(buf.U32LE(rec[ResourceAttributeOffset:]))
	r.PhysicalStart = buf.U64LE(rec[ResourceStartOffset:])
	r.ResourceLength = buf.U64LE(rec[ResourceLengthOffset:])
	return r, nil
}

// PutResourceDescriptor encodes r, header included, at the start of b.
func PutResourceDescriptor(b []byte, r ResourceDescriptor) error {
	if !buf.Has(b, 0, ResourceDescriptorSize) {
		return errors.Wrap(ErrTruncated, "resource descriptor")
	}
	if err := PutHeader(b, Header{Type: TypeResourceDescriptor, Length: ResourceDescriptorSize}); err != nil {
		return err
	}
	copy(b[ResourceOwnerOffset:], r.Owner[:])
	buf.PutU32LE(b[ResourceTypeOffset:], uint32(r.ResourceType))
	buf.PutU32LE(b[ResourceAttributeOffset:], uint32(r.Attribute))
	buf.PutU64LE(b[ResourceStartOffset:], r.PhysicalStart)
	buf.PutU64LE(b[ResourceLengthOffset:], r.ResourceLength)
	return nil
}

// Payload returns the encoded bytes that follow the generic header.
func (r ResourceDescriptor) Payload() []byte {
	b := make([]byte, ResourceDescriptorSize)
	_ = PutResourceDescriptor(b, r)
	return b[HeaderSize:]
}
