// Package format houses low-level decoders and encoders for the hand-off block
// (HOB) list passed between boot stages. The layouts here are a fixed external
// contract with the producing stage; nothing in this package interprets the
// records beyond their wire shape.
package format

import "fmt"

// HobType identifies the kind of record that follows the generic header.
type HobType uint16

// Record types defined by the PI specification.
const (
	TypeHandoff            HobType = 0x0001
	TypeMemoryAllocation   HobType = 0x0002
	TypeResourceDescriptor HobType = 0x0003
	TypeGUIDExtension      HobType = 0x0004
	TypeFirmwareVolume     HobType = 0x0005
	TypeCPU                HobType = 0x0006
	TypeMemoryPool         HobType = 0x0007
	TypeFirmwareVolume2    HobType = 0x0009
	TypeLoadPEIMUnused     HobType = 0x000A
	TypeUEFICapsule        HobType = 0x000B
	TypeFirmwareVolume3    HobType = 0x000C
	TypeUnused             HobType = 0xFFFE
	TypeEndOfList          HobType = 0xFFFF
)

var hobTypeNames = map[HobType]string{
	TypeHandoff:            "Handoff",
	TypeMemoryAllocation:   "MemoryAllocation",
	TypeResourceDescriptor: "ResourceDescriptor",
	TypeGUIDExtension:      "GUIDExtension",
	TypeFirmwareVolume:     "FirmwareVolume",
	TypeCPU:                "CPU",
	TypeMemoryPool:         "MemoryPool",
	TypeFirmwareVolume2:    "FirmwareVolume2",
	TypeLoadPEIMUnused:     "LoadPEIMUnused",
	TypeUEFICapsule:        "UEFICapsule",
	TypeFirmwareVolume3:    "FirmwareVolume3",
	TypeUnused:             "Unused",
	TypeEndOfList:          "EndOfList",
}

func (t HobType) String() string {
	if name, ok := hobTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(0x%04X)", uint16(t))
}

// ============================================================================
// Generic header
// ============================================================================
// Every record starts with (little-endian):
//
//	Offset  Size  Field
//	0x00    2     HobType
//	0x02    2     HobLength (bytes, including this header)
//	0x04    4     Reserved (zero)
const (
	HeaderTypeOffset     = 0x00
	HeaderLengthOffset   = 0x02
	HeaderReservedOffset = 0x04
	HeaderSize           = 0x08
)

// RecordAlignment is the granularity of HobLength for records created by
// this module. Producers following the PI specification use the same value.
const (
	RecordAlignment     = 8
	RecordAlignmentMask = RecordAlignment - 1
)

// MaxRecordLength is the largest length expressible in the 16-bit length
// field once aligned down to RecordAlignment.
const MaxRecordLength = 0xFFFF &^ RecordAlignmentMask

// ============================================================================
// Hand-off information table (PHIT)
// ============================================================================
const (
	HandoffVersionOffset          = 0x08 // UINT32
	HandoffBootModeOffset         = 0x0C // UINT32
	HandoffMemoryTopOffset        = 0x10 // EFI_PHYSICAL_ADDRESS
	HandoffMemoryBottomOffset     = 0x18 // EFI_PHYSICAL_ADDRESS
	HandoffFreeMemoryTopOffset    = 0x20 // EFI_PHYSICAL_ADDRESS
	HandoffFreeMemoryBottomOffset = 0x28 // EFI_PHYSICAL_ADDRESS
	HandoffEndOfListOffset        = 0x30 // EFI_PHYSICAL_ADDRESS
	HandoffSize                   = 0x38
)

// HandoffTableVersion is the PHIT version written into freshly built lists.
const HandoffTableVersion = 0x0009

// BootWithFullConfiguration is the boot mode written into freshly built lists.
const BootWithFullConfiguration = 0x00

// ============================================================================
// Resource descriptor
// ============================================================================
const (
	ResourceOwnerOffset     = 0x08 // EFI_GUID
	ResourceTypeOffset      = 0x18 // UINT32
	ResourceAttributeOffset = 0x1C // UINT32
	ResourceStartOffset     = 0x20 // EFI_PHYSICAL_ADDRESS
	ResourceLengthOffset    = 0x28 // UINT64
	ResourceDescriptorSize  = 0x30
)

// ============================================================================
// GUID extension
// ============================================================================
const (
	GUIDExtensionNameOffset = 0x08
	GUIDExtensionDataOffset = 0x18
	GUIDExtensionHeaderSize = GUIDExtensionDataOffset
)

// EmptyListSize is the number of bytes an empty list occupies: a hand-off
// record followed by the end-of-list marker.
const EmptyListSize = HandoffSize + HeaderSize
