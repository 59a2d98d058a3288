package format

import (
	"math"
	"testing"
)

func TestResourceDescriptorEncodeDecode(t *testing.T) {
	owner, err := ParseGUID("4ED4BF27-4092-42E9-807D-527B1D00C9BD")
	if err != nil {
		t.Fatalf("ParseGUID: %v", err)
	}
	in := ResourceDescriptor{
		Owner:          owner,
		ResourceType:   ResourceSystemMemory,
		Attribute:      AttrPresent | AttrInitialized | AttrTested | AttrWriteBackCacheable,
		PhysicalStart:  0x100000,
		ResourceLength: 0x7FF00000,
	}
	b := make([]byte, ResourceDescriptorSize)
	if err := PutResourceDescriptor(b, in); err != nil {
		t.Fatalf("PutResourceDescriptor: %v", err)
	}
	out, err := ParseResourceDescriptor(b)
	if err != nil {
		t.Fatalf("ParseResourceDescriptor: %v", err)
	}
	if out != in {
		t.Fatalf("decoded %+v, want %+v", out, in)
	}
	if len(in.Payload()) != ResourceDescriptorSize-HeaderSize {
		t.Fatalf("Payload length = %d", len(in.Payload()))
	}
}

func TestResourceDescriptorContains(t *testing.T) {
	r := ResourceDescriptor{PhysicalStart: 0x1000, ResourceLength: 0x1000}
	if !r.Contains(0x1000, 0x2000) {
		t.Fatalf("exact range should be contained")
	}
	if r.Contains(0xFFF, 0x1800) || r.Contains(0x1800, 0x2001) {
		t.Fatalf("straddling ranges should not be contained")
	}

	wrap := ResourceDescriptor{PhysicalStart: math.MaxUint64 - 1, ResourceLength: 4}
	if _, ok := wrap.End(); ok {
		t.Fatalf("End should report overflow")
	}
	if wrap.Contains(math.MaxUint64-1, math.MaxUint64) {
		t.Fatalf("overflowing descriptor must not contain anything")
	}
}

func TestResourceAttributeString(t *testing.T) {
	a := AttrPresent | AttrTested | ResourceAttribute(0x80000000)
	if got := a.String(); got != "Present|Tested|0x80000000" {
		t.Fatalf("String() = %q", got)
	}
	back, err := ParseResourceAttribute(a.String())
	if err != nil {
		t.Fatalf("ParseResourceAttribute: %v", err)
	}
	if back != a {
		t.Fatalf("parsed 0x%x, want 0x%x", uint32(back), uint32(a))
	}
	if _, err := ParseResourceAttribute("Shiny"); err == nil {
		t.Fatalf("expected error for unknown attribute")
	}
}

func TestResourceTypeString(t *testing.T) {
	if ResourceSystemMemory.String() != "SystemMemory" {
		t.Fatalf("SystemMemory String() = %q", ResourceSystemMemory.String())
	}
	rt, err := ParseResourceType("MemoryReserved")
	if err != nil || rt != ResourceMemoryReserved {
		t.Fatalf("ParseResourceType = %v, %v", rt, err)
	}
	if ResourceType(42).String() != "ResourceType(0x2A)" {
		t.Fatalf("unknown type String() = %q", ResourceType(42).String())
	}
}
