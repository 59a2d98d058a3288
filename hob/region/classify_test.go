package region

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hobkit/hob"
	"github.com/joshuapare/hobkit/internal/format"
	"github.com/joshuapare/hobkit/internal/testutil"
)

func TestIsTestedMemory(t *testing.T) {
	tests := []struct {
		name string
		rt   format.ResourceType
		attr format.ResourceAttribute
		want bool
	}{
		{"tested", format.ResourceSystemMemory, TestedAttributes, true},
		{"tested with cacheability", format.ResourceSystemMemory, TestedAttributes | format.AttrWriteBackCacheable | format.AttrUncacheable, true},
		{"tested with ecc", format.ResourceSystemMemory, TestedAttributes | format.AttrSingleBitECC, true},
		{"tested with protectable", format.ResourceSystemMemory, TestedAttributes | format.AttrReadProtectable, true},
		{"untested", format.ResourceSystemMemory, format.AttrPresent | format.AttrInitialized, false},
		{"read protected", format.ResourceSystemMemory, TestedAttributes | format.AttrReadProtected, false},
		{"read-only protected", format.ResourceSystemMemory, TestedAttributes | format.AttrReadOnlyProtected, false},
		{"persistent", format.ResourceSystemMemory, TestedAttributes | format.AttrPersistent, false},
		{"64-bit io", format.ResourceSystemMemory, TestedAttributes | format.Attr64BitIO, false},
		{"reserved memory", format.ResourceMemoryReserved, TestedAttributes, false},
		{"mmio", format.ResourceMemoryMappedIO, TestedAttributes, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd := format.ResourceDescriptor{ResourceType: tt.rt, Attribute: tt.attr, ResourceLength: 0x1000}
			require.Equal(t, tt.want, IsTestedMemory(rd))
		})
	}
}

func TestQualify(t *testing.T) {
	mem := testutil.Memory(t, 0x1000,
		testutil.Handoff(0, 0, 0, 0),
		testutil.TestedMemory(0x0, 0x1000),
		testutil.TestedMemory(0xFFFFFFFFFFFFF000, 0x2000), // wraps
		testutil.TestedMemory(0x5000, 0),                  // empty
	)
	it := hob.Open(mem, 0x1000).Records()

	var got []Descriptor
	for {
		rec, err := it.Next()
		require.NoError(t, err)
		if rec.Type() == format.TypeEndOfList {
			break
		}
		if d, ok := Qualify(rec); ok {
			got = append(got, d)
		}
	}
	require.Len(t, got, 1)
	require.Equal(t, uint64(0x1000+format.HandoffSize), got[0].Addr)
	require.Equal(t, uint64(0x1000), got[0].Top())
}
