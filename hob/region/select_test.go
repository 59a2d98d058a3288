package region

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hobkit/hob"
	"github.com/joshuapare/hobkit/internal/format"
	"github.com/joshuapare/hobkit/internal/testutil"
)

func TestSelector_Branches(t *testing.T) {
	const size = 0x200
	phit := testutil.Handoff(0x1000, 0x2000, 0x1000, 0x1800)

	tests := []struct {
		name      string
		records   [][]byte
		want      hob.Region
		placement Placement
	}{
		{
			name: "relocated when nothing contains the list",
			records: [][]byte{
				phit,
				testutil.TestedMemory(0x3000, 0x1000),
				testutil.Resource(format.ResourceMemoryReserved, TestedAttributes, 0x200000, 0x100000),
				testutil.TestedMemory(0x100000000, 0x100000),
				testutil.Resource(format.ResourceSystemMemory, format.AttrPresent|format.AttrInitialized, 0x8000, 0x1000),
			},
			want:      hob.Region{MemoryBottom: 0x3E00, MemoryTop: 0x4000, FreeMemoryBottom: 0x3E00, FreeMemoryTop: 0x4000},
			placement: PlacementRelocated,
		},
		{
			name: "above the old list",
			records: [][]byte{
				phit,
				testutil.TestedMemory(0x0, 0x10000),
			},
			want:      hob.Region{MemoryBottom: 0x1800, MemoryTop: 0x2200, FreeMemoryBottom: 0x2000, FreeMemoryTop: 0x2200},
			placement: PlacementAbove,
		},
		{
			name: "below the old list",
			records: [][]byte{
				phit,
				testutil.TestedMemory(0x0, 0x2100),
			},
			want:      hob.Region{MemoryBottom: 0xE00, MemoryTop: 0x2000, FreeMemoryBottom: 0xE00, FreeMemoryTop: 0x1000},
			placement: PlacementBelow,
		},
		{
			name: "relocated elsewhere when the containing range is full",
			records: [][]byte{
				phit,
				testutil.TestedMemory(0x1000, 0x1100),
				testutil.TestedMemory(0x10000, 0x10000),
				testutil.TestedMemory(0x100000, 0x100000),
			},
			want:      hob.Region{MemoryBottom: 0x1FFE00, MemoryTop: 0x200000, FreeMemoryBottom: 0x1FFE00, FreeMemoryTop: 0x200000},
			placement: PlacementRelocatedElsewhere,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := listOf(t, tt.records...)
			h, err := l.Handoff()
			require.NoError(t, err)

			sel, err := Select(l, h, size)
			require.NoError(t, err)
			require.Equal(t, tt.placement, sel.Placement)
			require.Equal(t, tt.want, sel.Region)
			require.Equal(t, tt.placement.InPlace(), sel.Containing != nil && sel.Descriptor.Addr == sel.Containing.Addr)
		})
	}
}

func TestSelector_AbovePreferredOverBelow(t *testing.T) {
	l := listOf(t,
		testutil.Handoff(0x8000, 0x9000, 0x8000, 0x8800),
		testutil.TestedMemory(0x0, 0x20000),
	)
	h, err := l.Handoff()
	require.NoError(t, err)

	sel, err := Select(l, h, 0x1000)
	require.NoError(t, err)
	require.Equal(t, PlacementAbove, sel.Placement)
}

func TestSelector_RegionNotFound(t *testing.T) {
	tests := []struct {
		name    string
		records [][]byte
	}{
		{
			name: "containing descriptor too small, nothing else",
			records: [][]byte{
				testutil.Handoff(0x1000, 0x2000, 0x1000, 0x1800),
				testutil.TestedMemory(0x1000, 0x1000),
				testutil.TestedMemory(0x100000000, 0x100000),
			},
		},
		{
			name: "no containing descriptor and only small ones",
			records: [][]byte{
				testutil.Handoff(0x1000, 0x2000, 0x1000, 0x1800),
				testutil.TestedMemory(0x4000, 0x100),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := listOf(t, tt.records...)
			h, err := l.Handoff()
			require.NoError(t, err)

			_, err = Select(l, h, 0x2000)
			require.ErrorIs(t, err, ErrRegionNotFound)
			require.NotEmpty(t, errors.GetAllHints(err))
		})
	}
}

func TestSelector_CeilingAndDefaults(t *testing.T) {
	l := listOf(t,
		testutil.Handoff(0x1000, 0x2000, 0x1000, 0x1800),
		testutil.TestedMemory(0x10000000, 0x10000000),
		testutil.TestedMemory(0x80000000, 0x10000000),
	)
	h, err := l.Handoff()
	require.NoError(t, err)

	sel, err := Selector{}.Select(l, h)
	require.NoError(t, err)
	require.Equal(t, uint64(0x90000000), sel.Region.MemoryTop)
	require.Equal(t, uint64(0x90000000)-DefaultMinimalSize, sel.Region.MemoryBottom)

	sel, err = Selector{MinimalSize: 0x1000, Ceiling: 0x40000000}.Select(l, h)
	require.NoError(t, err)
	require.Equal(t, uint64(0x20000000), sel.Region.MemoryTop)
}

func TestPlacementString(t *testing.T) {
	require.Equal(t, "above", PlacementAbove.String())
	require.Equal(t, "relocated-elsewhere", PlacementRelocatedElsewhere.String())
	require.Equal(t, "unknown", Placement(0).String())
}
