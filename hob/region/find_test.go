package region

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hobkit/hob"
	"github.com/joshuapare/hobkit/internal/format"
	"github.com/joshuapare/hobkit/internal/testutil"
)

const listBase = 0x1000

func listOf(t *testing.T, records ...[]byte) *hob.List {
	t.Helper()
	return hob.Open(testutil.Memory(t, listBase, records...), listBase)
}

// descAddr returns the address of the i-th record when every record before
// it is a resource descriptor and the list starts with a hand-off record.
func descAddr(i int) uint64 {
	return listBase + format.HandoffSize + uint64(i)*format.ResourceDescriptorSize
}

func TestFindContaining_FirstMatch(t *testing.T) {
	l := listOf(t,
		testutil.Handoff(0x1000, 0x2000, 0x1000, 0x1800),
		testutil.TestedMemory(0x0, 0x800),
		testutil.Resource(format.ResourceMemoryReserved, TestedAttributes, 0x0, 0x10000),
		testutil.TestedMemory(0x0, 0x10000),
		testutil.TestedMemory(0x1000, 0x1000),
	)

	d, ok, err := FindContaining(l, 0x1000, 0x2000)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, descAddr(2), d.Addr)
	require.Equal(t, uint64(0x10000), d.ResourceLength)
}

func TestFindContaining_BoundsAreHalfOpen(t *testing.T) {
	l := listOf(t,
		testutil.Handoff(0, 0, 0, 0),
		testutil.TestedMemory(0x1000, 0x1000),
	)

	_, ok, err := FindContaining(l, 0x1000, 0x2000)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = FindContaining(l, 0x1000, 0x2001)
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = FindContaining(l, 0xFFF, 0x1800)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFindHighestBelowLimit(t *testing.T) {
	l := listOf(t,
		testutil.Handoff(0, 0, 0, 0),
		testutil.TestedMemory(0x10000, 0x10000),
		testutil.TestedMemory(0xFFF00000, 0x100000),    // ends exactly at 4 GiB
		testutil.TestedMemory(0x100000000, 0x10000000), // above the ceiling
		testutil.TestedMemory(0xFFE00000, 0x100),       // too small
		testutil.Resource(format.ResourceSystemMemory, format.AttrPresent, 0xF0000000, 0x1000000),
	)

	d, ok, err := FindHighestBelowLimit(l, 0x1000, nil)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(0xFFF00000), d.PhysicalStart)

	next, ok, err := FindHighestBelowLimit(l, 0x1000, &d)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(0x10000), next.PhysicalStart)

	_, ok, err = FindHighestBelowLimit(l, 0x1000000, nil)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFindHighestBelow_TieKeepsFirst(t *testing.T) {
	l := listOf(t,
		testutil.Handoff(0, 0, 0, 0),
		testutil.TestedMemory(0x20000, 0x1000),
		testutil.TestedMemory(0x20000, 0x2000),
	)
	d, ok, err := FindHighestBelowLimit(l, 0x100, nil)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, descAddr(0), d.Addr)
}

func TestFind_ScansAreRepeatable(t *testing.T) {
	l := listOf(t,
		testutil.Handoff(0x1000, 0x2000, 0x1000, 0x1800),
		testutil.TestedMemory(0x0, 0x10000),
		testutil.TestedMemory(0x40000, 0x10000),
	)
	a1, ok1, err := FindContaining(l, 0x1000, 0x2000)
	require.NoError(t, err)
	a2, ok2, err := FindContaining(l, 0x1000, 0x2000)
	require.NoError(t, err)
	require.Equal(t, a1, a2)
	require.Equal(t, ok1, ok2)

	b1, _, err := FindHighestBelowLimit(l, 0x100, nil)
	require.NoError(t, err)
	b2, _, err := FindHighestBelowLimit(l, 0x100, nil)
	require.NoError(t, err)
	require.Equal(t, b1, b2)
}

type span struct{ start, length uint64 }

// randomSpans returns n non-overlapping page-aligned spans below 4 GiB in
// shuffled order.
func randomSpans(r *rand.Rand, n int) []span {
	slots := r.Perm(1 << 12)[:n]
	out := make([]span, n)
	for i, s := range slots {
		// 1 MiB slots, each span at most half a slot
		out[i] = span{start: uint64(s) << 20, length: uint64(r.IntN(128)+1) << 12}
	}
	return out
}

func spansList(t *testing.T, spans []span) *hob.List {
	recs := [][]byte{testutil.Handoff(0, 0, 0, 0)}
	for _, s := range spans {
		recs = append(recs, testutil.TestedMemory(s.start, s.length))
	}
	return listOf(t, recs...)
}

func TestFindContaining_Property(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 50; round++ {
		spans := randomSpans(r, 1+r.IntN(16))
		l := spansList(t, spans)

		for i, s := range spans {
			lo := s.start + uint64(r.Int64N(int64(s.length)))
			hi := lo + uint64(r.Int64N(int64(s.start+s.length-lo)+1))
			d, ok, err := FindContaining(l, lo, hi)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, descAddr(i), d.Addr)
		}

		// a range straddling a span's end is never contained
		s := spans[0]
		_, ok, err := FindContaining(l, s.start, s.start+s.length+1)
		require.NoError(t, err)
		require.False(t, ok)
	}
}

func TestFindHighestBelowLimit_Property(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for round := 0; round < 50; round++ {
		spans := randomSpans(r, 2+r.IntN(16))
		minSize := uint64(r.IntN(64)+1) << 12

		var eligible []span
		for _, s := range spans {
			if s.length >= minSize {
				eligible = append(eligible, s)
			}
		}
		sort.Slice(eligible, func(i, j int) bool { return eligible[i].start > eligible[j].start })

		l := spansList(t, spans)
		d, ok, err := FindHighestBelowLimit(l, minSize, nil)
		require.NoError(t, err)
		if len(eligible) == 0 {
			require.False(t, ok)
			continue
		}
		require.True(t, ok)
		require.Equal(t, eligible[0].start, d.PhysicalStart)

		// drop the winner and search again
		var rest []span
		for _, s := range spans {
			if s.start != d.PhysicalStart {
				rest = append(rest, s)
			}
		}
		d2, ok, err := FindHighestBelowLimit(spansList(t, rest), minSize, nil)
		require.NoError(t, err)
		if len(eligible) == 1 {
			require.False(t, ok)
			continue
		}
		require.True(t, ok)
		require.Equal(t, eligible[1].start, d2.PhysicalStart)
	}
}
