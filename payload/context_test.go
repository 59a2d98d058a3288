package payload

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hobkit/hob/region"
	"github.com/joshuapare/hobkit/internal/config"
	"github.com/joshuapare/hobkit/internal/format"
	"github.com/joshuapare/hobkit/internal/testutil"
)

const bootParam = 0x1000

// recordingPlatform logs the hooks in call order.
type recordingPlatform struct {
	calls []string
	err   error
}

func (p *recordingPlatform) RunConstructors() error {
	p.calls = append(p.calls, "constructors")
	return p.err
}

func (p *recordingPlatform) InitializeFloatingPoint() {
	p.calls = append(p.calls, "fpu")
}

func (p *recordingPlatform) MaskLegacyInterrupts() {
	p.calls = append(p.calls, "mask")
}

func relocatableImage() [][]byte {
	return [][]byte{
		testutil.Handoff(0x1000, 0x2000, 0x1000, 0x1800),
		testutil.TestedMemory(0x1000, 0x1100),
		testutil.TestedMemory(0x100000, 0x100000),
		testutil.Raw(format.TypeGUIDExtension, bytes.Repeat([]byte{0xAB}, 20)),
	}
}

func TestBuildHobs_InstallsOnce(t *testing.T) {
	mem := testutil.Memory(t, bootParam, relocatableImage()...)
	c := New(mem, WithMinimalSize(0x200))
	c.Enter(bootParam)
	require.Equal(t, uint64(bootParam), c.HobList().Base())

	rep, err := c.BuildHobs(bootParam)
	require.NoError(t, err)
	require.Equal(t, PhaseDone, rep.Phase)
	require.Equal(t, region.PlacementRelocatedElsewhere, rep.Selection.Placement)
	require.Equal(t, uint64(0x1FFE00), rep.Base)
	require.Equal(t, 3, rep.Stats.Copied)
	require.Equal(t, 1, rep.Stats.SkippedHandoff)
	require.True(t, c.Built())
	require.Equal(t, rep.Base, c.HobList().Base())

	_, err = c.BuildHobs(bootParam)
	require.ErrorIs(t, err, ErrAlreadyBuilt)
	require.Equal(t, rep.Base, c.HobList().Base())

	// Enter after the build keeps the migrated list
	c.Enter(bootParam)
	require.Equal(t, rep.Base, c.HobList().Base())
}

func TestBuildHobs_FailureInstallsNothing(t *testing.T) {
	mem := testutil.Memory(t, bootParam,
		testutil.Handoff(0x1000, 0x2000, 0x1000, 0x1800),
		testutil.TestedMemory(0x1000, 0x1100),
	)
	c := New(mem, WithMinimalSize(0x200))
	c.Enter(bootParam)

	rep, err := c.BuildHobs(bootParam)
	require.ErrorIs(t, err, region.ErrRegionNotFound)
	require.Equal(t, PhaseFailed, rep.Phase)
	require.Equal(t, PhaseFailed, c.Phase())
	require.False(t, c.Built())
	require.Equal(t, uint64(bootParam), c.HobList().Base())

	// a failed build may be retried
	_, err = c.BuildHobs(bootParam)
	require.ErrorIs(t, err, region.ErrRegionNotFound)
}

func TestBuildHobs_MissingHandoff(t *testing.T) {
	mem := testutil.Memory(t, bootParam, testutil.TestedMemory(0x100000, 0x100000))
	c := New(mem)

	_, err := c.BuildHobs(bootParam)
	require.Error(t, err)
	require.False(t, c.Built())
}

func TestFirstHob_BeforeEnter(t *testing.T) {
	c := New(testutil.Memory(t, bootParam))
	require.Nil(t, c.HobList())
	_, err := c.FirstHob(format.TypeHandoff)
	require.ErrorIs(t, err, ErrNoList)
}

func TestEntry_SequenceAndHandoff(t *testing.T) {
	mem := testutil.Memory(t, bootParam, relocatableImage()...)
	p := &recordingPlatform{}
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c := New(mem, WithPlatform(p), WithLogger(logger), WithMinimalSize(0x200))
	h, err := c.Entry(bootParam)
	require.NoError(t, err)
	require.Equal(t, []string{"constructors", "fpu", "mask"}, p.calls)

	require.Equal(t, uint64(0x1FFE00), h.MemoryBottom)
	require.Equal(t, uint64(0x200000), h.MemoryTop)
	require.Equal(t, uint64(0x200000), h.FreeMemoryTop)
	require.Equal(t, uint32(format.HandoffTableVersion), h.Version)

	out := logs.String()
	require.Contains(t, out, "Entering Universal Payload...")
	for _, ph := range []Phase{PhaseStart, PhaseScanning, PhaseRelocating, PhaseInitializing, PhaseMigrating, PhaseDone} {
		require.Contains(t, out, "phase="+ph.String())
	}
	require.NotContains(t, out, "phase="+PhaseExtending.String())
}

func TestEntry_FailureStillMasksInterrupts(t *testing.T) {
	mem := testutil.Memory(t, bootParam,
		testutil.Handoff(0x1000, 0x2000, 0x1000, 0x1800),
	)
	p := &recordingPlatform{}
	c := New(mem, WithPlatform(p), WithMinimalSize(0x200))

	_, err := c.Entry(bootParam)
	require.ErrorIs(t, err, region.ErrRegionNotFound)
	require.Equal(t, []string{"constructors", "fpu", "mask"}, p.calls)
	require.Equal(t, uint64(bootParam), c.HobList().Base())
}

func TestEntry_ConstructorFailure(t *testing.T) {
	mem := testutil.Memory(t, bootParam, relocatableImage()...)
	boom := errors.New("boom")
	p := &recordingPlatform{err: boom}
	c := New(mem, WithPlatform(p))

	_, err := c.Entry(bootParam)
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"constructors"}, p.calls)
	require.False(t, c.Built())
}

func TestEntry_InPlaceExtension(t *testing.T) {
	mem := testutil.Memory(t, bootParam,
		testutil.Handoff(0x1000, 0x2000, 0x1000, 0x1800),
		testutil.TestedMemory(0x0, 0x10000),
	)
	c := New(mem, WithMinimalSize(0x200))

	h, err := c.Entry(bootParam)
	require.NoError(t, err)
	require.Equal(t, PhaseDone, c.Phase())
	require.Equal(t, uint64(0x1800), h.MemoryBottom)
	require.Equal(t, uint64(0x2200), h.MemoryTop)
	require.Equal(t, uint64(0x2000), c.HobList().Base())
}

func TestWithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.RegionSize = 0x1000
	cfg.AddressCeiling = 0x80000000
	c := New(nil, WithConfig(cfg))
	require.Equal(t, uint64(0x1000), c.selector.MinimalSize)
	require.Equal(t, uint64(0x80000000), c.selector.Ceiling)
}

func TestPhaseString(t *testing.T) {
	require.Equal(t, "extending", PhaseExtending.String())
	require.Equal(t, "unknown", Phase(99).String())
}

func TestNew_DiscardsByDefault(t *testing.T) {
	c := New(nil)
	require.False(t, c.log.Enabled(context.Background(), slog.LevelError))

	// a nil logger keeps the default
	c = New(nil, WithLogger(nil))
	require.False(t, c.log.Enabled(context.Background(), slog.LevelError))
}
