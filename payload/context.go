package payload

import (
	"log/slog"
	"strconv"

	"github.com/c2h5oh/datasize"
	"github.com/cockroachdb/errors"

	"github.com/joshuapare/hobkit/hob"
	"github.com/joshuapare/hobkit/hob/migrate"
	"github.com/joshuapare/hobkit/hob/region"
	"github.com/joshuapare/hobkit/internal/format"
)

var (
	// ErrAlreadyBuilt indicates BuildHobs already installed a list.
	ErrAlreadyBuilt = errors.New("payload: hob list already built")

	// ErrNoList indicates no list has been entered yet.
	ErrNoList = errors.New("payload: no hob list")
)

// Report describes what BuildHobs did.
type Report struct {
	// Phase is the last phase reached: PhaseDone or PhaseFailed on return.
	Phase     Phase
	Selection region.Selection
	Stats     migrate.Stats
	// Base is the address of the installed list.
	Base uint64
}

// Context holds the current HOB list of a payload stage.
type Context struct {
	mem      hob.WritableMemory
	log      *slog.Logger
	platform Platform
	selector region.Selector

	list  *hob.List
	built bool
	phase Phase
}

// New returns a Context over mem with no current list.
func New(mem hob.WritableMemory, opts ...Option) *Context {
	c := &Context{
		mem:      mem,
		log:      discardLogger(),
		platform: NopPlatform{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enter makes the boot loader's list at bootParam the current list. It has
// no effect once BuildHobs has installed a list.
func (c *Context) Enter(bootParam uint64) {
	if c.built {
		return
	}
	c.list = hob.Open(c.mem, bootParam)
}

// HobList returns the current list, or nil before Enter.
func (c *Context) HobList() *hob.List {
	return c.list
}

// Built reports whether BuildHobs installed a list.
func (c *Context) Built() bool {
	return c.built
}

// Phase returns the phase of the last BuildHobs call.
func (c *Context) Phase() Phase {
	return c.phase
}

// FirstHob returns the first record of type t in the current list.
func (c *Context) FirstHob(t format.HobType) (hob.Record, error) {
	if c.list == nil {
		return hob.Record{}, ErrNoList
	}
	return c.list.First(t)
}

func (c *Context) enter(p Phase, attrs ...any) {
	c.phase = p
	c.log.Debug("hob phase", append([]any{"phase", p.String()}, attrs...)...)
}

// BuildHobs migrates the boot loader's list at bootParam into memory chosen
// by the selector and installs the result as the current list. It succeeds
// at most once; on failure the current list is left as it was.
func (c *Context) BuildHobs(bootParam uint64) (Report, error) {
	if c.built {
		return Report{Phase: c.phase, Base: c.list.Base()}, ErrAlreadyBuilt
	}

	rep, err := c.build(bootParam)
	if err != nil {
		c.enter(PhaseFailed, "error", err)
		rep.Phase = PhaseFailed
		c.log.Error("build hob list failed", "boot_param", hexAddr(bootParam), "error", err)
		return rep, err
	}

	c.list = hob.Open(c.mem, rep.Base)
	c.built = true
	c.enter(PhaseDone, "base", hexAddr(rep.Base))
	rep.Phase = PhaseDone
	return rep, nil
}

func (c *Context) build(bootParam uint64) (Report, error) {
	var rep Report
	c.enter(PhaseStart, "boot_param", hexAddr(bootParam))
	old := hob.Open(c.mem, bootParam)

	c.enter(PhaseScanning)
	h, err := old.Handoff()
	if err != nil {
		return rep, errors.Wrap(err, "payload: read hand-off record")
	}
	sel, err := c.selector.Select(old, h)
	if err != nil {
		return rep, err
	}
	rep.Selection = sel

	if sel.Placement.InPlace() {
		c.enter(PhaseExtending, "placement", sel.Placement.String())
	} else {
		c.enter(PhaseRelocating, "placement", sel.Placement.String())
	}
	c.log.Info("hob region selected",
		"placement", sel.Placement.String(),
		"region", sel.Region.String(),
		"size", datasize.ByteSize(sel.Region.FreeSize()).HumanReadable(),
		"descriptor", hexAddr(sel.Descriptor.Addr))

	c.enter(PhaseInitializing, "free_bottom", hexAddr(sel.Region.FreeMemoryBottom))
	if err := sel.Region.Validate(); err != nil {
		return rep, err
	}

	c.enter(PhaseMigrating)
	nl, st, err := migrate.Migrate(c.mem, old, sel.Region)
	if err != nil {
		return rep, err
	}
	rep.Stats = st
	rep.Base = nl.Base()
	c.log.Info("hob list migrated",
		"records", st.Copied,
		"realigned", st.Realigned,
		"used", datasize.ByteSize(st.Used).HumanReadable(),
		"base", hexAddr(rep.Base))
	return rep, nil
}

// Entry is the payload entry sequence: constructors, FPU setup, HOB
// migration and legacy interrupt masking. It returns the hand-off record of
// the new list.
func (c *Context) Entry(bootParam uint64) (format.Handoff, error) {
	c.Enter(bootParam)

	if err := c.platform.RunConstructors(); err != nil {
		return format.Handoff{}, errors.Wrap(err, "payload: constructors")
	}

	c.log.Info("Entering Universal Payload...", "uintptr_size", strconv.IntSize/8)

	c.platform.InitializeFloatingPoint()

	_, err := c.BuildHobs(bootParam)

	c.platform.MaskLegacyInterrupts()

	if err != nil {
		return format.Handoff{}, err
	}

	rec, err := c.FirstHob(format.TypeHandoff)
	if err != nil {
		return format.Handoff{}, err
	}
	return format.ParseHandoff(rec.Raw)
}

func hexAddr(v uint64) string {
	return "0x" + strconv.FormatUint(v, 16)
}
