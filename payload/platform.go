package payload

// Platform is the machine-specific work the entry point sequences around
// the HOB migration.
type Platform interface {
	// RunConstructors runs library constructors before anything else.
	RunConstructors() error
	// InitializeFloatingPoint puts the FPU into the state firmware
	// interfaces expect.
	InitializeFloatingPoint()
	// MaskLegacyInterrupts masks every source on the legacy interrupt
	// controllers.
	MaskLegacyInterrupts()
}

// NopPlatform does nothing. It is the default.
type NopPlatform struct{}

func (NopPlatform) RunConstructors() error   { return nil }
func (NopPlatform) InitializeFloatingPoint() {}
func (NopPlatform) MaskLegacyInterrupts()    {}
