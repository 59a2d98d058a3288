package payload

// Phase is a step of BuildHobs.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseScanning
	PhaseRelocating
	PhaseExtending
	PhaseInitializing
	PhaseMigrating
	PhaseDone
	PhaseFailed
)

var phaseNames = [...]string{
	PhaseStart:        "start",
	PhaseScanning:     "scanning",
	PhaseRelocating:   "relocating",
	PhaseExtending:    "extending",
	PhaseInitializing: "initializing",
	PhaseMigrating:    "migrating",
	PhaseDone:         "done",
	PhaseFailed:       "failed",
}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}
