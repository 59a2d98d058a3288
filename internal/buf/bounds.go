package buf

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would
// wrap past the top of the 64-bit address space.
func AddOverflowSafe(a, b uint64) (uint64, bool) {
	if a > math.MaxUint64-b {
		return 0, false
	}
	return a + b, true
}

// SubUnderflowSafe returns a - b, or ok = false when b > a.
func SubUnderflowSafe(a, b uint64) (uint64, bool) {
	if b > a {
		return 0, false
	}
	return a - b, true
}

// Overlaps reports whether the half-open ranges [aBase, aTop) and
// [bBase, bTop) share at least one byte. Empty ranges never overlap.
func Overlaps(aBase, aTop, bBase, bTop uint64) bool {
	if aBase >= aTop || bBase >= bTop {
		return false
	}
	return aBase < bTop && bBase < aTop
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n uint64) ([]byte, bool) {
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > uint64(len(b)) {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n uint64) bool {
	_, ok := Slice(b, off, n)
	return ok
}
