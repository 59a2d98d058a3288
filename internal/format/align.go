package format

// Align8 returns n aligned up to the next RecordAlignment boundary.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
func Align8(n int) int {
	return (n + RecordAlignmentMask) &^ RecordAlignmentMask
}

// IsAligned8 reports whether addr sits on a RecordAlignment boundary.
func IsAligned8(addr uint64) bool {
	return addr&RecordAlignmentMask == 0
}
