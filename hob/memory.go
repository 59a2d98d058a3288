package hob

// Memory resolves physical addresses to bytes. *physmem.Map implements it.
type Memory interface {
	// Bytes returns the n bytes at addr, or an error when any of them is
	// not backed.
	Bytes(addr, n uint64) ([]byte, error)
}

// WritableMemory additionally hands out storage for a new list.
type WritableMemory interface {
	Memory
	// Reserve returns writable bytes for [addr, addr+n).
	Reserve(addr, n uint64) ([]byte, error)
}
