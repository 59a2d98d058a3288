package hob

import "github.com/cockroachdb/errors"

var (
	// ErrNotFound indicates the list holds no record of the requested type.
	ErrNotFound = errors.New("hob: record not found")

	// ErrOutOfResources indicates the list's free range cannot hold another record.
	ErrOutOfResources = errors.New("hob: free memory exhausted")

	// ErrBadRegion indicates region bounds that cannot host a list.
	ErrBadRegion = errors.New("hob: invalid region")

	// ErrCorrupt indicates a record whose length walks the list off the
	// address space or into unmapped memory.
	ErrCorrupt = errors.New("hob: corrupt list")
)
