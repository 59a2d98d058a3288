// Package mmfile maps HOB list images into memory.
package mmfile

import "github.com/cockroachdb/errors"

// ErrTooLarge indicates a file that does not fit the address space.
var ErrTooLarge = errors.New("mmfile: file too large to map")

// Image is a mapped file. Data stays valid until Close.
type Image struct {
	Data    []byte
	release func() error
}

// Close releases the mapping. Calling it more than once is a no-op.
func (im *Image) Close() error {
	if im.release == nil {
		return nil
	}
	err := im.release()
	im.release = nil
	im.Data = nil
	return err
}

// Len returns the mapped length.
func (im *Image) Len() int {
	return len(im.Data)
}

func noRelease() error { return nil }
