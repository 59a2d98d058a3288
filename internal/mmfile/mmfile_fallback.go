//go:build !unix

package mmfile

import (
	"os"

	"github.com/cockroachdb/errors"
)

// Map reads the whole file where mmap is unavailable.
func Map(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "mmfile: read")
	}
	return &Image{Data: data, release: noRelease}, nil
}

// MapPrivate is Map: the bytes read are already a private copy.
func MapPrivate(path string) (*Image, error) {
	return Map(path)
}
