//go:build unix

package mmfile

import (
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// Map maps the file at path read-only.
func Map(path string) (*Image, error) {
	return mapFile(path, unix.PROT_READ, unix.MAP_SHARED)
}

// MapPrivate maps the file at path copy-on-write: the caller may modify the
// bytes and the file is left untouched.
func MapPrivate(path string) (*Image, error) {
	return mapFile(path, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE)
}

func mapFile(path string, prot, flags int) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "mmfile: open")
	}
	defer f.Close() // the mapping outlives the descriptor

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "mmfile: stat")
	}
	size := info.Size()
	if size == 0 {
		return &Image{Data: []byte{}, release: noRelease}, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, errors.Wrapf(ErrTooLarge, "%s is %d bytes", path, size)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), prot, flags)
	if err != nil {
		return nil, errors.Wrapf(err, "mmfile: mmap %s", path)
	}
	return &Image{
		Data: data,
		release: func() error {
			err := unix.Munmap(data)
			if errors.Is(err, unix.EINVAL) {
				return nil
			}
			return err
		},
	}, nil
}
