package main

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/joshuapare/hobkit/cmd/hobctl/logger"
	"github.com/joshuapare/hobkit/hob"
	"github.com/joshuapare/hobkit/hob/physmem"
	"github.com/joshuapare/hobkit/internal/mmfile"
)

// addrFlag is a uint64 flag that accepts 0x-prefixed input.
type addrFlag uint64

func (a *addrFlag) String() string { return hex(uint64(*a)) }
func (a *addrFlag) Type() string   { return "addr" }

func (a *addrFlag) Set(s string) error {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return errors.Newf("invalid address %q", s)
	}
	*a = addrFlag(v)
	return nil
}

// imageFlags locate a list image in the simulated address space.
type imageFlags struct {
	base addrFlag // physical address of the image's first byte
	list addrFlag // address of the list, defaults to base
}

func (f *imageFlags) register(cmd *cobra.Command) {
	cmd.Flags().Var(&f.base, "base", "Physical address the image starts at")
	cmd.Flags().Var(&f.list, "list", "Physical address of the first record (default: --base)")
}

func (f *imageFlags) anchor(cmd *cobra.Command) uint64 {
	if cmd.Flags().Changed("list") {
		return uint64(f.list)
	}
	return uint64(f.base)
}

// loadedImage is an image mapped copy-on-write into a fresh address space.
type loadedImage struct {
	file *mmfile.Image
	mem  *physmem.Map
	list *hob.List
}

func (li *loadedImage) Close() error {
	return li.file.Close()
}

func loadImage(path string, base, anchor uint64) (*loadedImage, error) {
	printVerbose("Mapping image: %s at %s\n", path, hex(base))
	f, err := mmfile.MapPrivate(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("image mapped", "path", path, "base", hex(base), "size", f.Len(), "list", hex(anchor))
	mem, err := physmem.New(physmem.Segment{Base: base, Data: f.Data})
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "map %s at %s", path, hex(base))
	}
	return &loadedImage{file: f, mem: mem, list: hob.Open(mem, anchor)}, nil
}
