package main

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/hobkit/hob/region"
)

var (
	selectImage imageFlags
	selectSize  string
)

func init() {
	rootCmd.AddCommand(newSelectCmd())
}

func newSelectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select <image>",
		Short: "Show the region a payload would move the list to",
		Long: `The select command reads the hand-off record and resource descriptors of
a list image and reports which memory the list would be migrated into.
Nothing is written.

Example:
  hobctl select hob.bin --base 0x7F000000
  hobctl select hob.bin --base 0x7F000000 --size 32MiB`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applySize(selectSize); err != nil {
				return err
			}
			return runSelect(args[0], uint64(selectImage.base), selectImage.anchor(cmd))
		},
	}
	selectImage.register(cmd)
	cmd.Flags().StringVar(&selectSize, "size", "", "Region size (default: config region_size)")
	return cmd
}

// selectionJSON is the JSON form of a region.Selection.
type selectionJSON struct {
	Placement        string `json:"placement"`
	MemoryBottom     string `json:"memory_bottom"`
	MemoryTop        string `json:"memory_top"`
	FreeMemoryBottom string `json:"free_memory_bottom"`
	FreeMemoryTop    string `json:"free_memory_top"`
	Descriptor       string `json:"descriptor"`
	Containing       string `json:"containing,omitempty"`
}

func selectionOf(sel region.Selection) selectionJSON {
	out := selectionJSON{
		Placement:        sel.Placement.String(),
		MemoryBottom:     hex(sel.Region.MemoryBottom),
		MemoryTop:        hex(sel.Region.MemoryTop),
		FreeMemoryBottom: hex(sel.Region.FreeMemoryBottom),
		FreeMemoryTop:    hex(sel.Region.FreeMemoryTop),
		Descriptor:       hex(sel.Descriptor.Addr),
	}
	if sel.Containing != nil {
		out.Containing = hex(sel.Containing.Addr)
	}
	return out
}

func selector() region.Selector {
	return region.Selector{
		MinimalSize: uint64(cfg.RegionSize),
		Ceiling:     uint64(cfg.AddressCeiling),
	}
}

func runSelect(path string, base, anchor uint64) error {
	img, err := loadImage(path, base, anchor)
	if err != nil {
		return err
	}
	defer img.Close()

	h, err := img.list.Handoff()
	if err != nil {
		return err
	}
	sel, err := selector().Select(img.list, h)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(selectionOf(sel))
	}
	printSelection(sel)
	return nil
}

func printSelection(sel region.Selection) {
	d := sel.Descriptor
	printInfo("Placement: %s\n", sel.Placement.String())
	printInfo("  Memory: [%s, %s)\n", hex(sel.Region.MemoryBottom), hex(sel.Region.MemoryTop))
	printInfo("  Free:   [%s, %s) %s\n", hex(sel.Region.FreeMemoryBottom), hex(sel.Region.FreeMemoryTop),
		humanize.IBytes(sel.Region.FreeSize()))
	printInfo("  From descriptor at %s: [%s, %s) %s\n", hex(d.Addr), hex(d.PhysicalStart), hex(d.Top()),
		humanize.IBytes(d.ResourceLength))
}
