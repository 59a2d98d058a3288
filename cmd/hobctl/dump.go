package main

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/hobkit/hob"
	"github.com/joshuapare/hobkit/internal/format"
)

var dumpImage imageFlags

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <image>",
		Short: "List the records of a HOB list image",
		Long: `The dump command walks the list stored in an image file and prints one
line per record, decoding hand-off, resource descriptor and GUID extension
records.

Example:
  hobctl dump hob.bin --base 0x7F000000
  hobctl dump hob.bin --base 0x7F000000 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0], uint64(dumpImage.base), dumpImage.anchor(cmd))
		},
	}
	dumpImage.register(cmd)
	return cmd
}

// dumpRecord is the JSON form of one record.
type dumpRecord struct {
	Address string            `json:"address"`
	Type    string            `json:"type"`
	Length  uint16            `json:"length"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func describe(rec hob.Record) (dumpRecord, error) {
	out := dumpRecord{
		Address: hex(rec.Addr),
		Type:    rec.Type().String(),
		Length:  rec.Header.Length,
	}
	p, err := rec.Decode()
	if err != nil {
		return out, err
	}
	switch v := p.(type) {
	case format.Handoff:
		out.Fields = map[string]string{
			"version":            hex(uint64(v.Version)),
			"boot_mode":          hex(uint64(v.BootMode)),
			"memory_bottom":      hex(v.MemoryBottom),
			"memory_top":         hex(v.MemoryTop),
			"free_memory_bottom": hex(v.FreeMemoryBottom),
			"free_memory_top":    hex(v.FreeMemoryTop),
			"end_of_hob_list":    hex(v.EndOfHobList),
		}
	case format.ResourceDescriptor:
		out.Fields = map[string]string{
			"resource_type": v.ResourceType.String(),
			"attributes":    v.Attribute.String(),
			"start":         hex(v.PhysicalStart),
			"length":        hex(v.ResourceLength),
			"size":          humanize.IBytes(v.ResourceLength),
		}
		if !v.Owner.IsZero() {
			out.Fields["owner"] = v.Owner.String()
		}
	case format.GUIDExtension:
		out.Fields = map[string]string{
			"name":      v.Name.String(),
			"data_size": humanize.IBytes(uint64(len(v.Data))),
		}
	}
	return out, nil
}

func runDump(path string, base, anchor uint64) error {
	img, err := loadImage(path, base, anchor)
	if err != nil {
		return err
	}
	defer img.Close()

	var recs []dumpRecord
	it := img.list.Records()
	for {
		rec, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		d, err := describe(rec)
		if err != nil {
			return err
		}
		recs = append(recs, d)
	}

	if jsonOut {
		return printJSON(recs)
	}

	// the count covers every record before the end marker, hand-off included
	n, err := img.list.Len()
	if err != nil {
		return err
	}
	printInfo("HOB list at %s: %d records\n", hex(anchor), n)
	for _, r := range recs {
		printInfo("  %-18s %-22s len=%d\n", r.Address, r.Type, r.Length)
		for _, k := range sortedKeys(r.Fields) {
			printInfo("      %-20s %s\n", k, r.Fields[k])
		}
	}
	return nil
}
