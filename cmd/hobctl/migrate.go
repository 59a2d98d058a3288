package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/hobkit/cmd/hobctl/logger"
	"github.com/joshuapare/hobkit/internal/config"
	"github.com/joshuapare/hobkit/payload"
)

var (
	migrateImage imageFlags
	migrateOut   string
	migrateSize  string
)

func init() {
	rootCmd.AddCommand(newMigrateCmd())
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate <image>",
		Short: "Migrate a HOB list and write the new list",
		Long: `The migrate command runs the payload HOB migration against a list image:
it selects a region, builds a fresh list there and copies every record but
the hand-off record. The new list, from its hand-off record through the end
marker, is written to --out. The input image is never modified.

Example:
  hobctl migrate hob.bin --base 0x7F000000 --out new.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if migrateOut == "" {
				return errors.New("--out is required")
			}
			if err := applySize(migrateSize); err != nil {
				return err
			}
			return runMigrate(args[0], uint64(migrateImage.base), migrateImage.anchor(cmd), migrateOut)
		},
	}
	migrateImage.register(cmd)
	cmd.Flags().StringVarP(&migrateOut, "out", "o", "", "Output file for the new list")
	cmd.Flags().StringVar(&migrateSize, "size", "", "Region size (default: config region_size)")
	return cmd
}

// migrateJSON is the JSON form of a migration result.
type migrateJSON struct {
	Base      string        `json:"base"`
	Copied    int           `json:"copied"`
	Skipped   int           `json:"skipped_handoff"`
	Realigned int           `json:"realigned"`
	Used      uint64        `json:"used"`
	Out       string        `json:"out"`
	Selection selectionJSON `json:"selection"`
}

func runMigrate(path string, base, anchor uint64, out string) error {
	img, err := loadImage(path, base, anchor)
	if err != nil {
		return err
	}
	defer img.Close()

	ctx := payload.New(img.mem,
		payload.WithConfig(cfg),
		payload.WithLogger(logger.L),
	)
	ctx.Enter(anchor)
	rep, err := ctx.BuildHobs(anchor)
	if err != nil {
		return err
	}

	data, err := ctx.HobList().Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", out)
	}

	logger.Info("new list written", "out", out, "base", hex(rep.Base), "bytes", len(data))

	if jsonOut {
		return printJSON(migrateJSON{
			Base:      hex(rep.Base),
			Copied:    rep.Stats.Copied,
			Skipped:   rep.Stats.SkippedHandoff,
			Realigned: rep.Stats.Realigned,
			Used:      rep.Stats.Used,
			Out:       out,
			Selection: selectionOf(rep.Selection),
		})
	}
	printSelection(rep.Selection)
	printInfo("Migrated %d records to %s (%s used)\n", rep.Stats.Copied, hex(rep.Base), humanize.IBytes(rep.Stats.Used))
	printInfo("Wrote %s: %d bytes\n", out, len(data))
	return nil
}

// applySize overrides the configured region size when s is set.
func applySize(s string) error {
	if s == "" {
		return nil
	}
	n, err := config.ParseSize(s)
	if err != nil {
		return err
	}
	cfg.RegionSize = n
	return cfg.Validate()
}
