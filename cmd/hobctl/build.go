package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/joshuapare/hobkit/cmd/hobctl/logger"
	"github.com/joshuapare/hobkit/internal/image"
)

var buildOut string

func init() {
	rootCmd.AddCommand(newBuildCmd())
}

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <description.yaml>",
		Short: "Assemble a HOB list image from a YAML description",
		Long: `The build command lays out a hand-off record followed by the described
records and the end marker, and writes the bytes to --out. The image belongs
at the description's base address.

Example:
  hobctl build list.yaml --out hob.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if buildOut == "" {
				return errors.New("--out is required")
			}
			return runBuild(args[0], buildOut)
		},
	}
	cmd.Flags().StringVarP(&buildOut, "out", "o", "", "Output image file")
	return cmd
}

func runBuild(path, out string) error {
	desc, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	data, base, err := image.Assemble(desc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", out)
	}

	logger.Info("image written", "out", out, "base", hex(base), "bytes", len(data))

	if jsonOut {
		return printJSON(map[string]any{"out": out, "base": hex(base), "size": len(data)})
	}
	printInfo("Wrote %s: %d bytes, base %s\n", out, len(data), hex(base))
	return nil
}
