package main

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set by the linker; debug build info fills commit and date otherwise.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// versionInfo is what `hobctl version` reports.
type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Built   string `json:"built"`
	Go      string `json:"go"`
}

func currentVersion() versionInfo {
	v := versionInfo{Version: version, Commit: commit, Built: date, Go: runtime.Version()}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if v.Commit == "" {
					v.Commit = s.Value
				}
			case "vcs.time":
				if v.Built == "" {
					v.Built = s.Value
				}
			}
		}
	}
	if v.Commit == "" {
		v.Commit = "none"
	}
	if v.Built == "" {
		v.Built = "unknown"
	}
	return v
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := currentVersion()
			if jsonOut {
				return printJSON(v)
			}
			printInfo("hobctl %s (%s)\n", v.Version, v.Go)
			printInfo("  commit: %s\n", v.Commit)
			printInfo("  built: %s\n", v.Built)
			return nil
		},
	})
}
