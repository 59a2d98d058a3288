package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/hobkit/cmd/hobctl/logger"
	"github.com/joshuapare/hobkit/internal/config"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	configPath string

	// cfg is loaded before every command runs.
	cfg = config.Default()

	// printer groups digits in text output.
	printer = message.NewPrinter(language.English)
)

var rootCmd = &cobra.Command{
	Use:   "hobctl",
	Short: "Inspect and migrate firmware HOB lists",
	Long: `hobctl reads hand-off block (HOB) list images taken from physical memory,
shows their records, chooses the memory a payload would move the list to and
performs that migration.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
}

func setup(cmd *cobra.Command, args []string) error {
	cfg = config.Default()
	if configPath != "" {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = c
	}

	opts := logger.Options{
		Enabled: !quiet,
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
	}
	if verbose {
		opts.Level = "debug"
	}
	return logger.Init(opts)
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		printError("%v\n", err)
		if hints := errors.GetAllHints(err); len(hints) > 0 {
			for _, h := range hints {
				fmt.Fprintf(os.Stderr, "Hint: %s\n", h)
			}
		}
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		printer.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// hex renders an address the way firmware logs do.
func hex(v uint64) string {
	return fmt.Sprintf("0x%X", v)
}
