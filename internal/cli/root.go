// Package cli wires the cobra command surface over the device pipeline:
// enumeration, one-shot and streaming execution, flashing and the
// telemetry dashboard.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ohmytoolbox/tbx/internal/config"
	"github.com/ohmytoolbox/tbx/internal/errors"
)

// configFlag is the --config persistent flag value.
var configFlag string

var rootCmd = &cobra.Command{
	Use:   "tbx",
	Short: "Device toolbox for adb, fastboot, EDL and ramdump workflows",
	Long: `tbx drives the platform tools you already have installed — adb,
fastboot, the EDL loader and the ramdump collector — through one CLI:
device discovery with auto-connect, command execution with live output,
flashing, and a real-time telemetry dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Structured errors already carry the ✗ prefix and suggestion.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Config returns the --config flag value.
func Config() string {
	return configFlag
}

// loadConfig loads the effective configuration for a command, falling back
// to defaults when no config file exists and none was requested.
func loadConfig() (*config.Config, error) {
	if configFlag != "" {
		return config.Load(configFlag)
	}
	return config.LoadOrDefault()
}

// toolForFamily maps a family name to the configured executable.
func toolForFamily(cfg *config.Config, family string) (string, error) {
	switch family {
	case "adb":
		return cfg.Tools.ADB, nil
	case "fastboot":
		return cfg.Tools.Fastboot, nil
	case "edl":
		return cfg.Tools.QDL, nil
	case "ramdump":
		return cfg.Tools.Ramdump, nil
	}
	return "", errors.New(errors.ErrConfig,
		"Unknown device family: "+family,
		"Valid families: adb, fastboot, edl, ramdump")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file (default: .tbx.yaml)")
}
