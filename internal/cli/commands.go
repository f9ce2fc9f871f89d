package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ohmytoolbox/tbx/internal/errors"
)

// Command-specific flags
var (
	devicesFamilyFlag   string
	logcatFilterFlag    string
	flashYesFlag        bool
	initForceFlag       bool
	monitorIntervalFlag string
	monitorHistoryFlag  int
)

// devicesCmd lists attached devices for a tool family
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List attached devices",
	Long: `Enumerate devices attached via the selected tool family.

A single attached device is selected automatically; with several attached
you pick one explicitly per command.

Examples:
  tbx devices
  tbx devices --family fastboot
  tbx devices --family edl`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return devicesCommand(devicesFamilyFlag)
	},
}

// shellCmd runs a shell command on the selected device
var shellCmd = &cobra.Command{
	Use:   "shell <command...>",
	Short: "Run a shell command on the selected device",
	Long: `Execute a command via 'adb shell' on the selected device and print
its output.

Examples:
  tbx shell getprop ro.product.model
  tbx shell -- ls -la /sdcard`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return shellCommand(args)
	},
}

// logcatCmd streams device logs
var logcatCmd = &cobra.Command{
	Use:   "logcat",
	Short: "Stream device logs",
	Long: `Stream 'adb logcat' output line by line until interrupted.
Lines flagged as failures by the tool are highlighted.

Examples:
  tbx logcat
  tbx logcat --filter ActivityManager`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return logcatCommand(logcatFilterFlag)
	},
}

// flashCmd writes an image to a partition via fastboot
var flashCmd = &cobra.Command{
	Use:   "flash <partition> <image>",
	Short: "Flash an image to a partition",
	Long: `Flash an image file to a device partition via fastboot, streaming
the tool's progress output as it runs.

Asks for confirmation before writing; use --yes to skip the prompt.

Examples:
  tbx flash boot boot.img
  tbx flash system system.img --yes`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return flashCommand(args[0], args[1], flashYesFlag)
	},
}

// monitorCmd starts the telemetry dashboard
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Real-time device telemetry dashboard",
	Long: `Start an interactive TUI dashboard sampling the selected device:
CPU load, memory usage, battery level and temperature with sparkline
history, plus thermal, network and process snapshots.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  s           Toggle sampling
  c           Clear history
  r           Refresh device list
  [ / ]       Shrink / grow history
  Tab         Focus process pane

Examples:
  tbx monitor
  tbx monitor --interval 5s --history 300`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var interval time.Duration
		if monitorIntervalFlag != "" {
			parsed, err := time.ParseDuration(monitorIntervalFlag)
			if err != nil {
				return errors.WrapWithCode(err, errors.ErrConfig,
					"Invalid interval: "+monitorIntervalFlag,
					"Use a valid duration like 2s, 5s, or 1m")
			}
			if parsed < 500*time.Millisecond {
				return errors.New(errors.ErrConfig,
					"Interval too short",
					"Minimum interval is 500ms to avoid hammering the device")
			}
			interval = parsed
		}

		return monitorCommand(interval, monitorHistoryFlag)
	},
}

// initCmd creates a new .tbx.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .tbx.yaml configuration",
	Long: `Initialize a new tbx configuration file.

Creates a .tbx.yaml file in the current directory, guiding you through
tool paths and monitor settings with interactive prompts.

Examples:
  tbx init
  tbx init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForceFlag)
	},
}

func init() {
	devicesCmd.Flags().StringVar(&devicesFamilyFlag, "family", "adb", "tool family (adb, fastboot, edl, ramdump)")

	logcatCmd.Flags().StringVar(&logcatFilterFlag, "filter", "", "only show lines containing this tag")

	flashCmd.Flags().BoolVarP(&flashYesFlag, "yes", "y", false, "skip the confirmation prompt")

	initCmd.Flags().BoolVarP(&initForceFlag, "force", "f", false, "overwrite existing config")

	monitorCmd.Flags().StringVar(&monitorIntervalFlag, "interval", "", "sampling interval (e.g., 2s, 5s)")
	monitorCmd.Flags().IntVar(&monitorHistoryFlag, "history", 0, "samples retained per metric")

	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(logcatCmd)
	rootCmd.AddCommand(flashCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(initCmd)
}
