package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/ohmytoolbox/tbx/internal/config"
	"github.com/ohmytoolbox/tbx/internal/errors"
)

// initCommand creates a new .tbx.yaml in the current directory via an
// interactive form.
func initCommand(force bool) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	if _, err := os.Stat(configPath); err == nil && !force {
		if !interactive {
			return errors.New(errors.ErrConfig,
				"Config file already exists: "+configPath,
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
				Value(&overwrite),
		))
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()

	if interactive {
		adb := cfg.Tools.ADB
		fastboot := cfg.Tools.Fastboot
		qdl := cfg.Tools.QDL
		ramdump := cfg.Tools.Ramdump
		interval := cfg.Monitor.Interval.String()
		history := strconv.Itoa(cfg.Monitor.History)

		notEmpty := func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("a value is required")
			}
			return nil
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("adb executable").
					Description("Name on PATH or an absolute path").
					Value(&adb).
					Validate(notEmpty),
				huh.NewInput().
					Title("fastboot executable").
					Value(&fastboot).
					Validate(notEmpty),
				huh.NewInput().
					Title("EDL loader executable").
					Value(&qdl).
					Validate(notEmpty),
				huh.NewInput().
					Title("ramdump executable").
					Value(&ramdump).
					Validate(notEmpty),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Monitor sampling interval").
					Description("How often the dashboard samples the device").
					Value(&interval).
					Validate(func(s string) error {
						d, err := time.ParseDuration(s)
						if err != nil {
							return fmt.Errorf("use a duration like 2s or 500ms")
						}
						if d <= 0 {
							return fmt.Errorf("interval must be positive")
						}
						return nil
					}),
				huh.NewInput().
					Title("Monitor history size").
					Description("Samples retained per metric").
					Value(&history).
					Validate(func(s string) error {
						n, err := strconv.Atoi(s)
						if err != nil || n < 1 {
							return fmt.Errorf("use a whole number of at least 1")
						}
						return nil
					}),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Re-run 'tbx init' to try again")
		}

		cfg.Tools.ADB = strings.TrimSpace(adb)
		cfg.Tools.Fastboot = strings.TrimSpace(fastboot)
		cfg.Tools.QDL = strings.TrimSpace(qdl)
		cfg.Tools.Ramdump = strings.TrimSpace(ramdump)
		cfg.Monitor.Interval, _ = time.ParseDuration(interval)
		cfg.Monitor.History, _ = strconv.Atoi(history)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Printf("Created %s\n", configPath)
	return nil
}
