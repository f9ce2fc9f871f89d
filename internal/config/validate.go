package config

import (
	"fmt"
	"strings"

	"github.com/ohmytoolbox/tbx/internal/errors"
)

// Validate checks the config for errors and returns structured error
// messages.
func (c *Config) Validate() error {
	if c.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but tbx only knows up to %d)", c.Version, CurrentConfigVersion),
			"Grab the latest tbx release")
	}

	if err := validateTools(c.Tools); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
			"Check the 'tools' section in your .tbx.yaml.")
	}

	if err := validateMonitor(c.Monitor); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
			"Check the 'monitor' section in your .tbx.yaml.")
	}

	return nil
}

// validateTools checks that no tool name is blank or contains shell
// metacharacters. Tool values are passed to exec directly, never through
// a shell, but rejecting these early catches copy-paste mistakes.
func validateTools(tools ToolsConfig) error {
	named := map[string]string{
		"adb":      tools.ADB,
		"fastboot": tools.Fastboot,
		"qdl":      tools.QDL,
		"ramdump":  tools.Ramdump,
	}
	for key, value := range named {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("tools.%s cannot be empty", key)
		}
		if strings.ContainsAny(value, "|&;<>$`") {
			return fmt.Errorf("tools.%s contains shell metacharacters: %q", key, value)
		}
	}
	return nil
}

func validateMonitor(monitor MonitorConfig) error {
	if monitor.Interval <= 0 {
		return fmt.Errorf("monitor.interval must be positive, got %s", monitor.Interval)
	}
	if monitor.History < 1 {
		return fmt.Errorf("monitor.history must be at least 1, got %d", monitor.History)
	}
	return nil
}
