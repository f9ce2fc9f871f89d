package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ohmytoolbox/tbx/internal/errors"
)

// Save writes the config to the given path as YAML, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to create config directory",
				"Check permissions for "+dir)
		}
	}

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		encoder.Close()
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to encode config", "")
	}
	encoder.Close()

	if err := os.WriteFile(path, []byte(buf.String()), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file",
			"Check permissions for "+path)
	}

	return nil
}
