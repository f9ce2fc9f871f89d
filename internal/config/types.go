package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .tbx.yaml configuration file.
type Config struct {
	Version int           `yaml:"version" mapstructure:"version"`
	Tools   ToolsConfig   `yaml:"tools" mapstructure:"tools"`
	Monitor MonitorConfig `yaml:"monitor" mapstructure:"monitor"`
}

// ToolsConfig names the external executables the toolbox drives. Each
// entry may be a bare name resolved via PATH or an absolute path.
type ToolsConfig struct {
	ADB      string `yaml:"adb" mapstructure:"adb"`
	Fastboot string `yaml:"fastboot" mapstructure:"fastboot"`
	QDL      string `yaml:"qdl" mapstructure:"qdl"`
	Ramdump  string `yaml:"ramdump" mapstructure:"ramdump"`
}

// MonitorConfig controls the telemetry dashboard.
type MonitorConfig struct {
	// Interval is the minimum spacing between sampling passes.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// History is the number of samples retained per metric.
	History int `yaml:"history" mapstructure:"history"`
}

// MarshalYAML writes the interval as a duration string ("2s") instead of
// raw nanoseconds. Loading goes through viper, which parses either form.
func (m MonitorConfig) MarshalYAML() (interface{}, error) {
	return struct {
		Interval string `yaml:"interval"`
		History  int    `yaml:"history"`
	}{
		Interval: m.Interval.String(),
		History:  m.History,
	}, nil
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Tools: ToolsConfig{
			ADB:      "adb",
			Fastboot: "fastboot",
			QDL:      "qdl",
			Ramdump:  "ramdump",
		},
		Monitor: MonitorConfig{
			Interval: 2 * time.Second,
			History:  120,
		},
	}
}
