package cli

import (
	"time"

	"github.com/ohmytoolbox/tbx/internal/driver"
	"github.com/ohmytoolbox/tbx/internal/monitor"
	"github.com/ohmytoolbox/tbx/internal/telemetry"
)

// monitorCommand starts the telemetry dashboard. Flag values of zero fall
// back to the config file's monitor section.
func monitorCommand(interval time.Duration, history int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if interval == 0 {
		interval = cfg.Monitor.Interval
	}
	if history == 0 {
		history = cfg.Monitor.History
	}

	ctx, stop := signalContext()
	defer stop()

	registry, err := adbRegistry(ctx, cfg)
	if err != nil {
		return err
	}

	store := telemetry.NewStore(history)
	sampler := telemetry.NewSampler(driver.NewGateway(cfg.Tools.ADB), store, interval)

	return monitor.Run(registry, sampler, store)
}
