// Package telemetry collects periodic device metrics over adb and retains
// them in bounded per-metric history for rendering.
package telemetry

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ohmytoolbox/tbx/internal/driver"
	"github.com/ohmytoolbox/tbx/internal/logger"
	"github.com/ohmytoolbox/tbx/internal/telemetry/parsers"
)

// DefaultInterval is the default minimum spacing between sampling passes.
const DefaultInterval = 2 * time.Second

// Snapshot holds the most recent non-series readings from a sampling pass.
// Zero-valued fields with their ok flag false mean the reading has not
// succeeded yet.
type Snapshot struct {
	Battery    parsers.BatteryInfo
	BatteryOK  bool
	ThermalC   float64
	ThermalOK  bool
	Network    []parsers.InterfaceStats
	Processes  []parsers.Process
	SampledAt  time.Time
	DeviceSeen bool
}

// Sampler drives periodic metric collection for a single device. Enabling
// arms the sampler; actual collection happens on Tick, which is expected to
// be called frequently (every UI frame) and internally rate-limits passes
// to the configured interval.
//
// Sampler is safe for concurrent use: the monitor runs Tick on a command
// goroutine while its update loop toggles state and reads snapshots. The
// mutex covers the control state only; a collection pass runs unlocked so
// readers never wait on a slow device.
type Sampler struct {
	runner driver.Runner
	store  *Store
	log    logger.Logger

	mu           sync.Mutex
	interval     time.Duration
	now          func() time.Time
	enabled      bool
	lastPass     time.Time
	sessionStart time.Time
	snapshot     Snapshot
}

// NewSampler creates a sampler that shells into the device via runner and
// records series data into store.
func NewSampler(runner driver.Runner, store *Store, interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sampler{
		runner:   runner,
		store:    store,
		log:      logger.Default(),
		interval: interval,
		now:      time.Now,
	}
}

// SetLogger replaces the sampler's logger.
func (s *Sampler) SetLogger(log logger.Logger) {
	s.log = log
}

// SetClock replaces the sampler's time source. Used by tests.
func (s *Sampler) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SetInterval changes the minimum spacing between sampling passes.
func (s *Sampler) SetInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interval = interval
}

// Interval returns the minimum spacing between sampling passes.
func (s *Sampler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Enable arms the sampler and anchors a new session. The next Tick performs
// a pass immediately.
func (s *Sampler) Enable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = true
	s.lastPass = time.Time{}
	s.sessionStart = s.now()
}

// Disable stops collection. Accumulated history is retained.
func (s *Sampler) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = false
}

// Enabled reports whether the sampler is armed.
func (s *Sampler) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Clear discards all accumulated history and the last snapshot. If the
// sampler is armed the session start is re-anchored, so elapsed times
// restart with the emptied series.
func (s *Sampler) Clear() {
	s.store.ClearAll()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = Snapshot{}
	if s.enabled {
		s.sessionStart = s.now()
	}
}

// Snapshot returns the readings from the most recent sampling pass.
func (s *Sampler) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// LastPass returns the time of the most recent sampling pass.
func (s *Sampler) LastPass() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPass
}

// SessionStart returns when the current sampling session was armed, or the
// zero time if the sampler has never been enabled. Sample timestamps are
// wall-clock; subtracting this anchor yields time since session start.
func (s *Sampler) SessionStart() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionStart
}

// Tick runs a sampling pass if the sampler is enabled, a device is
// selected, and at least the configured interval has elapsed since the
// previous pass. Each metric is collected independently; a failing metric
// is logged and skipped without aborting the pass.
func (s *Sampler) Tick(ctx context.Context, serial string) {
	s.mu.Lock()
	if !s.enabled || serial == "" {
		s.mu.Unlock()
		return
	}
	now := s.now()
	if !s.lastPass.IsZero() && now.Sub(s.lastPass) < s.interval {
		s.mu.Unlock()
		return
	}
	s.lastPass = now
	s.mu.Unlock()

	snap := Snapshot{SampledAt: now, DeviceSeen: true}

	if out, ok := s.shell(ctx, serial, "cat", "/proc/loadavg"); ok {
		if load, err := parsers.ParseLoadAverage(out); err != nil {
			s.log.Debug("loadavg parse failed: %v", err)
		} else {
			s.store.Push(MetricCPULoad, Sample{Timestamp: now, Value: load})
		}
	}

	if out, ok := s.shell(ctx, serial, "cat", "/proc/meminfo"); ok {
		if mem, err := parsers.ParseMemInfo(out); err != nil {
			s.log.Debug("meminfo parse failed: %v", err)
		} else {
			s.store.Push(MetricMemoryUsage, Sample{Timestamp: now, Value: mem.UsagePercent()})
		}
	}

	if out, ok := s.shell(ctx, serial, "dumpsys", "battery"); ok {
		if battery, err := parsers.ParseBatteryDump(out); err != nil {
			s.log.Debug("battery parse failed: %v", err)
		} else {
			snap.Battery = battery
			snap.BatteryOK = true
			s.store.Push(MetricBatteryLevel, Sample{Timestamp: now, Value: float64(battery.Level)})
			s.store.Push(MetricBatteryTemp, Sample{Timestamp: now, Value: battery.Temperature})
		}
	}

	if out, ok := s.shell(ctx, serial, "cat", "/sys/class/thermal/thermal_zone0/temp"); ok {
		if temp, err := parsers.ParseThermalZone(out); err != nil {
			s.log.Debug("thermal parse failed: %v", err)
		} else {
			snap.ThermalC = temp
			snap.ThermalOK = true
		}
	}

	if out, ok := s.shell(ctx, serial, "cat", "/proc/net/dev"); ok {
		if ifaces, err := parsers.ParseNetDev(out); err != nil {
			s.log.Debug("net/dev parse failed: %v", err)
		} else {
			snap.Network = ifaces
		}
	}

	if out, ok := s.shell(ctx, serial, "ps", "-A", "-o", parsers.ProcessListColumns); ok {
		if procs, err := parsers.ParseProcessList(out); err != nil {
			s.log.Debug("process list parse failed: %v", err)
		} else {
			snap.Processes = procs
		}
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
}

// shell runs an adb shell command against the device and returns its
// stdout. Failures are logged and reported via ok=false.
func (s *Sampler) shell(ctx context.Context, serial string, args ...string) (string, bool) {
	full := append([]string{"-s", serial, "shell"}, args...)
	result, err := s.runner.Run(ctx, full...)
	if err != nil {
		s.log.Debug("shell %s failed: %v", strings.Join(args, " "), err)
		return "", false
	}
	if !result.Success {
		s.log.Debug("shell %s exited non-zero: %s", strings.Join(args, " "), strings.TrimSpace(result.Stderr))
		return "", false
	}
	return result.Stdout, true
}
