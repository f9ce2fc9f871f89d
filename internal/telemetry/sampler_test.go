package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	drivertest "github.com/ohmytoolbox/tbx/internal/driver/testing"
	"github.com/ohmytoolbox/tbx/internal/logger"
)

const testSerial = "emulator-5554"

func shellArgs(args ...string) []string {
	return append([]string{"-s", testSerial, "shell"}, args...)
}

// scriptedRunner returns a fake adb with all six metric sources responding.
func scriptedRunner() *drivertest.FakeRunner {
	return drivertest.NewFakeRunner().
		Respond(shellArgs("cat", "/proc/loadavg"), "1.25 0.80 0.50 2/340 4567\n").
		Respond(shellArgs("cat", "/proc/meminfo"),
			"MemTotal:        1000 kB\nMemAvailable:     400 kB\n").
		Respond(shellArgs("dumpsys", "battery"),
			"Current Battery Service state:\n  level: 87\n  temperature: 285\n  voltage: 4123\n  status: 2\n  health: 2\n").
		Respond(shellArgs("cat", "/sys/class/thermal/thermal_zone0/temp"), "41500\n").
		Respond(shellArgs("cat", "/proc/net/dev"),
			"Inter-|   Receive                                                |  Transmit\n"+
				" face |bytes    packets errs drop fifo frame compressed multicast|bytes    packets errs drop fifo colls carrier compressed\n"+
				" wlan0: 1048576 100 0 0 0 0 0 0 524288 80 0 0 0 0 0 0\n").
		Respond(shellArgs("ps", "-A", "-o", "pid,user,%cpu,rss,s,name"),
			"PID USER %CPU RSS S NAME\n1 root 0.0 2048 S init\n")
}

// testClock is an advanceable fake time source.
type testClock struct {
	t time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) now() time.Time          { return c.t }
func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSampler(runner *drivertest.FakeRunner, interval time.Duration) (*Sampler, *Store, *testClock) {
	store := NewStore(10)
	sampler := NewSampler(runner, store, interval)
	sampler.SetLogger(logger.Noop())
	clock := newTestClock()
	sampler.SetClock(clock.now)
	return sampler, store, clock
}

func TestSamplerDisabledByDefault(t *testing.T) {
	runner := scriptedRunner()
	sampler, store, _ := newTestSampler(runner, time.Second)

	sampler.Tick(context.Background(), testSerial)

	assert.Equal(t, 0, runner.CallCount())
	assert.Equal(t, 0, store.Len(MetricCPULoad))
}

func TestSamplerNoDeviceSelected(t *testing.T) {
	runner := scriptedRunner()
	sampler, _, _ := newTestSampler(runner, time.Second)
	sampler.Enable()

	sampler.Tick(context.Background(), "")

	assert.Equal(t, 0, runner.CallCount())
}

func TestSamplerFirstTickSamplesImmediately(t *testing.T) {
	runner := scriptedRunner()
	sampler, store, clock := newTestSampler(runner, time.Second)
	sampler.Enable()

	sampler.Tick(context.Background(), testSerial)

	assert.Equal(t, 1, store.Len(MetricCPULoad))
	assert.Equal(t, 1, store.Len(MetricMemoryUsage))
	assert.Equal(t, 1, store.Len(MetricBatteryLevel))
	assert.Equal(t, 1, store.Len(MetricBatteryTemp))

	load, ok := store.Latest(MetricCPULoad)
	require.True(t, ok)
	assert.InDelta(t, 1.25, load.Value, 0.0001)
	assert.Equal(t, clock.t, load.Timestamp)

	mem, _ := store.Latest(MetricMemoryUsage)
	assert.InDelta(t, 60.0, mem.Value, 0.0001)

	level, _ := store.Latest(MetricBatteryLevel)
	assert.Equal(t, 87.0, level.Value)

	temp, _ := store.Latest(MetricBatteryTemp)
	assert.InDelta(t, 28.5, temp.Value, 0.0001)
}

func TestSamplerIntervalGate(t *testing.T) {
	runner := scriptedRunner()
	sampler, store, clock := newTestSampler(runner, time.Second)
	sampler.Enable()

	sampler.Tick(context.Background(), testSerial)
	require.Equal(t, 1, store.Len(MetricCPULoad))

	// Ticks inside the interval are no-ops.
	clock.advance(300 * time.Millisecond)
	sampler.Tick(context.Background(), testSerial)
	clock.advance(300 * time.Millisecond)
	sampler.Tick(context.Background(), testSerial)
	assert.Equal(t, 1, store.Len(MetricCPULoad))

	// 1.2s elapsed since the last pass exceeds the 1s interval.
	clock.advance(600 * time.Millisecond)
	sampler.Tick(context.Background(), testSerial)
	assert.Equal(t, 2, store.Len(MetricCPULoad))

	latest, _ := store.Latest(MetricCPULoad)
	assert.Equal(t, clock.t, latest.Timestamp)
}

func TestSamplerSnapshot(t *testing.T) {
	runner := scriptedRunner()
	sampler, _, clock := newTestSampler(runner, time.Second)
	sampler.Enable()

	sampler.Tick(context.Background(), testSerial)

	snap := sampler.Snapshot()
	assert.True(t, snap.DeviceSeen)
	assert.Equal(t, clock.t, snap.SampledAt)

	require.True(t, snap.BatteryOK)
	assert.Equal(t, 87.0, snap.Battery.Level)
	assert.Equal(t, "charging", snap.Battery.Status)

	require.True(t, snap.ThermalOK)
	assert.InDelta(t, 41.5, snap.ThermalC, 0.0001)

	require.Len(t, snap.Network, 1)
	assert.Equal(t, "wlan0", snap.Network[0].Name)
	assert.Equal(t, int64(1048576), snap.Network[0].RxBytes)

	require.Len(t, snap.Processes, 1)
	assert.Equal(t, "init", snap.Processes[0].Name)
}

func TestSamplerMetricFailureDoesNotAbortPass(t *testing.T) {
	// No battery or thermal responses scripted; those reads fail.
	runner := drivertest.NewFakeRunner().
		Respond(shellArgs("cat", "/proc/loadavg"), "0.50 0.40 0.30 1/200 999\n").
		Respond(shellArgs("cat", "/proc/meminfo"),
			"MemTotal: 2000 kB\nMemAvailable: 1000 kB\n")
	sampler, store, _ := newTestSampler(runner, time.Second)
	sampler.Enable()

	sampler.Tick(context.Background(), testSerial)

	assert.Equal(t, 1, store.Len(MetricCPULoad))
	assert.Equal(t, 1, store.Len(MetricMemoryUsage))
	assert.Equal(t, 0, store.Len(MetricBatteryLevel))

	snap := sampler.Snapshot()
	assert.False(t, snap.BatteryOK)
	assert.False(t, snap.ThermalOK)
	assert.Empty(t, snap.Network)
}

func TestSamplerGarbledOutputSkipsMetric(t *testing.T) {
	runner := scriptedRunner().
		Respond(shellArgs("cat", "/proc/loadavg"), "not a number\n")
	sampler, store, _ := newTestSampler(runner, time.Second)
	sampler.Enable()

	sampler.Tick(context.Background(), testSerial)

	assert.Equal(t, 0, store.Len(MetricCPULoad))
	assert.Equal(t, 1, store.Len(MetricMemoryUsage))
}

func TestSamplerDisableStopsCollection(t *testing.T) {
	runner := scriptedRunner()
	sampler, store, clock := newTestSampler(runner, time.Second)
	sampler.Enable()
	sampler.Tick(context.Background(), testSerial)

	sampler.Disable()
	clock.advance(5 * time.Second)
	sampler.Tick(context.Background(), testSerial)

	// History is retained, but no new samples land.
	assert.Equal(t, 1, store.Len(MetricCPULoad))
}

func TestSamplerReEnableSamplesImmediately(t *testing.T) {
	runner := scriptedRunner()
	sampler, store, clock := newTestSampler(runner, time.Second)
	sampler.Enable()
	sampler.Tick(context.Background(), testSerial)

	sampler.Disable()
	clock.advance(100 * time.Millisecond)
	sampler.Enable()
	sampler.Tick(context.Background(), testSerial)

	assert.Equal(t, 2, store.Len(MetricCPULoad))
}

func TestSamplerConcurrentTickAndControl(t *testing.T) {
	runner := scriptedRunner()
	store := NewStore(10)
	sampler := NewSampler(runner, store, time.Millisecond)
	sampler.SetLogger(logger.Noop())
	sampler.Enable()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			sampler.Tick(context.Background(), testSerial)
		}
	}()

	// Control calls race against the ticking goroutine, mirroring the
	// monitor's command-goroutine schedule; the race detector fails this
	// test if the sampler's state is not guarded.
	for i := 0; i < 200; i++ {
		_ = sampler.Enabled()
		_ = sampler.Snapshot()
		_ = sampler.LastPass()
		if i%20 == 0 {
			sampler.Disable()
			sampler.Enable()
		}
		if i%50 == 0 {
			sampler.Clear()
		}
	}
	<-done

	assert.True(t, sampler.Enabled())
}

func TestSamplerSessionAnchor(t *testing.T) {
	runner := scriptedRunner()
	sampler, store, clock := newTestSampler(runner, time.Second)
	assert.True(t, sampler.SessionStart().IsZero())

	sampler.Enable()
	start := clock.t
	assert.Equal(t, start, sampler.SessionStart())

	clock.advance(3 * time.Second)
	sampler.Tick(context.Background(), testSerial)

	// Time since session start is recoverable from any sample.
	sample, ok := store.Latest(MetricCPULoad)
	require.True(t, ok)
	assert.Equal(t, 3*time.Second, sample.Timestamp.Sub(sampler.SessionStart()))

	// Disable keeps the anchor; re-enabling starts a new session.
	sampler.Disable()
	assert.Equal(t, start, sampler.SessionStart())
	clock.advance(time.Second)
	sampler.Enable()
	assert.Equal(t, clock.t, sampler.SessionStart())

	// Clearing while armed re-anchors alongside the emptied series.
	clock.advance(time.Second)
	sampler.Clear()
	assert.Equal(t, clock.t, sampler.SessionStart())
}

func TestSamplerClear(t *testing.T) {
	runner := scriptedRunner()
	sampler, store, _ := newTestSampler(runner, time.Second)
	sampler.Enable()
	sampler.Tick(context.Background(), testSerial)

	sampler.Clear()

	assert.Equal(t, 0, store.Len(MetricCPULoad))
	assert.False(t, sampler.Snapshot().BatteryOK)
}
