// Package parsers converts raw text blobs fetched from a device into typed
// metrics. Each parser is a narrow RawText -> (value, error) function so the
// fragile string scanning stays unit-testable and swappable independently of
// the sampler's control flow.
package parsers

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// ParseLoadAverage extracts the 1-minute load average from /proc/loadavg
// output: the first numeric token of the first line.
func ParseLoadAverage(raw string) (float64, error) {
	line := raw
	if idx := strings.IndexByte(raw, '\n'); idx >= 0 {
		line = raw[:idx]
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty loadavg output")
	}

	load, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse load average %q: %w", fields[0], err)
	}
	return load, nil
}

// MemInfo holds the /proc/meminfo entries the sampler cares about, in kB.
type MemInfo struct {
	TotalKB     int64
	FreeKB      int64
	AvailableKB int64
	BuffersKB   int64
	CachedKB    int64
}

// UsagePercent computes used memory as a percentage of total, where used is
// total minus available.
func (m MemInfo) UsagePercent() float64 {
	if m.TotalKB == 0 {
		return 0
	}
	return float64(m.TotalKB-m.AvailableKB) / float64(m.TotalKB) * 100
}

// ParseMemInfo parses key-value /proc/meminfo output. MemTotal and
// MemAvailable are required; the rest are optional.
func ParseMemInfo(raw string) (MemInfo, error) {
	var info MemInfo
	var haveTotal, haveAvailable bool

	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		key := strings.TrimSuffix(fields[0], ":")
		val, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			continue
		}

		switch key {
		case "MemTotal":
			info.TotalKB = val
			haveTotal = true
		case "MemFree":
			info.FreeKB = val
		case "MemAvailable":
			info.AvailableKB = val
			haveAvailable = true
		case "Buffers":
			info.BuffersKB = val
		case "Cached":
			info.CachedKB = val
		}
	}

	if !haveTotal || !haveAvailable {
		return MemInfo{}, fmt.Errorf("meminfo output missing MemTotal/MemAvailable")
	}
	return info, nil
}

// ParseThermalZone parses a thermal zone reading: a raw integer in
// millidegrees, divided by 1000 for Celsius.
func ParseThermalZone(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	milli, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse thermal zone reading %q: %w", trimmed, err)
	}
	return milli / 1000, nil
}
