package parsers

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// BatteryInfo holds the metrics extracted from a dumpsys battery blob.
// Temperature is in Celsius (dump reports tenths of a degree), Voltage in
// volts (dump reports millivolts).
type BatteryInfo struct {
	Level       float64
	Temperature float64
	Voltage     float64
	Health      string
	Status      string
	ACPowered   bool
	USBPowered  bool
}

// PowerSource describes where the device is drawing power from.
func (b BatteryInfo) PowerSource() string {
	switch {
	case b.ACPowered:
		return "AC"
	case b.USBPowered:
		return "USB"
	default:
		return "battery"
	}
}

// ParseBatteryDump parses colon-delimited dumpsys battery output. The level
// entry is required; everything else is optional.
func ParseBatteryDump(raw string) (BatteryInfo, error) {
	var info BatteryInfo
	var haveLevel bool

	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		key, val, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		switch key {
		case "level":
			level, err := strconv.ParseFloat(val, 64)
			if err != nil {
				continue
			}
			info.Level = level
			haveLevel = true
		case "temperature":
			if tenths, err := strconv.ParseFloat(val, 64); err == nil {
				info.Temperature = tenths / 10
			}
		case "voltage":
			if milli, err := strconv.ParseFloat(val, 64); err == nil {
				info.Voltage = milli / 1000
			}
		case "health":
			info.Health = healthString(val)
		case "status":
			info.Status = statusString(val)
		case "AC powered":
			info.ACPowered = val == "true"
		case "USB powered":
			info.USBPowered = val == "true"
		}
	}

	if !haveLevel {
		return BatteryInfo{}, fmt.Errorf("battery dump has no level entry")
	}
	return info, nil
}

// healthString maps a BatteryManager health constant to a label. Newer
// dumps already print labels; those pass through unchanged.
func healthString(val string) string {
	switch val {
	case "1":
		return "unknown"
	case "2":
		return "good"
	case "3":
		return "overheat"
	case "4":
		return "dead"
	case "5":
		return "over voltage"
	case "6":
		return "failure"
	case "7":
		return "cold"
	default:
		return val
	}
}

// statusString maps a BatteryManager status constant to a label.
func statusString(val string) string {
	switch val {
	case "1":
		return "unknown"
	case "2":
		return "charging"
	case "3":
		return "discharging"
	case "4":
		return "not charging"
	case "5":
		return "full"
	default:
		return val
	}
}
