package parsers

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// InterfaceStats holds cumulative receive/transmit byte counters for one
// network interface from /proc/net/dev.
type InterfaceStats struct {
	Name    string
	RxBytes int64
	TxBytes int64
}

// ParseNetDev parses the /proc/net/dev statistics table. The two header
// lines are skipped; rows that don't carry the full counter set are ignored.
func ParseNetDev(raw string) ([]InterfaceStats, error) {
	var stats []InterfaceStats

	scanner := bufio.NewScanner(strings.NewReader(raw))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum <= 2 {
			continue
		}

		name, rest, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}

		fields := strings.Fields(rest)
		if len(fields) < 16 {
			continue
		}

		rx, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			continue
		}
		// Transmit bytes is the ninth counter column.
		tx, err := strconv.ParseInt(fields[8], 10, 64)
		if err != nil {
			continue
		}

		stats = append(stats, InterfaceStats{
			Name:    strings.TrimSpace(name),
			RxBytes: rx,
			TxBytes: tx,
		})
	}

	if len(stats) == 0 {
		return nil, fmt.Errorf("no interface rows in net dev output")
	}
	return stats, nil
}

// byteUnits are the binary-scaled size suffixes used by FormatBytes.
var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count with 1024-based scaling: two decimals
// for scaled units, no decimals for plain bytes.
//
//	FormatBytes(512)  == "512 B"
//	FormatBytes(1536) == "1.50 KB"
func FormatBytes(bytes int64) string {
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(byteUnits)-1 {
		size /= 1024
		unit++
	}

	if unit == 0 {
		return fmt.Sprintf("%d %s", bytes, byteUnits[unit])
	}
	return fmt.Sprintf("%.2f %s", size, byteUnits[unit])
}
