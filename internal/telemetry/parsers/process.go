package parsers

import (
	"bufio"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Process is one row of the device process listing.
type Process struct {
	PID        int
	User       string
	CPUPercent float64
	MemoryKB   int64
	State      string
	Name       string
}

// ProcessListColumns is the -o column spec the sampler requests from the
// device's ps. ParseProcessList expects rows in this column order.
const ProcessListColumns = "pid,user,%cpu,rss,s,name"

// ParseProcessList parses ps output requested with ProcessListColumns into
// process records sorted ascending by pid. The header row is skipped; rows
// with fewer than six tokens are ignored; a non-numeric pid sorts as 0
// rather than dropping the row.
func ParseProcessList(raw string) ([]Process, error) {
	var procs []Process

	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Scan() // header

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 6 {
			continue
		}

		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			pid = 0
		}
		cpu, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			cpu = 0
		}
		mem, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			mem = 0
		}

		procs = append(procs, Process{
			PID:        pid,
			User:       fields[1],
			CPUPercent: cpu,
			MemoryKB:   mem,
			State:      fields[4],
			// Kernel thread names can contain spaces in brackets.
			Name: strings.Join(fields[5:], " "),
		})
	}

	if len(procs) == 0 {
		return nil, fmt.Errorf("no process rows in ps output")
	}

	sort.SliceStable(procs, func(i, j int) bool {
		return procs[i].PID < procs[j].PID
	})
	return procs, nil
}
