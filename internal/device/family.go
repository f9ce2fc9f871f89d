// Package device tracks which hardware is attached for each tool family and
// which unit the user is working on. One Registry handles every family; the
// family only contributes its listing command and banner filtering.
package device

import "strings"

// Family describes one class of device tool: how to list attached units and
// which output lines are decoration rather than devices.
type Family struct {
	// Name identifies the family ("adb", "fastboot", "edl", "ramdump").
	Name string

	// ListArgs are the tool arguments that enumerate attached devices,
	// one device per line.
	ListArgs []string

	// SkipLine reports banner/header lines to discard before parsing.
	// May be nil when the listing has no banner.
	SkipLine func(line string) bool
}

// Built-in families. The EDL and ramdump listings share the Sahara loader's
// --list-devices flag; only the configured executable differs.
var (
	ADB = Family{
		Name:     "adb",
		ListArgs: []string{"devices", "-l"},
		SkipLine: func(line string) bool {
			return strings.Contains(line, "List of devices")
		},
	}

	Fastboot = Family{
		Name:     "fastboot",
		ListArgs: []string{"devices"},
	}

	EDL = Family{
		Name:     "edl",
		ListArgs: []string{"--list-devices"},
	}

	Ramdump = Family{
		Name:     "ramdump",
		ListArgs: []string{"--list-devices"},
	}
)

// Families lists the built-in families in display order.
func Families() []Family {
	return []Family{ADB, Fastboot, EDL, Ramdump}
}

// FamilyByName looks up a built-in family by name.
func FamilyByName(name string) (Family, bool) {
	for _, f := range Families() {
		if f.Name == name {
			return f, true
		}
	}
	return Family{}, false
}
