package device

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ohmytoolbox/tbx/internal/driver"
	"github.com/ohmytoolbox/tbx/internal/errors"
	"github.com/ohmytoolbox/tbx/internal/logger"
)

// Device is one attached unit as reported by a family's listing command.
type Device struct {
	// ID is the unique identifier within one listing (serial, USB path).
	ID string

	// Status is the second listing token ("device", "unauthorized",
	// "fastboot", "9008", ...).
	Status string

	// Attrs holds the remaining key:value annotations from the listing
	// line (model:, product:, transport_id:, ...).
	Attrs map[string]string
}

// Registry enumerates and selects devices for one tool family.
//
// Registry is safe for concurrent use: the monitor refreshes on a command
// goroutine while its view reads the selection. The enumeration call itself
// runs unlocked; only the list/selection swap is guarded. Returned slices
// are snapshots.
type Registry struct {
	family Family
	runner driver.Runner
	log    logger.Logger

	mu          sync.Mutex
	devices     []Device
	selected    string
	lastRefresh time.Time
}

// NewRegistry creates a registry for the given family backed by runner.
func NewRegistry(family Family, runner driver.Runner) *Registry {
	return &Registry{
		family: family,
		runner: runner,
		log:    logger.NewEnvLogger("[device]"),
	}
}

// SetLogger replaces the registry's logger.
func (r *Registry) SetLogger(l logger.Logger) {
	r.log = l
}

// Family returns the family this registry enumerates.
func (r *Registry) Family() Family {
	return r.family
}

// Refresh re-enumerates attached devices, replacing the previous list
// wholesale, and applies the selection policy:
//
//   - exactly one device: select it (auto-connect)
//   - no devices: clear the selection
//   - several devices: keep the current selection only if it is still
//     listed; never pick one automatically
func (r *Registry) Refresh(ctx context.Context) ([]Device, error) {
	res, err := r.runner.Run(ctx, r.family.ListArgs...)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, errors.New(errors.ErrExec,
			"Couldn't list "+r.family.Name+" devices",
			strings.TrimSpace(res.Stderr))
	}

	devices := r.parseListing(res.Stdout)

	r.mu.Lock()
	r.devices = devices
	r.applySelectionPolicy()
	r.lastRefresh = time.Now()
	r.mu.Unlock()

	return r.Devices(), nil
}

// parseListing converts listing output into devices, one per non-banner,
// non-blank line. Lines that don't tokenize into at least an identifier and
// a status are skipped; a malformed line never aborts the refresh.
func (r *Registry) parseListing(output string) []Device {
	var devices []Device
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if r.family.SkipLine != nil && r.family.SkipLine(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			r.log.Debug("skipping unparseable %s line: %q", r.family.Name, line)
			continue
		}

		d := Device{
			ID:     fields[0],
			Status: fields[1],
			Attrs:  make(map[string]string),
		}
		for _, tok := range fields[2:] {
			if key, val, ok := strings.Cut(tok, ":"); ok {
				d.Attrs[key] = val
			}
		}
		devices = append(devices, d)
	}
	return devices
}

// applySelectionPolicy enforces the auto-connect invariant after a refresh.
// Callers hold r.mu.
func (r *Registry) applySelectionPolicy() {
	switch {
	case len(r.devices) == 1:
		if r.selected != r.devices[0].ID {
			r.selected = r.devices[0].ID
			r.log.Info("auto-connected to single %s device: %s", r.family.Name, r.selected)
		}
	case len(r.devices) == 0:
		r.selected = ""
	default:
		if r.selected == "" {
			return
		}
		for _, d := range r.devices {
			if d.ID == r.selected {
				return
			}
		}
		r.log.Info("previously selected %s device is gone, cleared selection", r.family.Name)
		r.selected = ""
	}
}

// Devices returns a snapshot of the last enumeration.
func (r *Registry) Devices() []Device {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Device, len(r.devices))
	copy(out, r.devices)
	return out
}

// Select sets the selection to the given identifier. Selecting an
// identifier that is not in the current list is allowed; it will be cleared
// on the next refresh if still absent.
func (r *Registry) Select(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = id
}

// ClearSelection removes the current selection.
func (r *Registry) ClearSelection() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = ""
}

// Selected returns the currently selected device, if any.
func (r *Registry) Selected() (Device, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.selected == "" {
		return Device{}, false
	}
	for _, d := range r.devices {
		if d.ID == r.selected {
			return d, true
		}
	}
	// Selection set explicitly before any refresh listed it.
	return Device{ID: r.selected}, true
}

// SelectedID returns the selected identifier, or "" when nothing is selected.
func (r *Registry) SelectedID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selected
}

// LastRefresh returns when the device list was last enumerated.
func (r *Registry) LastRefresh() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRefresh
}
