package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ohmytoolbox/tbx/internal/config"
	"github.com/ohmytoolbox/tbx/internal/device"
	"github.com/ohmytoolbox/tbx/internal/driver"
	"github.com/ohmytoolbox/tbx/internal/errors"
	"github.com/ohmytoolbox/tbx/internal/ui"
	"github.com/ohmytoolbox/tbx/internal/util"
)

// listTimeout bounds a single device enumeration.
const listTimeout = 10 * time.Second

// signalContext returns a context cancelled by Ctrl-C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// newRegistry builds a registry for the named family using the configured
// executable.
func newRegistry(cfg *config.Config, familyName string) (*device.Registry, error) {
	family, ok := device.FamilyByName(familyName)
	if !ok {
		return nil, errors.New(errors.ErrConfig,
			"Unknown device family: "+familyName,
			"Valid families: adb, fastboot, edl, ramdump")
	}

	tool, err := toolForFamily(cfg, familyName)
	if err != nil {
		return nil, err
	}

	return device.NewRegistry(family, driver.NewGateway(tool)), nil
}

// adbRegistry builds and refreshes the adb registry and requires a
// selected device. Shared by the shell, logcat and monitor commands.
func adbRegistry(ctx context.Context, cfg *config.Config) (*device.Registry, error) {
	registry, err := newRegistry(cfg, "adb")
	if err != nil {
		return nil, err
	}

	refreshCtx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()
	if _, err := registry.Refresh(refreshCtx); err != nil {
		return nil, err
	}

	if registry.SelectedID() == "" {
		if len(registry.Devices()) == 0 {
			return nil, errors.New(errors.ErrDevice,
				"No device attached",
				"Connect a device and check 'adb devices' sees it")
		}
		return nil, errors.New(errors.ErrDevice,
			"Several devices attached, none selected",
			"Disconnect the extras, or set ANDROID_SERIAL for adb")
	}

	return registry, nil
}

// devicesCommand enumerates and prints devices for one family.
func devicesCommand(familyName string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	registry, err := newRegistry(cfg, familyName)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()
	refreshCtx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	devices, err := registry.Refresh(refreshCtx)
	if err != nil {
		return err
	}

	if len(devices) == 0 {
		fmt.Println(ui.MutedStyle.Render("No " + familyName + " devices attached."))
		return nil
	}

	selected := registry.SelectedID()
	for _, d := range devices {
		glyph := ui.MutedStyle.Render(" ")
		if d.ID == selected {
			glyph = ui.LabelStyle.Render("*")
		}

		line := fmt.Sprintf("%s %-24s %-12s", glyph, d.ID, d.Status)
		if model, ok := d.Attrs["model"]; ok {
			line += " " + ui.MutedStyle.Render(model)
		}
		fmt.Println(line)
	}

	summary := fmt.Sprintf("\n%d %s attached", len(devices),
		util.Pluralize(len(devices), "device", "devices"))
	if selected != "" {
		summary += ", * selected"
	}
	fmt.Println(ui.MutedStyle.Render(summary))
	return nil
}
