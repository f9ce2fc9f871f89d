package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/ohmytoolbox/tbx/internal/driver"
	"github.com/ohmytoolbox/tbx/internal/errors"
	"github.com/ohmytoolbox/tbx/internal/ui"
)

// flashCommand writes an image to a partition via fastboot, streaming the
// tool's progress lines as they arrive.
func flashCommand(partition, image string, yes bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := os.Stat(image); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Image file not found: "+image,
			"Check the path to the image you want to flash")
	}

	ctx, stop := signalContext()
	defer stop()

	registry, err := newRegistry(cfg, "fastboot")
	if err != nil {
		return err
	}
	if _, err := registry.Refresh(ctx); err != nil {
		return err
	}
	if registry.SelectedID() == "" {
		return errors.New(errors.ErrDevice,
			"No fastboot device selected",
			"Boot the device into the bootloader and check 'fastboot devices'")
	}

	if !yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New(errors.ErrConfig,
				"Refusing to flash without confirmation on a non-interactive terminal",
				"Pass --yes to confirm the flash")
		}

		var confirmed bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Flash %s to partition '%s' on %s?", image, partition, registry.SelectedID())).
				Description("This overwrites the partition and cannot be undone.").
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get confirmation", "Pass --yes to skip the prompt")
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	gateway := driver.NewGateway(cfg.Tools.Fastboot)
	args := []string{"-s", registry.SelectedID(), "flash", partition, image}

	res, err := gateway.RunStreaming(ctx, args, func(line string) {
		if driver.IsErrorLine(line) {
			fmt.Println(ui.ErrorStyle.Render(line))
		} else {
			fmt.Println(line)
		}
	})
	if err != nil {
		return err
	}

	if !res.Success {
		return errors.New(errors.ErrExec,
			"Flashing "+partition+" failed",
			res.Error)
	}

	fmt.Println(ui.LabelStyle.Render("Flashed " + partition + " successfully."))
	return nil
}
