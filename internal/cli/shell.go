package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/ohmytoolbox/tbx/internal/driver"
	"github.com/ohmytoolbox/tbx/internal/errors"
	"github.com/ohmytoolbox/tbx/internal/util"
)

// shellCommand runs an adb shell command against the selected device.
func shellCommand(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	registry, err := adbRegistry(ctx, cfg)
	if err != nil {
		return err
	}

	// adb re-joins shell arguments for the device's shell; quote the ones
	// that would be re-split or expanded there.
	gateway := driver.NewGateway(cfg.Tools.ADB)
	full := append([]string{"-s", registry.SelectedID(), "shell"}, util.QuoteArgs(args)...)

	res, err := gateway.Run(ctx, full...)
	if err != nil {
		return err
	}

	if res.Stdout != "" {
		fmt.Print(res.Stdout)
	}
	if res.Stderr != "" {
		fmt.Fprint(os.Stderr, res.Stderr)
	}

	if !res.Success {
		return errors.New(errors.ErrExec,
			"Command failed on device: "+strings.Join(args, " "),
			strings.TrimSpace(res.Stderr))
	}
	return nil
}
