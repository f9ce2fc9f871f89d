package cli

import (
	"fmt"
	"strings"

	"github.com/ohmytoolbox/tbx/internal/driver"
	"github.com/ohmytoolbox/tbx/internal/ui"
)

// logcatCommand streams device logs until interrupted. Ctrl-C cancels the
// context, which kills the child adb; partial output is not an error.
func logcatCommand(filter string) error {
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

	gateway := driver.NewGateway(cfg.Tools.ADB)
	args := []string{"-s", registry.SelectedID(), "logcat"}

	_, err = gateway.RunStreaming(ctx, args, func(line string) {
		if filter != "" && !strings.Contains(line, filter) {
			return
		}
		if driver.IsErrorLine(line) {
			fmt.Println(ui.ErrorStyle.Render(line))
		} else {
			fmt.Println(line)
		}
	})
	return err
}
