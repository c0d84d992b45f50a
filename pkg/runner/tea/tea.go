package teaui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	appsvc "tableflip.dev/treedrag/pkg/app"
	tuiapp "tableflip.dev/treedrag/pkg/tui/app"
)

// UI launches the Bubble Tea interface over Service.
type UI struct {
	Service *appsvc.Service
	// LogFile receives one line per move step when set.
	LogFile string
}

// Do runs the UI until the user quits.
func (u *UI) Do(_ context.Context) error {
	if u.Service == nil {
		return errors.New("can not start ui, no service")
	}

	var logger io.Writer
	if u.LogFile != "" {
		f, err := os.OpenFile(u.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = f
	}
	return tuiapp.Run(u.Service, logger)
}
