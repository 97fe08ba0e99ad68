// Package clipboard copies generated secrets to the system clipboard.
//
// Copying is best effort: a missing clipboard utility or a headless session
// must never fail a generation, so Copy reports problems as a warning.
package clipboard

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no system clipboard can be used.
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer places text on a clipboard.
type Writer interface {
	WriteText(text string) error
}

// System writes to the operating system clipboard through xclip, xsel,
// wl-copy, pbcopy or the Windows API.
type System struct{}

// WriteText implements Writer.
func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard utility found", ErrUnavailable)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// Copy writes text with w and reports whether it succeeded.
// Failures are logged at warning level; the text itself is never logged.
func Copy(w Writer, logger *slog.Logger, text string) bool {
	if logger == nil {
		logger = slog.Default()
	}
	if err := w.WriteText(text); err != nil {
		logger.Warn("failed to copy to clipboard", "error", err)
		return false
	}
	logger.Debug("copied to clipboard", "characters", len([]rune(text)))
	return true
}
