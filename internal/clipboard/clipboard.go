// Package clipboard copies text to the system clipboard and tells the
// user how it went.
package clipboard

import (
	"log/slog"

	"github.com/atotto/clipboard"

	"github.com/alumni-network/donation-client/internal/notify"
)

// Writer stores text on a clipboard.
type Writer interface {
	WriteText(text string) error
}

// System writes to the OS clipboard.
type System struct{}

// WriteText implements Writer.
func (System) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

// Copier writes text and reports the outcome as a banner.
type Copier struct {
	w        Writer
	notifier notify.Notifier
	logger   *slog.Logger
}

// New returns a Copier. A nil writer means the system clipboard.
func New(w Writer, n notify.Notifier, logger *slog.Logger) *Copier {
	if w == nil {
		w = System{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Copier{w: w, notifier: n, logger: logger}
}

// Copy writes text in the background. done, when non-nil, receives the
// write error (nil on success) once the outcome has been reported.
func (c *Copier) Copy(text string, done func(error)) {
	go func() {
		err := c.CopySync(text)
		if done != nil {
			done(err)
		}
	}()
}

// CopySync writes text and reports the outcome before returning.
// Failures are logged and surfaced, not swallowed.
func (c *Copier) CopySync(text string) error {
	if err := c.w.WriteText(text); err != nil {
		c.logger.Error("failed to copy", "err", err)
		c.notifier.Notify("Could not copy to clipboard", notify.Error)
		return err
	}
	c.notifier.Notify("Copied to clipboard!", notify.Success)
	return nil
}
