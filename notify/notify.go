// Package notify carries the user-visible side channels: transient notices
// and the best-effort message cues (desktop notification, sound). Cues are
// explicitly fallible; callers log the error and move on.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"chat-client/repositories"
)

// Noticer surfaces a transient, non-fatal notice to the user.
type Noticer interface {
	Notice(text string)
}

// LogNoticer is the headless fallback: notices land in the log only.
type LogNoticer struct {
	Log *slog.Logger
}

func (n LogNoticer) Notice(text string) {
	n.Log.Warn(text)
}

// Notifier produces the incoming-message cues.
type Notifier struct {
	log      *slog.Logger
	settings repositories.ISettingsRepository
	out      io.Writer
}

func NewNotifier(log *slog.Logger, settings repositories.ISettingsRepository, out io.Writer) *Notifier {
	return &Notifier{log: log, settings: settings, out: out}
}

// Desktop raises an OS-level notification through notify-send when present.
func (n *Notifier) Desktop(title, body string) error {
	bin, err := exec.LookPath("notify-send")
	if err != nil {
		return fmt.Errorf("no desktop notifier available: %w", err)
	}
	return exec.Command(bin, title, body).Run()
}

// Sound emits the terminal bell unless the user disabled the cue.
func (n *Notifier) Sound() error {
	if !n.settings.SoundEnabled() {
		return nil
	}
	_, err := fmt.Fprint(n.out, "\a")
	return err
}
