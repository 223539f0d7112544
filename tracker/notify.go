package tracker

import (
	"github.com/gen2brain/beeep"
	"github.com/pterm/pterm"
)

// Notifier surfaces session warnings and notifications to the user.
type Notifier interface {
	// Notify sends a best-effort desktop notification.
	Notify(title, msg string)
	// Warn prints a user-visible warning.
	Warn(msg string)
}

// DesktopNotifier sends desktop notifications through the system
// notification daemon and prints warnings to the terminal.
type DesktopNotifier struct {
	Enabled bool
}

func (n DesktopNotifier) Notify(title, msg string) {
	if !n.Enabled {
		return
	}

	err := beeep.Notify(title, msg, "")
	if err != nil {
		pterm.Error.Printfln("unable to display notification: %v", err)
	}
}

func (n DesktopNotifier) Warn(msg string) {
	pterm.Warning.Println(msg)
}
