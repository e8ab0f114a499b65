package engine

import (
	"log/slog"

	"github.com/gen2brain/beeep"
)

// Notifier delivers desktop notifications. Delivery is best effort.
type Notifier interface {
	// Alert raises an urgent notification.
	Alert(title, body string)
	// Notify raises an informational notification.
	Notify(title, body string)
}

// DesktopNotifier sends notifications through the OS notification service.
type DesktopNotifier struct {
	logger *slog.Logger
}

// NewDesktopNotifier returns a Notifier backed by beeep.
func NewDesktopNotifier(logger *slog.Logger) *DesktopNotifier {
	return &DesktopNotifier{logger: logger}
}

func (n *DesktopNotifier) Alert(title, body string) {
	if err := beeep.Alert(title, body, ""); err != nil {
		n.logger.Debug("alert not delivered", "title", title, "err", err)
	}
}

func (n *DesktopNotifier) Notify(title, body string) {
	if err := beeep.Notify(title, body, ""); err != nil {
		n.logger.Debug("notification not delivered", "title", title, "err", err)
	}
}
