package notifier

import (
	"github.com/pfrederiksen/frontdesk-watch/internal/appointment"
)

// Notifier defines the interface for delivering availability notifications
type Notifier interface {
	// Notify delivers a summary of the given check result. Called only when
	// the result contains at least one record.
	Notify(res *appointment.CheckResult) error

	// Name identifies the channel in log output.
	Name() string
}
