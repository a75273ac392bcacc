package notifier

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/frontdesk-watch/internal/appointment"
)

// Subject is the mail subject line for availability notifications.
const Subject = "Appointment Slot Found!"

// Summary renders a check result as the plain-text message body shared by
// all channels: a header naming the cutoff and URL, then one line per
// record in document order.
func Summary(res *appointment.CheckResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Available appointments up to %s were found at %s:\n\n",
		res.Cutoff.Format(appointment.CutoffLayout), res.URL)

	for _, rec := range res.Records {
		status := rec.Status
		if status == "" {
			// Should not happen, the parser drops empty statuses.
			status = "Available"
		}
		fmt.Fprintf(&b, "- %s: %s\n", rec.FormatDate(), status)
	}

	return b.String()
}
