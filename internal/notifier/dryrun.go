package notifier

import (
	"fmt"
	"io"
	"os"

	"github.com/pfrederiksen/frontdesk-watch/internal/appointment"
)

// DryRunNotifier prints what would be sent without dispatching anything.
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a dry-run notifier writing to stdout.
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{out: os.Stdout}
}

// Name implements Notifier.
func (n *DryRunNotifier) Name() string {
	return "dry-run"
}

// Notify prints the message that would be delivered.
func (n *DryRunNotifier) Notify(res *appointment.CheckResult) error {
	fmt.Fprintf(n.out, "--- %s ---\n", Subject)
	fmt.Fprint(n.out, Summary(res))
	fmt.Fprintln(n.out)
	return nil
}
