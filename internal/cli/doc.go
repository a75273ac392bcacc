// Package cli implements the command-line interface for frontdesk-watch.
//
// The cli package provides the Cobra-based CLI that validates the polling
// options (--url, --until, --interval), assembles the notification channels
// from the environment, and hands control to the monitor loop. Only
// argument errors are fatal; everything after the loop starts is logged and
// retried on the next cycle.
package cli
