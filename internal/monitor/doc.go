// Package monitor runs the polling loop: fetch the FrontDesk page, parse it
// for availability, notify, log, sleep, repeat.
//
// The loop is fixed-delay and strictly sequential. A cycle that fails at
// fetch or parse is logged and abandoned; the next cycle proceeds on
// schedule. Nothing short of context cancellation stops the loop.
package monitor
