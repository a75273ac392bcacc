// Package notifier delivers availability summaries to the operator.
//
// Notifications go out through a common Notifier interface with three
// implementations: authenticated SMTP mail (the primary channel), the
// Telegram Bot API, and a dry-run printer. Delivery failures are reported
// to the caller but are never fatal to a poll cycle.
package notifier
