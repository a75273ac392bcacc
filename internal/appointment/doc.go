// Package appointment provides the types and date handling for FrontDesk
// availability monitoring.
//
// An appointment date is a calendar date extracted from a page heading in the
// fixed form "Wednesday August 27, 2025". The package parses and formats that
// layout, parses operator-supplied cutoff dates, and defines the Record and
// CheckResult types that flow from the scraper to the notifiers.
package appointment
