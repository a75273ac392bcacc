package appointment

import (
	"fmt"
	"time"
)

const (
	// HeadingLayout is the exact date format used by FrontDesk page headings,
	// e.g. "Wednesday August 27, 2025". Headings that do not parse against
	// this layout are not appointment dates.
	HeadingLayout = "Monday January 2, 2006"

	// CutoffLayout is the format of the operator-supplied cutoff date.
	CutoffLayout = "2006-01-02"
)

// Record represents a single date judged to have open appointment slots.
type Record struct {
	// Date is the calendar date from the page heading. Only the date
	// component is meaningful.
	Date time.Time `json:"date"`

	// Status is the trimmed text that followed the date heading, typically
	// the available time ranges.
	Status string `json:"status"`
}

// FormatDate renders the record's date in the page heading format.
func (r Record) FormatDate() string {
	return r.Date.Format(HeadingLayout)
}

// CheckResult is the outcome of one fetch-parse pass. It is ephemeral:
// logged and handed to the notifiers, never persisted.
type CheckResult struct {
	CheckedAt time.Time `json:"checked_at"`
	URL       string    `json:"url"`
	Cutoff    time.Time `json:"cutoff"`
	Records   []Record  `json:"records"`
}

// HasAvailability reports whether the pass found any open slots.
func (c *CheckResult) HasAvailability() bool {
	return len(c.Records) > 0
}

// ParseHeadingDate parses a page heading like "Wednesday August 27, 2025".
// The match is exact: abbreviated weekday or month names, extra text, or any
// other deviation fails.
func ParseHeadingDate(text string) (time.Time, error) {
	t, err := time.Parse(HeadingLayout, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing heading date %q: %w", text, err)
	}
	return t, nil
}

// ParseCutoff parses an operator-supplied cutoff date in YYYY-MM-DD form.
func ParseCutoff(s string) (time.Time, error) {
	t, err := time.Parse(CutoffLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cutoff date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// DefaultCutoff returns the cutoff used when the operator supplies none:
// 30 days from now, truncated to a date.
func DefaultCutoff(now time.Time) time.Time {
	d := now.AddDate(0, 0, 30)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
