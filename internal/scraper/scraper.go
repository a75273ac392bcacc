package scraper

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/frontdesk-watch/internal/appointment"
	"golang.org/x/net/html"
)

const (
	// UserAgent mimics a modern Firefox on Linux so the reservation site
	// does not reject the request as a non-browser client.
	UserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/117.0"

	// AcceptLanguage asks for the English version of the page so the date
	// headings match the expected layout.
	AcceptLanguage = "en-US,en;q=0.9"

	Timeout = 30 * time.Second

	// NoSlotsPhrase marks a fully booked date. The match is an exact,
	// case-sensitive substring test.
	NoSlotsPhrase = "No more available time slots"

	// yearToken pre-filters headings before the full date parse. Decade
	// scoped on purpose: it reproduces the page's observed behavior and is
	// a known fragility.
	yearToken = "202"
)

// Scraper fetches and parses a FrontDesk time selection page.
type Scraper struct {
	client *http.Client
	url    string
}

// New creates a Scraper for the given time selection URL.
func New(url string) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url: url,
	}
}

// URL returns the page URL this scraper polls.
func (s *Scraper) URL() string {
	return s.url
}

// StatusError reports a non-success HTTP response from the page.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

// Check fetches the page and returns the availability found on or before
// the cutoff date. It performs exactly one GET; retrying is the caller's
// responsibility.
func (s *Scraper) Check(cutoff time.Time) ([]appointment.Record, error) {
	req, err := http.NewRequest("GET", s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept-Language", AcceptLanguage)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	return ParseAvailability(resp.Body, cutoff)
}

// ParseAvailability extracts availability records from the page markup.
//
// Every h2/h3/h4 heading whose text parses as a full date ("Wednesday
// August 27, 2025") on or before cutoff is paired with the nearest text
// node following it in document order. Headings without a date, dates past
// the cutoff, missing or empty status text, and status text containing
// NoSlotsPhrase are all skipped silently. Records come back in document
// order; duplicate dates are preserved as independent occurrences.
func ParseAvailability(r io.Reader, cutoff time.Time) ([]appointment.Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	records := make([]appointment.Record, 0)

	doc.Find("h2, h3, h4").Each(func(i int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if !strings.Contains(text, yearToken) {
			return
		}

		date, err := appointment.ParseHeadingDate(text)
		if err != nil {
			// Not a date heading, e.g. abbreviated month names.
			return
		}

		if date.After(cutoff) {
			return
		}

		status, ok := followingText(sel)
		if !ok {
			return
		}
		status = strings.TrimSpace(status)
		if status == "" {
			return
		}

		if strings.Contains(status, NoSlotsPhrase) {
			return
		}

		records = append(records, appointment.Record{Date: date, Status: status})
	})

	return records, nil
}

// followingText returns the raw contents of the first text node after the
// heading's subtree in document order. The status may sit in a sibling div,
// a span, or bare text; only the first text node counts, even when the
// status spans several nodes.
func followingText(sel *goquery.Selection) (string, bool) {
	if len(sel.Nodes) == 0 {
		return "", false
	}
	for n := skipSubtree(sel.Nodes[0]); n != nil; n = nextNode(n) {
		if n.Type == html.TextNode {
			return n.Data, true
		}
	}
	return "", false
}

// skipSubtree returns the next node in document order that is not a
// descendant of n.
func skipSubtree(n *html.Node) *html.Node {
	for n != nil {
		if n.NextSibling != nil {
			return n.NextSibling
		}
		n = n.Parent
	}
	return nil
}

// nextNode advances one step in document (pre-order) traversal.
func nextNode(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	return skipSubtree(n)
}
