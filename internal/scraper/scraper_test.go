package scraper

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/frontdesk-watch/internal/appointment"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var testCutoff = date(2025, time.August, 28)

func TestParseAvailability_Fixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/frontdesk.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	records, err := ParseAvailability(strings.NewReader(string(data)), testCutoff)
	if err != nil {
		t.Fatalf("ParseAvailability failed: %v", err)
	}

	want := []appointment.Record{
		{Date: date(2025, time.August, 27), Status: "10:00–12:00, 14:00–16:00"},
		{Date: date(2025, time.August, 27), Status: "16:30–18:00"},
		{Date: date(2025, time.August, 28), Status: "09:30–11:30"},
	}

	if !reflect.DeepEqual(records, want) {
		t.Errorf("ParseAvailability() = %+v, want %+v", records, want)
	}
}

func TestParseAvailability_Idempotent(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/frontdesk.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	first, err := ParseAvailability(strings.NewReader(string(data)), testCutoff)
	if err != nil {
		t.Fatalf("first parse failed: %v", err)
	}
	second, err := ParseAvailability(strings.NewReader(string(data)), testCutoff)
	if err != nil {
		t.Fatalf("second parse failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("parsing the same markup twice differed: %+v vs %+v", first, second)
	}
}

func TestParseAvailability(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []appointment.Record
	}{
		{
			name: "date with open slots",
			html: `<h3>Wednesday August 27, 2025</h3><div>10:00–12:00, 14:00–16:00</div>`,
			want: []appointment.Record{
				{Date: date(2025, time.August, 27), Status: "10:00–12:00, 14:00–16:00"},
			},
		},
		{
			name: "fully booked date",
			html: `<h3>Wednesday August 27, 2025</h3><div>No more available time slots for this date.</div>`,
			want: []appointment.Record{},
		},
		{
			name: "abbreviated heading is not a date",
			html: `<h3>Mon Aug 25, 2025</h3><div>13:00–15:00</div>`,
			want: []appointment.Record{},
		},
		{
			name: "date past the cutoff",
			html: `<h3>Friday September 5, 2025</h3><div>08:00–10:00</div>`,
			want: []appointment.Record{},
		},
		{
			name: "date equal to the cutoff is kept",
			html: `<h3>Thursday August 28, 2025</h3><div>09:30–11:30</div>`,
			want: []appointment.Record{
				{Date: date(2025, time.August, 28), Status: "09:30–11:30"},
			},
		},
		{
			name: "heading without following text",
			html: `<h3>Wednesday August 27, 2025</h3>`,
			want: []appointment.Record{},
		},
		{
			name: "heading without a year token",
			html: `<h2>Opening hours</h2><div>Monday to Friday</div>`,
			want: []appointment.Record{},
		},
		{
			name: "year token without a parseable date",
			html: `<h2>Candlelight ceremonies 2025</h2><div>Evenings only</div>`,
			want: []appointment.Record{},
		},
		{
			name: "status spanning several nodes captures only the first",
			html: `<h3>Wednesday August 27, 2025</h3><span><b>16:30–18:00</b> and later</span>`,
			want: []appointment.Record{
				{Date: date(2025, time.August, 27), Status: "16:30–18:00"},
			},
		},
		{
			name: "whitespace-only following text",
			html: `<h3>Wednesday August 27, 2025</h3>   <div>10:00</div>`,
			want: []appointment.Record{},
		},
		{
			name: "nested heading text still parses",
			html: `<h3><span>Wednesday August 27, 2025</span></h3><div>10:00–12:00</div>`,
			want: []appointment.Record{
				{Date: date(2025, time.August, 27), Status: "10:00–12:00"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseAvailability(strings.NewReader(tt.html), testCutoff)
			if err != nil {
				t.Fatalf("ParseAvailability failed: %v", err)
			}
			if !reflect.DeepEqual(records, tt.want) {
				t.Errorf("ParseAvailability() = %+v, want %+v", records, tt.want)
			}
		})
	}
}

func TestCheck_SendsBrowserHeaders(t *testing.T) {
	var gotUA, gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.Write([]byte(`<h3>Wednesday August 27, 2025</h3><div>10:00–12:00</div>`))
	}))
	defer server.Close()

	s := New(server.URL)
	records, err := s.Check(testCutoff)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if gotUA != UserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, UserAgent)
	}
	if gotLang != AcceptLanguage {
		t.Errorf("Accept-Language = %q, want %q", gotLang, AcceptLanguage)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record, got %d", len(records))
	}
}

func TestCheck_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	s := New(server.URL)
	_, err := s.Check(testCutoff)
	if err == nil {
		t.Fatal("expected error for HTTP 503, got nil")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T: %v", err, err)
	}
	if statusErr.Code != http.StatusServiceUnavailable {
		t.Errorf("StatusError.Code = %d, want %d", statusErr.Code, http.StatusServiceUnavailable)
	}
}

func TestCheck_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	s := New(server.URL)
	_, err := s.Check(testCutoff)
	if err == nil {
		t.Fatal("expected error for refused connection, got nil")
	}
}
