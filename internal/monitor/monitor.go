package monitor

import (
	"context"
	"time"

	"github.com/pfrederiksen/frontdesk-watch/internal/appointment"
	"github.com/pfrederiksen/frontdesk-watch/internal/logger"
	"github.com/pfrederiksen/frontdesk-watch/internal/notifier"
	"github.com/pfrederiksen/frontdesk-watch/internal/scraper"
)

// Monitor polls one FrontDesk page for availability up to a cutoff date.
type Monitor struct {
	scraper   *scraper.Scraper
	notifiers []notifier.Notifier
	cutoff    time.Time
	interval  time.Duration
	log       *logger.Logger
}

// New creates a Monitor. Notifiers may be empty, in which case findings are
// only logged.
func New(sc *scraper.Scraper, notifiers []notifier.Notifier, cutoff time.Time, interval time.Duration, log *logger.Logger) *Monitor {
	return &Monitor{
		scraper:   sc,
		notifiers: notifiers,
		cutoff:    cutoff,
		interval:  interval,
		log:       log,
	}
}

// Run polls until ctx is cancelled. Each cycle runs to completion before
// the interval wait starts, so cycles never overlap and the delay between
// cycles is the full interval regardless of fetch latency.
func (m *Monitor) Run(ctx context.Context) {
	m.log.Info("monitoring appointments", logger.Fields{
		"url":      m.scraper.URL(),
		"until":    m.cutoff.Format(appointment.CutoffLayout),
		"interval": m.interval.String(),
	})

	for {
		m.runCycle()

		select {
		case <-ctx.Done():
			m.log.Info("monitoring stopped", nil)
			return
		case <-time.After(m.interval):
		}
	}
}

// runCycle performs one fetch-parse-notify-log pass. Failures never
// propagate; a bad cycle must not terminate monitoring.
func (m *Monitor) runCycle() {
	logger.IncrCounter("cycles")

	start := time.Now()
	records, err := m.scraper.Check(m.cutoff)
	logger.RecordTiming("check", time.Since(start))

	if err != nil {
		logger.IncrCounter("cycles.failed")
		m.log.Error("error while checking appointments", logger.Fields{
			"url": m.scraper.URL(),
		}, err)
		return
	}

	res := &appointment.CheckResult{
		CheckedAt: time.Now(),
		URL:       m.scraper.URL(),
		Cutoff:    m.cutoff,
		Records:   records,
	}

	if !res.HasAvailability() {
		m.log.Info("no appointments available", logger.Fields{
			"until": m.cutoff.Format(appointment.CutoffLayout),
		})
		return
	}

	dates := make([]string, 0, len(records))
	for _, rec := range records {
		dates = append(dates, rec.FormatDate())
	}
	m.log.Info("found available appointments", logger.Fields{
		"count": len(records),
		"dates": dates,
	})

	for _, n := range m.notifiers {
		if err := n.Notify(res); err != nil {
			// Delivery failure never fails the cycle.
			m.log.Error("notification failed", logger.Fields{
				"notifier": n.Name(),
			}, err)
			continue
		}
		m.log.Info("notification sent", logger.Fields{
			"notifier": n.Name(),
		})
	}
}
