// Package logger provides leveled structured JSON logging for the monitor.
//
// Normal status lines (DEBUG, INFO) go to one writer and warnings/errors to
// another, so the process can keep stdout for status and stderr for faults.
// Log output is the only persisted record of a run; nothing is written to
// disk.
//
// Example usage:
//
//	logger.Info("availability found", logger.Fields{
//	    "count": 2,
//	    "until": "2025-08-28",
//	})
//
//	logger.Error("check failed", logger.Fields{"url": url}, err)
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logger writes structured log entries, routing by severity.
type Logger struct {
	minLevel Level
	out      io.Writer // DEBUG, INFO
	errOut   io.Writer // WARN, ERROR
}

// Fields represents structured log fields
type Fields map[string]interface{}

// LogEntry represents a single log entry
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

var defaultLogger *Logger

func init() {
	defaultLogger = New(LevelInfo, os.Stdout, os.Stderr)
}

// New creates a logger with the specified minimum level. Status messages go
// to out, warnings and errors to errOut. Messages below the minimum level
// are discarded.
func New(level Level, out, errOut io.Writer) *Logger {
	return &Logger{
		minLevel: level,
		out:      out,
		errOut:   errOut,
	}
}

// SetDefault sets the default package-level logger used by the convenience
// functions (Debug, Info, Warn, Error).
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// log writes a structured log entry
func (l *Logger) log(level Level, message string, fields Fields, err error) {
	if !l.shouldLog(level) {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   message,
		Fields:    fields,
	}

	if err != nil {
		entry.Error = err.Error()
	}

	w := l.out
	if level == LevelWarn || level == LevelError {
		w = l.errOut
	}

	data, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		// Fallback to plain text if JSON marshal fails
		fmt.Fprintf(w, "[%s] %s: %s (marshal error: %v)\n",
			entry.Timestamp, entry.Level, entry.Message, marshalErr)
		return
	}

	fmt.Fprintln(w, string(data))
}

// shouldLog determines if a message should be logged based on level
func (l *Logger) shouldLog(level Level) bool {
	levels := map[Level]int{
		LevelDebug: 0,
		LevelInfo:  1,
		LevelWarn:  2,
		LevelError: 3,
	}
	return levels[level] >= levels[l.minLevel]
}

// Debug logs detailed diagnostic information.
func (l *Logger) Debug(message string, fields Fields) {
	l.log(LevelDebug, message, fields, nil)
}

// Info logs general operational information.
func (l *Logger) Info(message string, fields Fields) {
	l.log(LevelInfo, message, fields, nil)
}

// Warn logs a potential issue that does not prevent operation.
func (l *Logger) Warn(message string, fields Fields) {
	l.log(LevelWarn, message, fields, nil)
}

// Error logs a failure, with an optional error object.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Package-level convenience functions using default logger

// Debug logs a debug message with the default logger
func Debug(message string, fields Fields) {
	defaultLogger.Debug(message, fields)
}

// Info logs an info message with the default logger
func Info(message string, fields Fields) {
	defaultLogger.Info(message, fields)
}

// Warn logs a warning message with the default logger
func Warn(message string, fields Fields) {
	defaultLogger.Warn(message, fields)
}

// Error logs an error message with the default logger
func Error(message string, fields Fields, err error) {
	defaultLogger.Error(message, fields, err)
}

// Metrics tracks per-run counters and timings. All operations are
// thread-safe. The monitor records poll cycles, failures, and fetch
// durations here; nothing is exported off-process.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	timings  map[string][]time.Duration
}

var defaultMetrics *Metrics

func init() {
	defaultMetrics = NewMetrics()
}

// NewMetrics creates an empty metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]int64),
		timings:  make(map[string][]time.Duration),
	}
}

// IncrCounter increments a counter by 1, initializing it if absent.
func (m *Metrics) IncrCounter(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
}

// RecordTiming records a duration measurement.
func (m *Metrics) RecordTiming(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings[name] = append(m.timings[name], duration)
}

// Counter returns the current value of a counter.
func (m *Metrics) Counter(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// GetSnapshot returns a copy of all counters plus timing statistics
// (count, total, average, min, max) per timing name.
func (m *Metrics) GetSnapshot() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make(map[string]interface{})

	counters := make(map[string]int64)
	for k, v := range m.counters {
		counters[k] = v
	}
	snapshot["counters"] = counters

	timings := make(map[string]map[string]interface{})
	for name, durations := range m.timings {
		if len(durations) == 0 {
			continue
		}

		var total time.Duration
		min := durations[0]
		max := durations[0]

		for _, d := range durations {
			total += d
			if d < min {
				min = d
			}
			if d > max {
				max = d
			}
		}

		timings[name] = map[string]interface{}{
			"count":   len(durations),
			"total":   total.String(),
			"average": (total / time.Duration(len(durations))).String(),
			"min":     min.String(),
			"max":     max.String(),
		}
	}
	snapshot["timings"] = timings

	return snapshot
}

// Package-level metrics functions using the default tracker

// IncrCounter increments a counter on the default metrics tracker.
func IncrCounter(name string) {
	defaultMetrics.IncrCounter(name)
}

// RecordTiming records a timing on the default metrics tracker.
func RecordTiming(name string, duration time.Duration) {
	defaultMetrics.RecordTiming(name, duration)
}

// GetMetricsSnapshot returns a snapshot of all metrics from the default tracker.
func GetMetricsSnapshot() map[string]interface{} {
	return defaultMetrics.GetSnapshot()
}
