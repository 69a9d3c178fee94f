package scenario

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// Sink is the shared scenario log: an append-only file echoed to the
// console. Lines from concurrent sessions are serialized; write
// errors are swallowed so logging can never fail a scenario.
type Sink struct {
	mu   sync.Mutex
	out  io.Writer
	file *os.File
	now  func() time.Time
}

// Open returns a sink appending to the log file at path and echoing
// every line to console.
func Open(path string, console io.Writer) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open scenario log: %w", err)
	}
	return &Sink{out: io.MultiWriter(f, console), file: f, now: time.Now}, nil
}

// NewSink returns a sink writing to w only, with no backing file.
func NewSink(w io.Writer) *Sink {
	return &Sink{out: w, now: time.Now}
}

// Close releases the backing file, if any.
func (s *Sink) Close() error {
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}

// Scenario appends one outcome line:
//
//	[2025-01-02 15:04:05] Scenario: Registration | Status: SUCCESS | Details: User: test_ab@example.com
func (s *Sink) Scenario(name string, status Status, details string) {
	s.line(fmt.Sprintf("Scenario: %s | Status: %s | Details: %s", name, status, details))
}

// Infof appends a run-level summary line.
func (s *Sink) Infof(format string, args ...any) {
	s.line("INFO: " + fmt.Sprintf(format, args...))
}

// Errorf appends a run-level error line.
func (s *Sink) Errorf(format string, args ...any) {
	s.line("ERROR: " + fmt.Sprintf(format, args...))
}

func (s *Sink) line(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "[%s] %s\n", s.now().Format(timestampLayout), msg)
}

// Logger binds the shared sink to one session's counters. Each Log
// call emits exactly one line and updates the counters exactly once.
type Logger struct {
	sink  *Sink
	stats *Stats
}

// NewLogger returns a logger recording outcomes for a single session.
func NewLogger(sink *Sink, stats *Stats) *Logger {
	return &Logger{sink: sink, stats: stats}
}

// Log records one scenario execution.
func (l *Logger) Log(name string, status Status, details string) {
	l.sink.Scenario(name, status, details)
	l.stats.CountOutcome(status)
}

// Stats exposes the session counters behind this logger.
func (l *Logger) Stats() *Stats {
	return l.stats
}
