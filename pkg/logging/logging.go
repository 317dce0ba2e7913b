// Package logging provides the leveled logger used to surface build
// diagnostics. Messages go through the standard log package, optionally into
// a rotating file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/natefinch/lumberjack"
)

// Mode is the minimum severity a logger writes.
type Mode uint

const (
	DebugMode Mode = iota
	InfoMode
	WarningMode
	ErrorMode
	SilentMode
)

// Logger records messages at different severities.
type Logger interface {
	// Debugf formats its arguments analogous to fmt.Printf and records the text
	// as a log message at Debug level.
	Debugf(format string, args ...interface{})

	// Infof is like Debugf, but at Info level.
	Infof(format string, args ...interface{})

	// Warningf is like Debugf, but at Warning level.
	Warningf(format string, args ...interface{})

	// Errorf is like Debugf, but at Error level.
	Errorf(format string, args ...interface{})
}

// Config selects where and how much a logger writes.
type Config struct {
	// Logfile is the path of a rotating log file; empty logs to stderr
	Logfile string `yaml:"logfile" toml:"logfile"`

	// MaxSize is the size in megabytes at which the log file rotates
	MaxSize int `yaml:"maxLogSize" toml:"maxLogSize"`

	// MaxAge is the number of days rotated files are kept
	MaxAge int `yaml:"maxLogAge" toml:"maxLogAge"`

	// Verbose enables Debug messages
	Verbose bool `yaml:"verbose" toml:"verbose"`
}

// StdLogger writes through a *log.Logger, prefixing the severity.
type StdLogger struct {
	mode Mode
	out  *log.Logger
	file *lumberjack.Logger
}

// New creates a logger from cfg. When a log file is configured, output is
// written to it and rotated by size.
func New(cfg Config) *StdLogger {
	var w io.Writer = os.Stderr
	var file *lumberjack.Logger
	if cfg.Logfile != "" {
		file = &lumberjack.Logger{
			Filename: cfg.Logfile,
			MaxSize:  cfg.MaxSize, // megabytes
			MaxAge:   cfg.MaxAge,  // days
		}
		w = file
	}
	mode := InfoMode
	if cfg.Verbose {
		mode = DebugMode
	}
	return &StdLogger{
		mode: mode,
		out:  log.New(w, "", log.LstdFlags),
		file: file,
	}
}

// SetMode sets the severity required for a message to be written.
func (l *StdLogger) SetMode(m Mode) {
	l.mode = m
}

func (l *StdLogger) printf(m Mode, level, format string, args ...interface{}) {
	if l.mode > m {
		return
	}
	l.out.Printf(" "+level+" "+format, args...)
}

func (l *StdLogger) Debugf(format string, args ...interface{}) {
	l.printf(DebugMode, "DEBUG", format, args...)
}

func (l *StdLogger) Infof(format string, args ...interface{}) {
	l.printf(InfoMode, "INFO", format, args...)
}

func (l *StdLogger) Warningf(format string, args ...interface{}) {
	l.printf(WarningMode, "WARNING", format, args...)
}

func (l *StdLogger) Errorf(format string, args ...interface{}) {
	l.printf(ErrorMode, "ERROR", format, args...)
}

// Close closes the log file, if any.
func (l *StdLogger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Discard is a Logger that drops every message.
var Discard Logger = discard{}

type discard struct{}

func (discard) Debugf(string, ...interface{})   {}
func (discard) Infof(string, ...interface{})    {}
func (discard) Warningf(string, ...interface{}) {}
func (discard) Errorf(string, ...interface{})   {}

// Entry is a message kept by a Recorder.
type Entry struct {
	Level   string
	Message string
}

// Recorder keeps every message in memory. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) add(level, format string, args ...interface{}) {
	r.mu.Lock()
	r.entries = append(r.entries, Entry{Level: level, Message: fmt.Sprintf(format, args...)})
	r.mu.Unlock()
}

func (r *Recorder) Debugf(format string, args ...interface{})   { r.add("DEBUG", format, args...) }
func (r *Recorder) Infof(format string, args ...interface{})    { r.add("INFO", format, args...) }
func (r *Recorder) Warningf(format string, args ...interface{}) { r.add("WARNING", format, args...) }
func (r *Recorder) Errorf(format string, args ...interface{})   { r.add("ERROR", format, args...) }

// Entries returns a copy of the recorded messages.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Count returns the number of recorded messages at level.
func (r *Recorder) Count(level string) int {
	n := 0
	for _, e := range r.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}
