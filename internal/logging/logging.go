// Package logging provides the process-wide structured logger used by
// cmd/server and cmd/verifycli: leveled key=value lines, colorized when
// standard output is a terminal and plain otherwise.
package logging

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// Logger wraps a *log.Logger with level-tagged, key=value structured
// output. A seed or commitment must never be passed to these methods in
// raw form; callers pass hashes or hex digests, never the serverSeed.
type Logger struct {
	logger *log.Logger
	color  bool
}

// New returns a Logger writing to os.Stdout, colorized only when stdout
// is an attached terminal.
func New() *Logger {
	return &Logger{
		logger: log.New(os.Stdout, "", log.LstdFlags|log.LUTC),
		color:  isatty.IsTerminal(os.Stdout.Fd()),
	}
}

func (l *Logger) tag(level, color string) string {
	if !l.color {
		return "[" + level + "] "
	}
	return color + "[" + level + "]" + colorReset + " "
}

// Info logs a routine lifecycle event: commitment minted, game started,
// game finished.
func (l *Logger) Info(event string, fields ...any) {
	l.logger.Printf(l.tag("INFO", colorCyan)+"%s %s", event, kv(fields...))
}

// Warn logs a recoverable anomaly: a replay mismatch, a rejected
// malformed request.
func (l *Logger) Warn(event string, fields ...any) {
	l.logger.Printf(l.tag("WARN", colorYellow)+"%s %s", event, kv(fields...))
}

// Error logs an operational failure: a failed commitment rotation, a
// store write error.
func (l *Logger) Error(event string, fields ...any) {
	l.logger.Printf(l.tag("ERROR", colorRed)+"%s %s", event, kv(fields...))
}

// Debug logs a diagnostic detail, dimmed when colorized.
func (l *Logger) Debug(event string, fields ...any) {
	l.logger.Printf(l.tag("DEBUG", colorGray)+"%s %s", event, kv(fields...))
}

// kv renders an alternating key, value... slice as "key=value key=value".
// An odd trailing key with no value is rendered as "key=<missing>".
func kv(fields ...any) string {
	s := ""
	for i := 0; i < len(fields); i += 2 {
		if i > 0 {
			s += " "
		}
		key := fields[i]
		if i+1 < len(fields) {
			s += fmt.Sprintf("%v=%v", key, fields[i+1])
		} else {
			s += fmt.Sprintf("%v=<missing>", key)
		}
	}
	return s
}

// HumanDuration renders d the way an operator reads uptime or
// time-until-rotation in a log line, e.g. "2 minutes" instead of
// "2m0.002s".
func HumanDuration(d time.Duration) string {
	return humanize.RelTime(time.Now(), time.Now().Add(d), "", "")
}
