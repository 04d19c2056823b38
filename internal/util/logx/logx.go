// Package logx is a small leveled logger that keeps recent lines in memory
// so a full-screen UI can show them without writing to the terminal.
package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel accepts debug, info, warn/warning and error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug, nil
	case "info", "":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	}
	return Info, fmt.Errorf("unknown log level %q", s)
}

const ringSize = 500

var (
	mu    sync.Mutex
	level = Info
	ring  = make([]string, 0, ringSize)
	// nil by default so a running TUI is not corrupted; see SetOutput.
	out io.Writer
)

func SetLevel(l Level) { mu.Lock(); level = l; mu.Unlock() }

func CurrentLevel() Level { mu.Lock(); defer mu.Unlock(); return level }

// SetOutput mirrors every retained line to w. Pass nil to stop.
func SetOutput(w io.Writer) { mu.Lock(); out = w; mu.Unlock() }

// SetLevelFromEnv reads DATAGRID_LOG_LEVEL and DATAGRID_LOG_STDERR.
func SetLevelFromEnv() {
	if v := os.Getenv("DATAGRID_LOG_LEVEL"); v != "" {
		if l, err := ParseLevel(v); err == nil {
			SetLevel(l)
		}
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("DATAGRID_LOG_STDERR"))) {
	case "", "0", "false", "no":
	default:
		SetOutput(os.Stderr)
	}
}

func Debugf(format string, a ...any) { logf(Debug, format, a...) }
func Infof(format string, a ...any)  { logf(Info, format, a...) }
func Warnf(format string, a ...any)  { logf(Warn, format, a...) }
func Errorf(format string, a ...any) { logf(Error, format, a...) }

func logf(l Level, format string, a ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	line := fmt.Sprintf("%s %-5s %s", time.Now().Format("15:04:05.000"), l, fmt.Sprintf(format, a...))
	if len(ring) == ringSize {
		ring = append(ring[:0], ring[1:]...)
	}
	ring = append(ring, line)
	if out != nil {
		fmt.Fprintln(out, line)
	}
}

func Lines() []string { return Tail(0) }

// Tail returns the last n retained lines, or all of them when n <= 0.
func Tail(n int) []string {
	mu.Lock()
	defer mu.Unlock()
	start := 0
	if n > 0 && n < len(ring) {
		start = len(ring) - n
	}
	res := make([]string, len(ring)-start)
	copy(res, ring[start:])
	return res
}

// Dump joins every retained line.
func Dump() string { return strings.Join(Lines(), "\n") }

// reset drops retained lines.
func reset() { mu.Lock(); ring = ring[:0]; mu.Unlock() }
