// Package textui provides the leveled, field-aware logger used across
// the index algebra and reader-pipeline packages.
package textui

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/pflag"
)

// levelNames is the ordered name<->dlog.LogLevel table LogLevelFlag
// searches; kept as a slice rather than a switch so the valid-names list
// in an error message and the String() lookup share one source.
var levelNames = []struct {
	name  string
	level dlog.LogLevel
}{
	{"error", dlog.LogLevelError},
	{"warn", dlog.LogLevelWarn},
	{"info", dlog.LogLevelInfo},
	{"debug", dlog.LogLevelDebug},
	{"trace", dlog.LogLevelTrace},
}

// LogLevelFlag adapts dlog.LogLevel to pflag.Value for a CLI "-log-level" flag.
type LogLevelFlag struct {
	Level dlog.LogLevel
}

var _ pflag.Value = (*LogLevelFlag)(nil)

// Type implements pflag.Value.
func (*LogLevelFlag) Type() string { return "loglevel" }

// Set implements pflag.Value.
func (f *LogLevelFlag) Set(str string) error {
	str = strings.ToLower(str)
	if str == "warning" {
		str = "warn"
	}
	for _, ln := range levelNames {
		if ln.name == str {
			f.Level = ln.level
			return nil
		}
	}
	names := make([]string, len(levelNames))
	for i, ln := range levelNames {
		names[i] = ln.name
	}
	return fmt.Errorf("textui: unrecognized log level %q; want one of %s", str, strings.Join(names, ", "))
}

// String implements fmt.Stringer (and pflag.Value).
func (f *LogLevelFlag) String() string {
	for _, ln := range levelNames {
		if ln.level == f.Level {
			return ln.name
		}
	}
	return "info"
}

// logger is a minimal dlog.Logger/dlog.OptimizedLogger: a destination, a
// level threshold, and a bag of structured fields accumulated by
// WithField. Unlike a parent-linked logger chain, each WithField call
// produces a logger holding its own flattened copy of the field set, so
// formatting never has to walk a chain at write time.
type logger struct {
	mu     *sync.Mutex // shared across every logger derived from the same root
	out    io.Writer
	level  dlog.LogLevel
	fields map[string]any
}

var _ dlog.OptimizedLogger = (*logger)(nil)

// NewLogger builds a dlog.Logger that writes leveled, field-annotated
// lines to out.
func NewLogger(out io.Writer, level dlog.LogLevel) dlog.Logger {
	return &logger{mu: new(sync.Mutex), out: out, level: level}
}

// Helper implements dlog.Logger.
func (*logger) Helper() {}

// WithField implements dlog.Logger.
func (l *logger) WithField(key string, value any) dlog.Logger {
	fields := make(map[string]any, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value
	return &logger{mu: l.mu, out: l.out, level: l.level, fields: fields}
}

// StdLogger implements dlog.Logger.
func (l *logger) StdLogger(level dlog.LogLevel) *log.Logger {
	return log.New(stdLogWriter{l: l, level: level}, "", 0)
}

// Log implements dlog.Logger; the Unformatted* methods below are always
// used instead.
func (*logger) Log(dlog.LogLevel, string) {
	panic("textui: Log invoked directly; dlog should route through the optimized Unformatted* path")
}

// UnformattedLog implements dlog.OptimizedLogger.
func (l *logger) UnformattedLog(level dlog.LogLevel, args ...any) {
	l.emit(level, fmt.Sprint(args...))
}

// UnformattedLogln implements dlog.OptimizedLogger.
func (l *logger) UnformattedLogln(level dlog.LogLevel, args ...any) {
	l.emit(level, strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// UnformattedLogf implements dlog.OptimizedLogger.
func (l *logger) UnformattedLogf(level dlog.LogLevel, format string, args ...any) {
	l.emit(level, fmt.Sprintf(format, args...))
}

type stdLogWriter struct {
	l     *logger
	level dlog.LogLevel
}

func (w stdLogWriter) Write(p []byte) (int, error) {
	w.l.emit(w.level, strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

func levelTag(level dlog.LogLevel) string {
	for _, ln := range levelNames {
		if ln.level == level {
			return ln.name
		}
	}
	return "unknown"
}

func (l *logger) emit(level dlog.LogLevel, msg string) {
	if level > l.level {
		return
	}

	var b strings.Builder
	b.WriteString(time.Now().UTC().Format(time.RFC3339Nano))
	b.WriteByte(' ')
	b.WriteByte('[')
	b.WriteString(levelTag(level))
	b.WriteString("] ")
	b.WriteString(msg)
	for _, k := range orderedFieldKeys(l.fields) {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(quoteFieldValue(l.fields[k]))
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.out, b.String())
}

// orderedFieldKeys groups this repo's structured fields by concern
// (index-construction fields before reader-pipeline fields) and sorts
// alphabetically within a group, rather than ranking every known field
// key individually.
func orderedFieldKeys(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		gi, gj := fieldGroup(keys[i]), fieldGroup(keys[j])
		if gi != gj {
			return gi < gj
		}
		return keys[i] < keys[j]
	})
	return keys
}

func fieldGroup(key string) int {
	switch {
	case strings.HasPrefix(key, "pcidx.structure."):
		return 0
	case strings.HasPrefix(key, "pcidx.reader."):
		return 1
	default:
		return 2
	}
}

func quoteFieldValue(v any) string {
	s := fmt.Sprint(v)
	if strings.ContainsAny(s, " \t\n\"") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
