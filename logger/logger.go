package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultKeep is how many entries a logger remembers for the diagnostics
// page when Options.Keep is zero.
const DefaultKeep = 200

type LogEntry struct {
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
	Keep          int
}

// Logger wraps zerolog and keeps the most recent entries in memory.
type Logger struct {
	base zerolog.Logger
	ring *ring
}

// New creates a configured Logger instance based on Options.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		console.NoColor = true
		output = console
	}

	keep := opts.Keep
	if keep <= 0 {
		keep = DefaultKeep
	}

	base := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &Logger{base: base, ring: &ring{max: keep}}, nil
}

// WithFields returns a derived logger that always writes the supplied
// fields. The derived logger shares the parent's recent entries.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}

	builder := l.base.With()
	for key, value := range fields {
		builder = builder.Interface(key, value)
	}
	return &Logger{base: builder.Logger(), ring: l.ring}
}

func (l *Logger) Info(msg string) {
	if l == nil {
		return
	}
	l.base.Info().Msg(msg)
	l.remember(zerolog.InfoLevel, msg, "")
}

func (l *Logger) Debug(msg string) {
	if l == nil {
		return
	}
	l.base.Debug().Msg(msg)
	l.remember(zerolog.DebugLevel, msg, "")
}

func (l *Logger) Warn(msg string) {
	if l == nil {
		return
	}
	l.base.Warn().Msg(msg)
	l.remember(zerolog.WarnLevel, msg, "")
}

// Error writes an error log entry including the supplied error context.
func (l *Logger) Error(err error, msg string) {
	if l == nil {
		return
	}
	event := l.base.Error()
	details := ""
	if err != nil {
		event = event.Err(err)
		details = err.Error()
	}
	event.Msg(msg)
	l.remember(zerolog.ErrorLevel, msg, details)
}

// Recent returns up to limit remembered entries, newest first. A
// non-positive limit returns all of them.
func (l *Logger) Recent(limit int) []LogEntry {
	if l == nil {
		return nil
	}
	return l.ring.recent(limit)
}

func (l *Logger) remember(level zerolog.Level, msg, details string) {
	if level < l.base.GetLevel() {
		return
	}
	l.ring.add(LogEntry{
		Level:     strings.ToUpper(level.String()),
		Message:   msg,
		Details:   details,
		CreatedAt: time.Now(),
	})
}

type ring struct {
	mu      sync.Mutex
	max     int
	entries []LogEntry
}

func (r *ring) add(e LogEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	if over := len(r.entries) - r.max; over > 0 {
		r.entries = append(r.entries[:0], r.entries[over:]...)
	}
}

func (r *ring) recent(limit int) []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]LogEntry, 0, n)
	for i := len(r.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.entries[i])
	}
	return out
}

var (
	defaultMu sync.RWMutex
	std       = mustDefault()
)

func mustDefault() *Logger {
	l, err := New(Options{Level: "debug", HumanReadable: true})
	if err != nil {
		panic(err)
	}
	return l
}

// Init replaces the package-level logger used by Info, Warn, Error and
// Debug.
func Init(l *Logger) {
	if l == nil {
		return
	}
	defaultMu.Lock()
	std = l
	defaultMu.Unlock()
}

// Default returns the package-level logger.
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return std
}

func Info(message string, args ...interface{}) {
	Default().Info(fmt.Sprintf(message, args...))
}

func Warn(message string, args ...interface{}) {
	Default().Warn(fmt.Sprintf(message, args...))
}

func Error(err error, message string, args ...interface{}) {
	Default().Error(err, fmt.Sprintf(message, args...))
}

func Debug(message string, args ...interface{}) {
	Default().Debug(fmt.Sprintf(message, args...))
}

// GetLogs returns the most recent entries of the package-level logger.
func GetLogs(limit int) []LogEntry {
	return Default().Recent(limit)
}
