// Package logging provides the shared logrus logger used by every notetree
// component. Output goes to a log file so it never interferes with the
// terminal UI on stdout; until Setup is called all entries are discarded.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

var base = newBase()

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	return l
}

// Options controls where log output is written.
type Options struct {
	Level string
	File  string
}

// New returns a logger entry tagged with component.
func New(component string) *logrus.Entry {
	if component == "" {
		return logrus.NewEntry(base)
	}
	return base.WithField("component", component)
}

// Setup points the shared logger at opts.File and applies opts.Level. The
// returned closer releases the file handle.
func Setup(opts Options) (io.Closer, error) {
	base.SetLevel(ParseLevel(opts.Level))

	if strings.TrimSpace(opts.File) == "" {
		base.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %q: %w", opts.File, err)
	}

	base.SetOutput(f)
	return f, nil
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	base.SetOutput(w)
}

// ParseLevel converts a level name to a logrus level. Unknown values fall
// back to info.
func ParseLevel(value string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
