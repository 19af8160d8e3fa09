// Package logger carries a structured logrus logger through
// context.Context so call sites log with whatever fields their caller
// attached. G(ctx) is the accessor used throughout the module.
package logger

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	// G retrieves the logger carried by a context, falling back to L.
	G = FromContext
	// L is the process-wide fallback entry.
	L = logrus.NewEntry(newLogger())
)

type loggerKey struct{}

// WithLogger returns a context carrying the given entry.
func WithLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, entry.WithContext(ctx))
}

// FromContext returns the entry stored in ctx, or L bound to ctx when
// none was attached.
func FromContext(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(loggerKey{}).(*logrus.Entry); ok {
		return entry
	}
	return L.WithContext(ctx)
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	applyFormat(l, "text")
	return l
}

func applyFormat(l *logrus.Logger, format string) {
	switch format {
	case "json":
		l.Formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "logLevel",
				logrus.FieldKeyMsg:   "message",
			},
			TimestampFormat: time.RFC3339Nano,
		}
	default:
		l.Formatter = &logrus.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
			FullTimestamp:   true,
		}
	}
}

// SetLogLevel adjusts the global logger's level.
func SetLogLevel(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	L.Logger.SetLevel(parsed)
	return nil
}

// SetLogFormat switches the global logger between "text" and "json".
func SetLogFormat(format string) {
	applyFormat(L.Logger, format)
}

// SetLogOutput redirects the global logger, mainly for tests.
func SetLogOutput(w io.Writer) {
	L.Logger.SetOutput(w)
}
