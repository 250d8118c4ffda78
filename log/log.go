// Package log provides leveled, structured logging with context-scoped
// fields. Call sites pass an optional context.Context first, a message,
// then alternating key/value pairs; a trailing error is logged under the
// "error" key.
package log

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type contextKey string

const fieldsKey contextKey = "logFields"

var logger = logrus.New()

func init() {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

// SetLevel changes the global log level. Accepted values: "trace",
// "debug", "info", "warn", "error". Unknown values fall back to info.
func SetLevel(level string) {
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
}

// CurrentLevel returns the active log level name.
func CurrentLevel() string {
	return logger.GetLevel().String()
}

// NewContext returns a context carrying the given key/value pairs. Fields
// accumulate: deriving from a context that already carries fields merges
// the two sets.
func NewContext(ctx context.Context, keyValuePairs ...interface{}) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	fields := logrus.Fields{}
	if existing, ok := ctx.Value(fieldsKey).(logrus.Fields); ok {
		for k, v := range existing {
			fields[k] = v
		}
	}
	addFields(fields, keyValuePairs)
	return context.WithValue(ctx, fieldsKey, fields)
}

// Error logs a message at error level.
func Error(args ...interface{}) { entry(args).Error(message(args)) }

// Warn logs a message at warning level.
func Warn(args ...interface{}) { entry(args).Warn(message(args)) }

// Info logs a message at info level.
func Info(args ...interface{}) { entry(args).Info(message(args)) }

// Debug logs a message at debug level.
func Debug(args ...interface{}) { entry(args).Debug(message(args)) }

// Trace logs a message at trace level.
func Trace(args ...interface{}) { entry(args).Trace(message(args)) }

func message(args []interface{}) string {
	args = skipContext(args)
	if len(args) == 0 {
		return ""
	}
	if msg, ok := args[0].(string); ok {
		return msg
	}
	return fmt.Sprint(args[0])
}

func entry(args []interface{}) *logrus.Entry {
	fields := logrus.Fields{}
	if len(args) > 0 {
		if ctx, ok := args[0].(context.Context); ok && ctx != nil {
			if ctxFields, ok := ctx.Value(fieldsKey).(logrus.Fields); ok {
				for k, v := range ctxFields {
					fields[k] = v
				}
			}
		}
	}
	rest := skipContext(args)
	if len(rest) > 1 {
		addFields(fields, rest[1:])
	}
	return logger.WithFields(fields)
}

func skipContext(args []interface{}) []interface{} {
	if len(args) > 0 {
		if _, ok := args[0].(context.Context); ok {
			return args[1:]
		}
	}
	return args
}

// addFields consumes alternating key/value pairs. A bare error at a key
// position is logged under the "error" key; any other lone trailing
// value is ignored.
func addFields(fields logrus.Fields, pairs []interface{}) {
	for i := 0; i < len(pairs); {
		if err, ok := pairs[i].(error); ok {
			fields["error"] = err.Error()
			i++
			continue
		}
		if i == len(pairs)-1 {
			return
		}
		key, ok := pairs[i].(string)
		if !ok {
			key = fmt.Sprint(pairs[i])
		}
		if err, ok := pairs[i+1].(error); ok {
			fields[key] = err.Error()
		} else {
			fields[key] = pairs[i+1]
		}
		i += 2
	}
}
