// Package logging is the process-wide structured logger.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "ringforge",
	})
	l.SetLevel(log.InfoLevel)
	return l
}

// SetOutput redirects the logger, keeping its level.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	lvl := logger.GetLevel()
	logger = newLogger(w)
	logger.SetLevel(lvl)
}

// SetLevel parses and applies a level name such as "debug" or "warn".
func SetLevel(name string) error {
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return err
	}
	mu.RLock()
	defer mu.RUnlock()
	logger.SetLevel(lvl)
	return nil
}

// Logger returns the current logger.
func Logger() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// With returns a child logger carrying the given key/value pairs.
func With(keyvals ...interface{}) *log.Logger {
	return Logger().With(keyvals...)
}

func Debug(msg string, keyvals ...interface{}) { Logger().Debug(msg, keyvals...) }
func Info(msg string, keyvals ...interface{})  { Logger().Info(msg, keyvals...) }
func Warn(msg string, keyvals ...interface{})  { Logger().Warn(msg, keyvals...) }
func Error(msg string, keyvals ...interface{}) { Logger().Error(msg, keyvals...) }
