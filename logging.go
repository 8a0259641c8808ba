package spry

import (
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var logger atomic.Pointer[log.Logger]

func init() {
	logger.Store(log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "spry",
	}))
}

// Logger returns the default logger used by engines created without
// WithLogger.
//
func Logger() *log.Logger {
	return logger.Load()
}

// SetLogger replaces the default logger.
//
func SetLogger(l *log.Logger) {
	if l != nil {
		logger.Store(l)
	}
}
