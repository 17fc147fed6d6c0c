package core

import (
	"sync/atomic"

	"github.com/go-logr/logr"
)

var logger atomic.Pointer[logr.Logger]

func init() {
	SetLogger(logr.Discard())
}

// SetLogger installs the logger used by the spans and the engine packages.
func SetLogger(l logr.Logger) {
	logger.Store(&l)
}

// Logger returns the installed logger, logr.Discard() unless SetLogger was called.
func Logger() logr.Logger {
	return *logger.Load()
}
