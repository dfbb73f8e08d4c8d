// Package rlog wires the engine's internal diagnostics through zap. The
// engine never fails on malformed input (spec.md §7); the only message
// it emits is the document package's Warn for a <link>
// stylesheet it could not resolve. Parse recoveries are not logged.
package rlog

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	logger *zap.Logger = zap.NewNop()
)

// SetLogger installs the logger used by every package in this module.
// Passing nil restores the no-op logger. A host embedding the engine
// calls this once at startup; the default is silent.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// L returns the currently installed logger, safe to call from any
// goroutine (the engine itself is single-threaded per document, but the
// logger may be shared across documents on different threads).
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
