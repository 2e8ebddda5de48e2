package exa

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// live engines, for logger propagation.
var (
	enginesMu sync.Mutex
	engines   = make(map[*Engine]struct{})
)

// SetLogger configures the logger for exa and the queues of its engines.
// By default, exa produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by exa:
//   - [slog.LevelDebug]: composite rejections and their reasons
//   - [slog.LevelInfo]: engine lifecycle
//   - [slog.LevelWarn]: misuse, such as drawing with a finished session
//
// Example:
//
//	exa.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	enginesMu.Lock()
	defer enginesMu.Unlock()
	for e := range engines {
		propagateLogger(e.q, l)
	}
}

// Logger returns the current logger used by exa.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by queues that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the logger to a queue if it implements the
// loggerSetter interface. Called from both SetLogger and New to ensure the
// queue always has the current logger.
func propagateLogger(q any, l *slog.Logger) {
	if ls, ok := q.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}

func trackEngine(e *Engine) {
	enginesMu.Lock()
	engines[e] = struct{}{}
	enginesMu.Unlock()
	propagateLogger(e.q, Logger())
}

func untrackEngine(e *Engine) {
	enginesMu.Lock()
	delete(engines, e)
	enginesMu.Unlock()
}
