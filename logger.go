// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glprims

import (
	"context"
	"log/slog"
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
// SetLogger can be called while a frame loop is logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for glprims and all its sub-packages.
// By default, glprims produces no log output.
//
// Pass nil to disable logging again.
//
// Log levels used by glprims:
//   - [slog.LevelDebug]: compiler and linker diagnostics, surface resizes,
//     per-draw details
//   - [slog.LevelInfo]: backend selection, exercise start and finish
//   - [slog.LevelWarn]: non-fatal issues (release errors, unsupported
//     shader constructs in the software backend)
//
// Example:
//
//	glprims.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by glprims.
// Backends and exercises call this so a single SetLogger call configures
// the whole module.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
