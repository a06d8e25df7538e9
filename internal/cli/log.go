// Package cli implements the iconsvg command-line interface.
//
// Commands render icons from Iconify JSON icon sets, inspect sets, serve
// icons over HTTP and manage the render cache and the configuration file.
// The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - render: render one icon as svg, html, css url or json
//   - list: table of the icons in a set
//   - browse: interactive icon picker
//   - aliases: alias graph of a set as DOT or SVG
//   - serve: HTTP API
//   - cache: manage the render cache
//   - config: manage the configuration file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs render, cache and HTTP events. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed time.
// It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Loaded 3 icon sets (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
