package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a charmbracelet/log logger at debug level.
// Failures are logged at warn level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks creates hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

// Install registers h for render, cache and HTTP events.
func (h *LogHooks) Install() {
	SetRenderHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnRenderStart(_ context.Context, icon, format string) {
	h.Logger.Debug("render start", "icon", icon, "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, icon, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("render failed", "icon", icon, "format", format, "error", err)
		return
	}
	h.Logger.Debug("render done", "icon", icon, "format", format, "bytes", size, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnIconLoad(_ context.Context, source, prefix string, icons int) {
	h.Logger.Debug("icon set loaded", "source", source, "prefix", prefix, "icons", icons)
}

func (h *LogHooks) OnCacheHit(_ context.Context, key string) {
	h.Logger.Debug("cache hit", "key", key)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, key string) {
	h.Logger.Debug("cache miss", "key", key)
}

func (h *LogHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.Logger.Debug("cache set", "key", key, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Warn("http error", "method", method, "host", host, "path", path, "error", err)
}

var (
	_ RenderHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ HTTPHooks   = (*LogHooks)(nil)
)
