package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level, with failures at
// warn. It implements all three hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to l, prefixed "obs".
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l.WithPrefix("obs")}
}

func (h *LogHooks) OnParseStart(_ context.Context, source, format string) {
	h.logger.Debug("parse start", "source", source, "format", format)
}

func (h *LogHooks) OnParseComplete(_ context.Context, source string, n int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("parse failed", "source", source, "duration", d, "error", err)
		return
	}
	h.logger.Debug("parse complete", "source", source, "entities", n, "duration", d)
}

func (h *LogHooks) OnBoundsComplete(_ context.Context, n int, visible bool, errs int, d time.Duration) {
	h.logger.Debug("bounds complete", "entities", n, "visible", visible, "skipped", errs, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, fallback string, d time.Duration, err error) {
	switch {
	case err != nil:
		h.logger.Warn("render failed", "formats", formats, "duration", d, "error", err)
	case fallback != "":
		h.logger.Debug("render complete", "formats", formats, "fallback", fallback, "duration", d)
	default:
		h.logger.Debug("render complete", "formats", formats, "duration", d)
	}
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("http error", "method", method, "host", host, "path", path, "error", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
