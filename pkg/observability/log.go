package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug line on a charm logger. It
// implements [EditorHooks], [RenderHooks] and [CacheHooks].
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks logging to l under the "hooks" prefix.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l.WithPrefix("hooks")}
}

// Install registers h for all three event areas.
func (h *LogHooks) Install() {
	SetEditorHooks(h)
	SetRenderHooks(h)
	SetCacheHooks(h)
}

func (h *LogHooks) event(msg string, err error, keyvals ...any) {
	if err != nil {
		keyvals = append(keyvals, "err", err)
	}
	h.logger.Debug(msg, keyvals...)
}

func (h *LogHooks) OnMutation(_ context.Context, op string, d time.Duration, err error) {
	h.event("mutation", err, "op", op, "took", d)
}

func (h *LogHooks) OnUndo(_ context.Context, ok bool, err error) {
	h.event("undo", err, "applied", ok)
}

func (h *LogHooks) OnRedo(_ context.Context, ok bool, err error) {
	h.event("redo", err, "applied", ok)
}

func (h *LogHooks) OnSave(_ context.Context, nodes int, d time.Duration, err error) {
	h.event("save", err, "nodes", nodes, "took", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.event("render start", nil, "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.event("render done", err, "formats", formats, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.event("cache hit", nil, "kind", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.event("cache miss", nil, "kind", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.event("cache set", nil, "kind", keyType, "bytes", size)
}

var (
	_ EditorHooks = (*LogHooks)(nil)
	_ RenderHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
)
