// Package observability lets a program watch editing, rendering and caching
// without those packages depending on a metrics or tracing backend.
//
// Each area has a hook interface with a no-op default. A program swaps in
// its own implementations once at startup; [LogHooks] is the one the
// netgraph command installs, reporting every event as a debug log line.
//
//	observability.SetEditorHooks(observability.NewLogHooks(logger))
//
// Instrumented code fetches the current hooks at the call site:
//
//	observability.Editor().OnMutation(ctx, "add node", time.Since(start), err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// EditorHooks receives events from editing sessions.
type EditorHooks interface {
	// OnMutation reports an applied or rejected graph operation.
	OnMutation(ctx context.Context, op string, duration time.Duration, err error)
	// OnUndo and OnRedo report history steps; ok is false when the history
	// was empty.
	OnUndo(ctx context.Context, ok bool, err error)
	OnRedo(ctx context.Context, ok bool, err error)
	// OnSave reports a write of the graph to its storage backend.
	OnSave(ctx context.Context, nodeCount int, duration time.Duration, err error)
}

// RenderHooks receives events from the renderer.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType names the kind of
// artifact, such as "render".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

type NoopEditorHooks struct{}

func (NoopEditorHooks) OnMutation(context.Context, string, time.Duration, error) {}
func (NoopEditorHooks) OnUndo(context.Context, bool, error)                      {}
func (NoopEditorHooks) OnRedo(context.Context, bool, error)                      {}
func (NoopEditorHooks) OnSave(context.Context, int, time.Duration, error)        {}

type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopRenderHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// slot holds one registered hook implementation. The wrapper struct keeps
// atomic.Value from seeing different concrete types.
type slot[T any] struct{ v atomic.Value }

type boxed[T any] struct{ h T }

func (s *slot[T]) get(def T) T {
	if b, ok := s.v.Load().(boxed[T]); ok {
		return b.h
	}
	return def
}

func (s *slot[T]) set(h T) { s.v.Store(boxed[T]{h}) }

var (
	editorSlot slot[EditorHooks]
	renderSlot slot[RenderHooks]
	cacheSlot  slot[CacheHooks]
)

// SetEditorHooks replaces the editor hooks. nil is ignored.
func SetEditorHooks(h EditorHooks) {
	if h != nil {
		editorSlot.set(h)
	}
}

// SetRenderHooks replaces the render hooks. nil is ignored.
func SetRenderHooks(h RenderHooks) {
	if h != nil {
		renderSlot.set(h)
	}
}

// SetCacheHooks replaces the cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

func Editor() EditorHooks { return editorSlot.get(NoopEditorHooks{}) }
func Render() RenderHooks { return renderSlot.get(NoopRenderHooks{}) }
func Cache() CacheHooks   { return cacheSlot.get(NoopCacheHooks{}) }

// Reset puts the no-op hooks back.
func Reset() {
	editorSlot.set(NoopEditorHooks{})
	renderSlot.set(NoopRenderHooks{})
	cacheSlot.set(NoopCacheHooks{})
}
