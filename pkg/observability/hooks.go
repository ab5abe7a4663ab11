// Package observability provides hooks for instrumenting the treemap
// pipeline.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup and receive events as trees are decoded, laid out,
// and rendered.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different pipeline stages
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, plain logs)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events, correlated by a run ID:
//
//	runID := observability.NewRunID()
//	observability.Layout().OnLayoutStart(ctx, runID, nodeCount)
//	// ... compute layout ...
//	observability.Layout().OnLayoutComplete(ctx, runID, tileCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// NewRunID returns a fresh identifier correlating the hook events of one
// pipeline execution.
func NewRunID() string {
	return uuid.NewString()
}

// =============================================================================
// Decode Hooks
// =============================================================================

// DecodeHooks receives events from tree input decoding.
type DecodeHooks interface {
	// OnDecodeStart records the beginning of an input decode.
	OnDecodeStart(ctx context.Context, runID, source, format string)

	// OnDecodeComplete records the end of an input decode, with the size
	// of the resulting tree.
	OnDecodeComplete(ctx context.Context, runID, format string, nodeCount int, duration time.Duration, err error)
}

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from treemap layout computation.
type LayoutHooks interface {
	// OnLayoutStart records the beginning of a layout pass.
	OnLayoutStart(ctx context.Context, runID string, nodeCount int)

	// OnLayoutComplete records the end of a layout pass, with the number
	// of tiles produced.
	OnLayoutComplete(ctx context.Context, runID string, tileCount int, duration time.Duration, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from render sinks.
type RenderHooks interface {
	// OnRenderStart records the beginning of rendering for the given
	// output formats.
	OnRenderStart(ctx context.Context, runID string, formats []string)

	// OnRenderComplete records the end of rendering, with the total
	// artifact size in bytes.
	OnRenderComplete(ctx context.Context, runID string, formats []string, bytes int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDecodeHooks is a no-op implementation of DecodeHooks.
type NoopDecodeHooks struct{}

func (NoopDecodeHooks) OnDecodeStart(context.Context, string, string, string) {}
func (NoopDecodeHooks) OnDecodeComplete(context.Context, string, string, int, time.Duration, error) {
}

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, string, int)                          {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string, []string) {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, []string, int, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	decodeHooks DecodeHooks = NoopDecodeHooks{}
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetDecodeHooks registers custom decode hooks.
// This should be called once at application startup before any decoding.
func SetDecodeHooks(h DecodeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		decodeHooks = h
	}
}

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layouts.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any rendering.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Decode returns the registered decode hooks.
func Decode() DecodeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return decodeHooks
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	decodeHooks = NoopDecodeHooks{}
	layoutHooks = NoopLayoutHooks{}
	renderHooks = NoopRenderHooks{}
}
