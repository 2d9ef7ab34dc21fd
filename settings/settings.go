// Package settings carries comparison and rendering overrides for token
// snapshots. Overrides live in immutable frames chained through a
// context.Context: pushing a frame derives a child context, and the frame's
// scope ends with that context, so parent scopes are never disturbed no
// matter how the child scope exits.
package settings

import (
	"context"
	"sync"
)

// Values is the resolved view of every knob after walking the frame chain.
type Values struct {
	// FormatTokens pretty-prints token snapshots when their source parses.
	// When false, snapshots use the canonical space-joined token text.
	FormatTokens bool

	// IgnoreDocsForTokens strips doc comments before comparing or printing
	// parsed token trees.
	IgnoreDocsForTokens bool
}

type frame struct {
	parent              *frame
	formatTokens        *bool
	ignoreDocsForTokens *bool
}

type frameKey struct{}

// Option sets one knob on the frame being pushed.
type Option func(*frame)

// FormatTokens overrides the pretty-printing knob.
func FormatTokens(on bool) Option {
	return func(f *frame) { f.formatTokens = &on }
}

// IgnoreDocsForTokens overrides the doc-stripping knob.
func IgnoreDocsForTokens(on bool) Option {
	return func(f *frame) { f.ignoreDocsForTokens = &on }
}

// With returns a context carrying a new override frame on top of any frames
// ctx already carries. Knobs not set by opts fall through to the enclosing
// frame, and past the outermost frame to the process defaults.
func With(ctx context.Context, opts ...Option) context.Context {
	f := &frame{parent: frameFrom(ctx)}
	for _, opt := range opts {
		opt(f)
	}
	return context.WithValue(ctx, frameKey{}, f)
}

// Scope runs fn with a context carrying the given overrides. The frame is
// visible exactly for the dynamic extent of fn; ctx itself is untouched, so
// the enclosing scope is intact on return and on panic alike.
func Scope(ctx context.Context, fn func(context.Context), opts ...Option) {
	fn(With(ctx, opts...))
}

// From resolves the effective values for ctx, innermost frame first.
// A nil or frameless context yields the process defaults.
func From(ctx context.Context) Values {
	values := Defaults()
	formatSet, docsSet := false, false
	for f := frameFrom(ctx); f != nil; f = f.parent {
		if !formatSet && f.formatTokens != nil {
			values.FormatTokens = *f.formatTokens
			formatSet = true
		}
		if !docsSet && f.ignoreDocsForTokens != nil {
			values.IgnoreDocsForTokens = *f.ignoreDocsForTokens
			docsSet = true
		}
		if formatSet && docsSet {
			break
		}
	}
	return values
}

func frameFrom(ctx context.Context) *frame {
	if ctx == nil {
		return nil
	}
	f, _ := ctx.Value(frameKey{}).(*frame)
	return f
}

var (
	defaultsMu sync.RWMutex
	defaults   = Values{FormatTokens: true, IgnoreDocsForTokens: true}
)

// Defaults returns the process-wide fallback values.
func Defaults() Values {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaults
}

// SetDefaults replaces the process-wide fallback values. Call it from
// configuration loading before assertions run; frames still win over it.
func SetDefaults(v Values) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults = v
}
