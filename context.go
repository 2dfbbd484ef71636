package binrw

import "github.com/rs/zerolog"

// Built-in context keys. Unexported so callers go through the typed
// accessors; arbitrary extension keys are any comparable value.
type ctxKey int

const (
	keyOrder ctxKey = iota
	keyOffset
	keyCount
	keyTrace
	keyVariantPolicy
)

// VariantPolicy selects how variant-resolution failure is reported.
type VariantPolicy uint8

const (
	// CollectAll reports every attempted candidate's error, in attempt
	// order. This is the default.
	CollectAll VariantPolicy = iota

	// ReducedDetail collapses total failure to a position-only error.
	ReducedDetail
)

// Context is a scoped, extensible configuration value threaded through
// every read. It is immutable: With returns an overlay and never mutates
// the receiver, so a composite's overrides are visible only to reads made
// with the overlay, never to the parent. The zero Context is valid and
// supplies defaults (native byte order, base offset 0, no count).
type Context struct {
	node *ctxNode
}

// ctxNode is one link of the overlay chain. Lookups walk from the newest
// override toward the root, so later overlays shadow earlier ones while
// sharing the tail structurally.
type ctxNode struct {
	parent *ctxNode
	key    any
	val    any
}

// NewContext returns an empty context supplying built-in defaults.
func NewContext() Context {
	return Context{}
}

// With returns a context that maps key to val and otherwise behaves like
// the receiver. The receiver is unaffected.
func (c Context) With(key, val any) Context {
	return Context{node: &ctxNode{parent: c.node, key: key, val: val}}
}

// Value looks up key, walking overlays newest-first. Unknown keys fall
// through the whole chain before reporting absence.
func (c Context) Value(key any) (any, bool) {
	for n := c.node; n != nil; n = n.parent {
		if n.key == key {
			return n.val, true
		}
	}
	return nil, false
}

// Contains reports whether key has a value. Built-in keys with defaults
// (byte order, base offset) count as always present.
func (c Context) Contains(key any) bool {
	if key == keyOrder || key == keyOffset {
		return true
	}
	_, ok := c.Value(key)
	return ok
}

// Order returns the byte order in effect, NativeEndian if unset.
func (c Context) Order() Endian {
	if v, ok := c.Value(keyOrder); ok {
		return v.(Endian)
	}
	return NativeEndian
}

// WithOrder returns a context reading under the given byte order.
func (c Context) WithOrder(e Endian) Context {
	return c.With(keyOrder, e)
}

// Offset returns the base offset relative pointers resolve against.
func (c Context) Offset() int64 {
	if v, ok := c.Value(keyOffset); ok {
		return v.(int64)
	}
	return 0
}

// WithOffset returns a context whose relative-pointer base is off,
// replacing any inherited base.
func (c Context) WithOffset(off int64) Context {
	return c.With(keyOffset, off)
}

// AddOffset returns a context whose relative-pointer base is the current
// base plus delta. Nested bases compose additively.
func (c Context) AddOffset(delta int64) Context {
	return c.With(keyOffset, c.Offset()+delta)
}

// Count returns the declared element count, if one is in effect.
func (c Context) Count() (int, bool) {
	if v, ok := c.Value(keyCount); ok {
		return v.(int), true
	}
	return 0, false
}

// WithCount returns a context declaring an element count for sequence
// reads that take their count from context.
func (c Context) WithCount(n int) Context {
	return c.With(keyCount, n)
}

// Trace returns the diagnostic logger, disabled unless WithTrace was used.
func (c Context) Trace() *zerolog.Logger {
	if v, ok := c.Value(keyTrace); ok {
		return v.(*zerolog.Logger)
	}
	return &nopLogger
}

// WithTrace returns a context that logs read diagnostics to logger.
func (c Context) WithTrace(logger *zerolog.Logger) Context {
	return c.With(keyTrace, logger)
}

// VariantPolicy returns the active variant error-reporting policy.
func (c Context) VariantPolicy() VariantPolicy {
	if v, ok := c.Value(keyVariantPolicy); ok {
		return v.(VariantPolicy)
	}
	return CollectAll
}

// WithVariantPolicy returns a context using the given reporting policy.
func (c Context) WithVariantPolicy(p VariantPolicy) Context {
	return c.With(keyVariantPolicy, p)
}

var nopLogger = zerolog.Nop()
