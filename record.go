package binrw

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// FieldOption configures a single field read.
type FieldOption func(*fieldOptions)

type fieldOptions struct {
	order     *Endian
	base      *int64
	noResolve bool
}

// FieldOrder overrides the byte order for this field only.
func FieldOrder(e Endian) FieldOption {
	return func(o *fieldOptions) {
		o.order = &e
	}
}

// FieldBase sets a fixed base offset for this field, replacing the base
// inherited from the record's context. Relative pointers inside the field
// resolve against it.
func FieldBase(off int64) FieldOption {
	return func(o *fieldOptions) {
		o.base = &off
	}
}

// NoResolve skips phase-2 registration for this field. Use it for values
// that are fully complete after phase 1 when the field is on a hot path.
func NoResolve() FieldOption {
	return func(o *fieldOptions) {
		o.noResolve = true
	}
}

// Record walks a composite value's fields in declaration order. It owns
// the composite-scoped context: overrides injected by earlier fields (via
// Set or SetOrder) are visible to later fields of the same record, never
// to the parent and never retroactively.
//
// Phase 2 replays the fields in the same order, each under the context
// snapshot that was in effect when it was read.
type Record struct {
	r         io.ReadSeeker
	ctx       Context
	resolvers []func(io.ReadSeeker) error
}

// NewRecord begins a composite read at the stream's current position. The
// record takes a scoped copy of ctx; the caller's context is unaffected by
// anything the record's fields inject.
func NewRecord(r io.ReadSeeker, ctx Context) *Record {
	return &Record{r: r, ctx: ctx}
}

// Context returns the record-scoped context currently in effect.
func (rec *Record) Context() Context {
	return rec.ctx
}

// Set injects a context override visible to fields read after this call.
func (rec *Record) Set(key, val any) {
	rec.ctx = rec.ctx.With(key, val)
}

// SetOrder injects a byte-order override for later fields, the usual
// follow-up to decoding a byte-order mark.
func (rec *Record) SetOrder(e Endian) {
	rec.ctx = rec.ctx.WithOrder(e)
}

// Resolve replays the record's fields in declaration order, running each
// registered phase-2 step. Call it from the enclosing value's Resolve.
func (rec *Record) Resolve(r io.ReadSeeker) error {
	for _, fn := range rec.resolvers {
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

// Defer registers a custom phase-2 step, replayed in order with the
// record's field resolves. Use it when a field's resolution is conditional
// on something decoded earlier.
func (rec *Record) Defer(fn func(io.ReadSeeker) error) {
	rec.resolvers = append(rec.resolvers, fn)
}

// Assert checks a post-read invariant. A false condition fails with an
// AssertError at the current stream position.
func (rec *Record) Assert(cond bool, msg string) error {
	if cond {
		return nil
	}
	pos, err := streamPos(rec.r)
	if err != nil {
		return err
	}
	return &AssertError{Pos: pos, Msg: msg}
}

// ReadField decodes one field of a record in declaration order, honoring
// per-field options, and registers its phase-2 step. Failures propagate
// immediately: a record's read is only as good as its worst field.
//
// Transient fields (values decoded only to compute a later field) are
// ordinary locals in the calling code; nothing read through a Record is
// retained unless the caller stores it.
func ReadField[T, A any, PT ValuePtr[T, A]](rec *Record, v PT, args A, opts ...FieldOption) error {
	var fo fieldOptions
	for _, opt := range opts {
		opt(&fo)
	}

	ctx := rec.ctx
	if fo.order != nil {
		ctx = ctx.WithOrder(*fo.order)
	}
	if fo.base != nil {
		ctx = ctx.WithOffset(*fo.base)
	}

	if tr := ctx.Trace(); tr.GetLevel() != zerolog.Disabled {
		if pos, err := streamPos(rec.r); err == nil {
			tr.Debug().Int64("pos", pos).Stringer("order", ctx.Order()).Msg("read field")
		}
	}

	if err := v.Read(rec.r, ctx, args); err != nil {
		return err
	}

	if !fo.noResolve {
		snapshot := ctx
		rec.resolvers = append(rec.resolvers, func(r io.ReadSeeker) error {
			return v.Resolve(r, snapshot, args)
		})
	}
	return nil
}

// Magic decodes a discriminator as the next field and compares it against
// want. A mismatch fails with a BadMagicError at the discriminator's start
// position; the stream is left after the decoded value either way.
func Magic[T comparable, A any, PT ValuePtr[T, A]](rec *Record, want T, args A, opts ...FieldOption) error {
	var fo fieldOptions
	for _, opt := range opts {
		opt(&fo)
	}

	ctx := rec.ctx
	if fo.order != nil {
		ctx = ctx.WithOrder(*fo.order)
	}
	if fo.base != nil {
		ctx = ctx.WithOffset(*fo.base)
	}
	return ExpectMagic[T, A, PT](rec.r, ctx, want, args)
}

// ExpectMagic decodes a value from the current position and compares it
// against the expected literal. The mismatching value actually read is
// carried in the error.
func ExpectMagic[T comparable, A any, PT ValuePtr[T, A]](r io.ReadSeeker, ctx Context, want T, args A) error {
	pos, err := streamPos(r)
	if err != nil {
		return err
	}

	var got T
	if err := PT(&got).Read(r, ctx, args); err != nil {
		return fmt.Errorf("reading magic: %w", err)
	}
	if got != want {
		ctx.Trace().Debug().Int64("pos", pos).
			Interface("want", want).Interface("got", got).Msg("magic mismatch")
		return &BadMagicError{Pos: pos, Found: got}
	}
	return nil
}
