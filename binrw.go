// Package binrw is a declarative binary-deserialization runtime: it reads
// structured binary layouts (fixed-width fields, byte-order overrides, file
// pointers, counted and punctuated sequences, variant shapes) from any
// seekable stream into typed in-memory values.
//
// Every decodable type implements the two-phase Value protocol. Phase 1
// (Read) consumes exactly the bytes of the value's primary representation at
// the current position. Phase 2 (Resolve) runs once the whole top-level
// value has finished phase 1, visiting nested values in the same pre-order;
// it performs work that needs the final phase-1 position, chiefly
// dereferencing file pointers. Resolve must restore the stream position
// before returning so sibling resolves are unaffected.
package binrw

import (
	"fmt"
	"io"
)

// None is the empty argument bundle. Types whose argument type is None can
// be read through the no-argument entry points; anything else must go
// through ReadArgs, enforced at the call boundary by the type system.
type None struct{}

// Value is implemented by any type that can decode itself from a seekable
// stream. A is the type-specific argument bundle; use None when a type
// needs no arguments.
//
// Read must consume exactly the bytes belonging to the value's primary
// representation. Resolve is called after phase 1 of the entire enclosing
// value tree has completed and must leave the stream position where it
// found it.
type Value[A any] interface {
	Read(r io.ReadSeeker, ctx Context, args A) error
	Resolve(r io.ReadSeeker, ctx Context, args A) error
}

// ValuePtr constrains PT to be a pointer to T implementing Value[A], so
// generic helpers can allocate a T and decode through the pointer.
type ValuePtr[T, A any] interface {
	*T
	Value[A]
}

// Read decodes a T from the current position under the default context
// (native byte order), running both phases over the whole value tree.
func Read[T any, PT ValuePtr[T, None]](r io.ReadSeeker) (T, error) {
	return ReadArgs[T, None, PT](r, None{})
}

// ReadArgs decodes a T with explicit arguments under the default context.
func ReadArgs[T, A any, PT ValuePtr[T, A]](r io.ReadSeeker, args A) (T, error) {
	return ReadCtx[T, A, PT](r, NewContext(), args)
}

// ReadCtx decodes a T under an explicit context: phase 1 for the whole
// tree, then phase 2 in the same pre-order.
func ReadCtx[T, A any, PT ValuePtr[T, A]](r io.ReadSeeker, ctx Context, args A) (T, error) {
	var v T
	if err := PT(&v).Read(r, ctx, args); err != nil {
		return v, err
	}
	if err := PT(&v).Resolve(r, ctx, args); err != nil {
		return v, err
	}
	return v, nil
}

// ReadOrder decodes a T from the current position under the given byte
// order, without requiring the caller to construct a Context.
func ReadOrder[T any, PT ValuePtr[T, None]](r io.ReadSeeker, e Endian) (T, error) {
	return ReadCtx[T, None, PT](r, NewContext().WithOrder(e), None{})
}

// ReadBE decodes a T as big-endian from the current position.
func ReadBE[T any, PT ValuePtr[T, None]](r io.ReadSeeker) (T, error) {
	return ReadOrder[T, PT](r, BigEndian)
}

// ReadLE decodes a T as little-endian from the current position.
func ReadLE[T any, PT ValuePtr[T, None]](r io.ReadSeeker) (T, error) {
	return ReadOrder[T, PT](r, LittleEndian)
}

// ReadNE decodes a T in the platform's native byte order.
func ReadNE[T any, PT ValuePtr[T, None]](r io.ReadSeeker) (T, error) {
	return ReadOrder[T, PT](r, NativeEndian)
}

// Box owns a heap-allocated T, forwarding both phases to it. It exists for
// recursive and self-referential shapes, where a value must refer to its
// own type without infinite size.
type Box[T, A any, PT ValuePtr[T, A]] struct {
	V *T
}

func (b *Box[T, A, PT]) Read(r io.ReadSeeker, ctx Context, args A) error {
	b.V = new(T)
	return PT(b.V).Read(r, ctx, args)
}

func (b *Box[T, A, PT]) Resolve(r io.ReadSeeker, ctx Context, args A) error {
	return PT(b.V).Resolve(r, ctx, args)
}

// streamPos reports the current stream position.
func streamPos(r io.ReadSeeker) (int64, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("querying stream position: %w", err)
	}
	return pos, nil
}

// seekTo moves the stream to an absolute position.
func seekTo(r io.ReadSeeker, pos int64) error {
	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to offset %d: %w", pos, err)
	}
	return nil
}
