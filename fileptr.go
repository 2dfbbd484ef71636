package binrw

import (
	"fmt"
	"io"
	"reflect"

	"github.com/kitlith/binrw/internal/bits"
)

// OffsetBits constrains the raw offset field of a file pointer to a
// fixed-width integer type.
type OffsetBits interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64
}

// AbsPtr is a layer of indirection within the stream: a raw offset of type
// Off followed, elsewhere in the stream, by a value of type T. Phase 1
// decodes only the offset; phase 2 seeks to it (measured from stream
// start), reads and resolves the target, and restores the position.
//
// Accessing the target before phase 2 has run is a contract violation and
// panics; see Value.
type AbsPtr[Off OffsetBits, T, A any, PT ValuePtr[T, A]] struct {
	Ptr Off

	val *T
}

// RelPtr is an AbsPtr whose target is measured from the base offset in the
// Context rather than from stream start. Nested bases pushed by enclosing
// values compose additively.
type RelPtr[Off OffsetBits, T, A any, PT ValuePtr[T, A]] struct {
	Ptr Off

	val *T
}

// Aliases for the common unit-args pointer widths.
type (
	AbsPtr8[T any, PT ValuePtr[T, None]]  = AbsPtr[uint8, T, None, PT]
	AbsPtr16[T any, PT ValuePtr[T, None]] = AbsPtr[uint16, T, None, PT]
	AbsPtr32[T any, PT ValuePtr[T, None]] = AbsPtr[uint32, T, None, PT]
	AbsPtr64[T any, PT ValuePtr[T, None]] = AbsPtr[uint64, T, None, PT]

	RelPtr8[T any, PT ValuePtr[T, None]]  = RelPtr[uint8, T, None, PT]
	RelPtr16[T any, PT ValuePtr[T, None]] = RelPtr[uint16, T, None, PT]
	RelPtr32[T any, PT ValuePtr[T, None]] = RelPtr[uint32, T, None, PT]
	RelPtr64[T any, PT ValuePtr[T, None]] = RelPtr[uint64, T, None, PT]
)

func (p *AbsPtr[Off, T, A, PT]) Read(r io.ReadSeeker, ctx Context, _ A) error {
	raw, err := readOffsetBits[Off](r, ctx)
	if err != nil {
		return err
	}
	p.Ptr = raw
	return nil
}

func (p *AbsPtr[Off, T, A, PT]) Resolve(r io.ReadSeeker, ctx Context, args A) error {
	target, err := derefTarget[T, A, PT](r, ctx, int64(p.Ptr), args)
	if err != nil {
		return err
	}
	p.val = target
	return nil
}

// Value returns the dereferenced target.
//
// It panics if the pointer has not been resolved yet: the resolve phase
// for the enclosing top-level value must run first.
func (p *AbsPtr[Off, T, A, PT]) Value() T {
	if p.val == nil {
		panic(fmt.Sprintf("binrw: %v (AbsPtr offset %d)", ErrUnresolvedPointer, int64(p.Ptr)))
	}
	return *p.val
}

// TryValue returns the dereferenced target, reporting whether the pointer
// has been resolved.
func (p *AbsPtr[Off, T, A, PT]) TryValue() (T, bool) {
	if p.val == nil {
		var zero T
		return zero, false
	}
	return *p.val, true
}

// Resolved reports whether phase 2 has populated the target.
func (p *AbsPtr[Off, T, A, PT]) Resolved() bool {
	return p.val != nil
}

func (p *RelPtr[Off, T, A, PT]) Read(r io.ReadSeeker, ctx Context, _ A) error {
	raw, err := readOffsetBits[Off](r, ctx)
	if err != nil {
		return err
	}
	p.Ptr = raw
	return nil
}

func (p *RelPtr[Off, T, A, PT]) Resolve(r io.ReadSeeker, ctx Context, args A) error {
	target, err := derefTarget[T, A, PT](r, ctx, int64(p.Ptr)+ctx.Offset(), args)
	if err != nil {
		return err
	}
	p.val = target
	return nil
}

// Value returns the dereferenced target.
//
// It panics if the pointer has not been resolved yet: the resolve phase
// for the enclosing top-level value must run first.
func (p *RelPtr[Off, T, A, PT]) Value() T {
	if p.val == nil {
		panic(fmt.Sprintf("binrw: %v (RelPtr offset %d)", ErrUnresolvedPointer, int64(p.Ptr)))
	}
	return *p.val
}

// TryValue returns the dereferenced target, reporting whether the pointer
// has been resolved.
func (p *RelPtr[Off, T, A, PT]) TryValue() (T, bool) {
	if p.val == nil {
		var zero T
		return zero, false
	}
	return *p.val, true
}

// Resolved reports whether phase 2 has populated the target.
func (p *RelPtr[Off, T, A, PT]) Resolved() bool {
	return p.val != nil
}

// ParseAbs reads an absolute pointer and immediately dereferences it,
// returning the owned target. The stream is left just after the pointer's
// own offset field, not after the target.
func ParseAbs[Off OffsetBits, T, A any, PT ValuePtr[T, A]](r io.ReadSeeker, ctx Context, args A) (T, error) {
	var p AbsPtr[Off, T, A, PT]
	return parsePtr[T](r, &p, ctx, args)
}

// ParseRel reads a relative pointer and immediately dereferences it,
// returning the owned target. The stream is left just after the pointer's
// own offset field.
func ParseRel[Off OffsetBits, T, A any, PT ValuePtr[T, A]](r io.ReadSeeker, ctx Context, args A) (T, error) {
	var p RelPtr[Off, T, A, PT]
	return parsePtr[T](r, &p, ctx, args)
}

// ptrValue is the common shape of AbsPtr and RelPtr used by parsePtr.
type ptrValue[T, A any] interface {
	Value[A]
	TryValue() (T, bool)
}

func parsePtr[T, A any](r io.ReadSeeker, p ptrValue[T, A], ctx Context, args A) (T, error) {
	var zero T
	if err := p.Read(r, ctx, args); err != nil {
		return zero, err
	}
	saved, err := streamPos(r)
	if err != nil {
		return zero, err
	}
	if err := p.Resolve(r, ctx, args); err != nil {
		return zero, err
	}
	if err := seekTo(r, saved); err != nil {
		return zero, err
	}
	v, _ := p.TryValue()
	return v, nil
}

// readOffsetBits decodes the raw offset field under the context's byte
// order. The width comes from the offset type itself.
func readOffsetBits[Off OffsetBits](r io.ReadSeeker, ctx Context) (Off, error) {
	width := int(reflect.TypeFor[Off]().Size())
	raw, err := bits.ReadUint(r, ctx.Order().order(), width)
	if err != nil {
		return 0, fmt.Errorf("reading pointer offset: %w", err)
	}
	// Converting the low bits re-extends the sign for signed offset types.
	return Off(raw), nil
}

// derefTarget performs the scoped phase-2 excursion: save position, seek
// to the target, run the target's full read and resolve, seek back.
func derefTarget[T, A any, PT ValuePtr[T, A]](r io.ReadSeeker, ctx Context, target int64, args A) (*T, error) {
	saved, err := streamPos(r)
	if err != nil {
		return nil, err
	}
	ctx.Trace().Debug().Int64("pos", saved).Int64("target", target).Msg("deref pointer")

	if err := seekTo(r, target); err != nil {
		return nil, err
	}
	v := new(T)
	if err := PT(v).Read(r, ctx, args); err != nil {
		return nil, err
	}
	if err := PT(v).Resolve(r, ctx, args); err != nil {
		return nil, err
	}
	if err := seekTo(r, saved); err != nil {
		return nil, err
	}
	return v, nil
}
