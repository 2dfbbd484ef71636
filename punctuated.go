package binrw

import (
	"fmt"
	"io"
)

// Punctuated is a sequence of elements interleaved with separator values.
// Decoding is ambiguous without an element count, so there is no Value
// implementation: callers must pick Separated or SeparatedTrailing
// explicitly.
type Punctuated[T, P any] struct {
	Items      []T
	Separators []P
}

// Values returns the elements without the separators.
func (p Punctuated[T, P]) Values() []T {
	return p.Items
}

// Separated decodes element, separator, element, …, ending on an element:
// count elements and count-1 separators. The first element or separator
// failure stops the read immediately.
func Separated[T, A, P any, PT ValuePtr[T, A], PP ValuePtr[P, None]](r io.ReadSeeker, ctx Context, count int, elem A) (Punctuated[T, P], error) {
	return readPunctuated[T, A, P, PT, PP](r, ctx, count, elem, false)
}

// SeparatedTrailing decodes element, separator pairs exactly count times:
// count elements and count separators.
func SeparatedTrailing[T, A, P any, PT ValuePtr[T, A], PP ValuePtr[P, None]](r io.ReadSeeker, ctx Context, count int, elem A) (Punctuated[T, P], error) {
	return readPunctuated[T, A, P, PT, PP](r, ctx, count, elem, true)
}

func readPunctuated[T, A, P any, PT ValuePtr[T, A], PP ValuePtr[P, None]](r io.ReadSeeker, ctx Context, count int, elem A, trailing bool) (Punctuated[T, P], error) {
	if count < 0 {
		return Punctuated[T, P]{}, fmt.Errorf("punctuated sequence: %w: %d", ErrInvalidCount, count)
	}
	out := Punctuated[T, P]{
		Items:      make([]T, 0, count),
		Separators: make([]P, 0, count),
	}

	for i := 0; i < count; i++ {
		var v T
		if err := PT(&v).Read(r, ctx, elem); err != nil {
			return out, err
		}
		out.Items = append(out.Items, v)

		if trailing || i+1 != count {
			var sep P
			if err := PP(&sep).Read(r, ctx, None{}); err != nil {
				return out, err
			}
			out.Separators = append(out.Separators, sep)
		}
	}
	return out, nil
}

// ResolvePunctuated forwards phase 2 to every element in read order.
// Separators are expected to be primitives and are not revisited.
func ResolvePunctuated[T, A, P any, PT ValuePtr[T, A]](r io.ReadSeeker, ctx Context, p *Punctuated[T, P], elem A) error {
	for i := range p.Items {
		if err := PT(&p.Items[i]).Resolve(r, ctx, elem); err != nil {
			return err
		}
	}
	return nil
}
