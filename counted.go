package binrw

import (
	"fmt"
	"io"
)

// CountArgs carries the arguments for a counted sequence: how many
// elements to decode and the per-element argument bundle.
type CountArgs[A any] struct {
	Count int
	Elem  A
}

// Args builds CountArgs for the common unit-args element case.
func Args(count int) CountArgs[None] {
	return CountArgs[None]{Count: count}
}

// Counted decodes exactly Count elements of a single element type, back to
// back. The first element failure stops the read and propagates unchanged.
type Counted[T, A any, PT ValuePtr[T, A]] struct {
	Items []T
}

func (c *Counted[T, A, PT]) Read(r io.ReadSeeker, ctx Context, args CountArgs[A]) error {
	if args.Count < 0 {
		return fmt.Errorf("counted sequence: %w: %d", ErrInvalidCount, args.Count)
	}
	c.Items = make([]T, args.Count)
	for i := range c.Items {
		if err := PT(&c.Items[i]).Read(r, ctx, args.Elem); err != nil {
			return err
		}
	}
	return nil
}

// Resolve forwards phase 2 element-wise, in the order the elements were
// read.
func (c *Counted[T, A, PT]) Resolve(r io.ReadSeeker, ctx Context, args CountArgs[A]) error {
	for i := range c.Items {
		if err := PT(&c.Items[i]).Resolve(r, ctx, args.Elem); err != nil {
			return err
		}
	}
	return nil
}

// CountFromContext reads a counted sequence whose element count is the
// declared count in Context rather than an explicit argument.
func CountFromContext[T, A any, PT ValuePtr[T, A]](r io.ReadSeeker, ctx Context, elem A) (Counted[T, A, PT], error) {
	n, ok := ctx.Count()
	if !ok {
		return Counted[T, A, PT]{}, fmt.Errorf("counted sequence: %w: no count declared in context", ErrMissingArgs)
	}
	var c Counted[T, A, PT]
	err := c.Read(r, ctx, CountArgs[A]{Count: n, Elem: elem})
	return c, err
}
