package binrw

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// ErrUnresolvedPointer reports access to a pointer target before the
	// resolve phase has run. It appears in the panic raised by
	// AbsPtr.Value and RelPtr.Value.
	ErrUnresolvedPointer = errors.New("pointer target accessed before resolve")

	// ErrMissingArgs is returned when an operation that requires explicit
	// arguments is invoked through a no-argument entry point.
	ErrMissingArgs = errors.New("type requires explicit arguments")

	// ErrInvalidCount is returned when a sequence read is given a negative
	// element count, e.g. one derived from a signed field.
	ErrInvalidCount = errors.New("negative element count")
)

// BadMagicError reports a discriminator value that did not match the
// expected literal. Pos is the stream offset at which the value was read.
type BadMagicError struct {
	Pos   int64
	Found any
}

func (e *BadMagicError) Error() string {
	return fmt.Sprintf("bad magic at offset %d: found %v", e.Pos, e.Found)
}

// AssertError reports a failed post-read invariant check.
type AssertError struct {
	Pos int64
	Msg string
}

func (e *AssertError) Error() string {
	return fmt.Sprintf("assertion failed at offset %d: %s", e.Pos, e.Msg)
}

// VariantError pairs a candidate name with the error its read attempt
// produced. Attempt order is preserved by EnumError.Variants.
type VariantError struct {
	Name string
	Err  error
}

// EnumError reports that no variant candidate matched, carrying the full
// per-candidate detail. Pos is the stream offset at which resolution began.
type EnumError struct {
	Pos      int64
	Variants []VariantError
}

func (e *EnumError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "no variant matched at offset %d:", e.Pos)
	for _, v := range e.Variants {
		fmt.Fprintf(&b, "\n\t%s: %v", v.Name, v.Err)
	}
	return b.String()
}

// Unwrap exposes the candidate errors to errors.Is and errors.As.
func (e *EnumError) Unwrap() []error {
	errs := make([]error, len(e.Variants))
	for i, v := range e.Variants {
		errs[i] = v.Err
	}
	return errs
}

// NoVariantMatchError reports variant-resolution failure without
// per-candidate detail. Produced under the ReducedDetail policy.
type NoVariantMatchError struct {
	Pos int64
}

func (e *NoVariantMatchError) Error() string {
	return fmt.Sprintf("no variant matched at offset %d", e.Pos)
}
