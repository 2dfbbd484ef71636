package binrw

import "io"

// Candidate is one possible shape considered during variant resolution.
// Read performs the candidate's full phase-1 decode, including its
// discriminator check; declaration order is priority order.
type Candidate[T any] struct {
	Name string
	Read func(r io.ReadSeeker, ctx Context) (T, error)
}

// ResolveVariant tries each candidate in order against the same input
// position and commits to the first one whose read succeeds. A failed
// attempt restores the stream to the saved position before the next
// candidate is tried, so probing never leaks a net position move.
//
// If every candidate fails, the error follows the policy in Context:
// CollectAll returns an EnumError with every (name, error) pair in attempt
// order; ReducedDetail returns a position-only NoVariantMatchError.
//
// A catch-all candidate with no discriminator always succeeds structurally
// and should be declared last.
func ResolveVariant[T any](r io.ReadSeeker, ctx Context, candidates []Candidate[T]) (T, error) {
	var zero T

	saved, err := streamPos(r)
	if err != nil {
		return zero, err
	}

	tr := ctx.Trace()
	attempts := make([]VariantError, 0, len(candidates))
	for _, c := range candidates {
		v, err := c.Read(r, ctx)
		if err == nil {
			tr.Debug().Int64("pos", saved).Str("candidate", c.Name).Msg("variant committed")
			return v, nil
		}

		tr.Debug().Int64("pos", saved).Str("candidate", c.Name).Err(err).Msg("variant rejected")
		attempts = append(attempts, VariantError{Name: c.Name, Err: err})
		if err := seekTo(r, saved); err != nil {
			return zero, err
		}
	}

	if ctx.VariantPolicy() == ReducedDetail {
		return zero, &NoVariantMatchError{Pos: saved}
	}
	return zero, &EnumError{Pos: saved, Variants: attempts}
}
