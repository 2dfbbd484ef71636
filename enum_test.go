package binrw

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/alecthomas/assert/v2"
)

// testShape is a two-candidate variant: Zero (magic 0) carries nothing,
// Two (magic 2) carries two u16 fields.
type testShape struct {
	Kind string
	A, B U16
}

func testShapeCandidates() []Candidate[testShape] {
	return []Candidate[testShape]{
		{
			Name: "Zero",
			Read: func(r io.ReadSeeker, ctx Context) (testShape, error) {
				if err := ExpectMagic[U8, None, *U8](r, ctx, 0, None{}); err != nil {
					return testShape{}, err
				}
				return testShape{Kind: "Zero"}, nil
			},
		},
		{
			Name: "Two",
			Read: func(r io.ReadSeeker, ctx Context) (testShape, error) {
				if err := ExpectMagic[U8, None, *U8](r, ctx, 2, None{}); err != nil {
					return testShape{}, err
				}
				var v testShape
				v.Kind = "Two"
				if err := v.A.Read(r, ctx, None{}); err != nil {
					return v, err
				}
				if err := v.B.Read(r, ctx, None{}); err != nil {
					return v, err
				}
				return v, nil
			},
		},
	}
}

func TestVariantCommitsInDeclarationOrder(t *testing.T) {
	ctx := NewContext().WithOrder(BigEndian)

	v, err := ResolveVariant(bytes.NewReader([]byte{0x00}), ctx, testShapeCandidates())
	assert.NoError(t, err)
	assert.Equal(t, "Zero", v.Kind)

	v, err = ResolveVariant(bytes.NewReader([]byte{0x02, 0x00, 0x03, 0x00, 0x04}), ctx, testShapeCandidates())
	assert.NoError(t, err)
	assert.Equal(t, "Two", v.Kind)
	assert.Equal(t, U16(3), v.A)
	assert.Equal(t, U16(4), v.B)
}

func TestVariantFailureListsAllCandidates(t *testing.T) {
	ctx := NewContext().WithOrder(BigEndian)

	_, err := ResolveVariant(bytes.NewReader([]byte{0x01}), ctx, testShapeCandidates())
	assert.Error(t, err)

	var ee *EnumError
	assert.True(t, errors.As(err, &ee))
	assert.Equal(t, int64(0), ee.Pos)
	assert.Equal(t, 2, len(ee.Variants))
	assert.Equal(t, "Zero", ee.Variants[0].Name)
	assert.Equal(t, "Two", ee.Variants[1].Name)

	var bad *BadMagicError
	assert.True(t, errors.As(ee.Variants[0].Err, &bad))
	assert.True(t, errors.As(ee.Variants[1].Err, &bad))
}

func TestVariantMixedFailureKinds(t *testing.T) {
	// Candidate "Two" matches its magic but runs out of bytes, so its
	// recorded error is the I/O failure, not a magic mismatch.
	ctx := NewContext().WithOrder(BigEndian)

	_, err := ResolveVariant(bytes.NewReader([]byte{0x02, 0x00}), ctx, testShapeCandidates())
	var ee *EnumError
	assert.True(t, errors.As(err, &ee))

	var bad *BadMagicError
	assert.True(t, errors.As(ee.Variants[0].Err, &bad))
	assert.True(t, errors.Is(ee.Variants[1].Err, io.ErrUnexpectedEOF))
}

func TestVariantReducedDetailPolicy(t *testing.T) {
	ctx := NewContext().WithOrder(BigEndian).WithVariantPolicy(ReducedDetail)

	_, err := ResolveVariant(bytes.NewReader([]byte{0x01}), ctx, testShapeCandidates())
	assert.Error(t, err)

	var nm *NoVariantMatchError
	assert.True(t, errors.As(err, &nm))
	assert.Equal(t, int64(0), nm.Pos)

	// No candidate detail survives.
	var ee *EnumError
	assert.False(t, errors.As(err, &ee))
}

func TestVariantProbeRestoresPosition(t *testing.T) {
	// After a failed first candidate, the second sees the same position;
	// after total failure the stream is back at the saved position.
	ctx := NewContext().WithOrder(BigEndian)
	r := bytes.NewReader([]byte{0x01, 0xAB})

	_, err := ResolveVariant(r, ctx, testShapeCandidates())
	assert.Error(t, err)

	pos, err := r.Seek(0, io.SeekCurrent)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), pos)
}

func TestVariantCatchAllCommits(t *testing.T) {
	ctx := NewContext().WithOrder(BigEndian)
	candidates := append(testShapeCandidates(), Candidate[testShape]{
		Name: "Raw",
		Read: func(r io.ReadSeeker, ctx Context) (testShape, error) {
			var v testShape
			v.Kind = "Raw"
			if err := v.A.Read(r, ctx, None{}); err != nil {
				return v, err
			}
			return v, nil
		},
	})

	v, err := ResolveVariant(bytes.NewReader([]byte{0x01, 0x02}), ctx, candidates)
	assert.NoError(t, err)
	assert.Equal(t, "Raw", v.Kind)
	assert.Equal(t, U16(0x0102), v.A)
}

func TestVariantPerCandidateOrder(t *testing.T) {
	// A candidate may pin its own byte order, overriding the caller's.
	candidates := []Candidate[testShape]{
		{
			Name: "OneBig",
			Read: func(r io.ReadSeeker, ctx Context) (testShape, error) {
				if err := ExpectMagic[U16, None, *U16](r, ctx.WithOrder(BigEndian), 1, None{}); err != nil {
					return testShape{}, err
				}
				return testShape{Kind: "OneBig"}, nil
			},
		},
		{
			Name: "TwoLittle",
			Read: func(r io.ReadSeeker, ctx Context) (testShape, error) {
				ctx = ctx.WithOrder(LittleEndian)
				if err := ExpectMagic[U16, None, *U16](r, ctx, 2, None{}); err != nil {
					return testShape{}, err
				}
				var v testShape
				v.Kind = "TwoLittle"
				err := v.A.Read(r, ctx, None{})
				return v, err
			},
		},
	}

	ctx := NewContext().WithOrder(BigEndian)

	v, err := ResolveVariant(bytes.NewReader([]byte{0x00, 0x01}), ctx, candidates)
	assert.NoError(t, err)
	assert.Equal(t, "OneBig", v.Kind)

	v, err = ResolveVariant(bytes.NewReader([]byte{0x02, 0x00, 0x03, 0x00}), ctx, candidates)
	assert.NoError(t, err)
	assert.Equal(t, "TwoLittle", v.Kind)
	assert.Equal(t, U16(3), v.A)

	_, err = ResolveVariant(bytes.NewReader([]byte{0x01, 0x00}), ctx, candidates)
	var ee *EnumError
	assert.True(t, errors.As(err, &ee))
}
