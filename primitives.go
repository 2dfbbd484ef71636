package binrw

import (
	"fmt"
	"io"
	"math"

	"github.com/kitlith/binrw/internal/bits"
)

// Fixed-width primitive types. Each completes fully in phase 1 and has a
// no-op Resolve. Decoding honors the byte order in Context; a short stream
// surfaces the underlying I/O error.
type (
	U8  uint8
	U16 uint16
	U32 uint32
	U64 uint64
	I8  int8
	I16 int16
	I32 int32
	I64 int64
	F32 float32
	F64 float64

	// Char is a narrow character: a single-byte decode reinterpreted as a
	// code point. Multi-byte text decoding is deliberately not attempted.
	Char rune
)

func (v *U8) Read(r io.ReadSeeker, ctx Context, _ None) error {
	raw, err := bits.ReadUint(r, ctx.Order().order(), 1)
	if err != nil {
		return err
	}
	*v = U8(raw)
	return nil
}

func (v *U16) Read(r io.ReadSeeker, ctx Context, _ None) error {
	raw, err := bits.ReadUint(r, ctx.Order().order(), 2)
	if err != nil {
		return err
	}
	*v = U16(raw)
	return nil
}

func (v *U32) Read(r io.ReadSeeker, ctx Context, _ None) error {
	raw, err := bits.ReadUint(r, ctx.Order().order(), 4)
	if err != nil {
		return err
	}
	*v = U32(raw)
	return nil
}

func (v *U64) Read(r io.ReadSeeker, ctx Context, _ None) error {
	raw, err := bits.ReadUint(r, ctx.Order().order(), 8)
	if err != nil {
		return err
	}
	*v = U64(raw)
	return nil
}

func (v *I8) Read(r io.ReadSeeker, ctx Context, _ None) error {
	raw, err := bits.ReadUint(r, ctx.Order().order(), 1)
	if err != nil {
		return err
	}
	*v = I8(bits.SignExtend(raw, 1))
	return nil
}

func (v *I16) Read(r io.ReadSeeker, ctx Context, _ None) error {
	raw, err := bits.ReadUint(r, ctx.Order().order(), 2)
	if err != nil {
		return err
	}
	*v = I16(bits.SignExtend(raw, 2))
	return nil
}

func (v *I32) Read(r io.ReadSeeker, ctx Context, _ None) error {
	raw, err := bits.ReadUint(r, ctx.Order().order(), 4)
	if err != nil {
		return err
	}
	*v = I32(bits.SignExtend(raw, 4))
	return nil
}

func (v *I64) Read(r io.ReadSeeker, ctx Context, _ None) error {
	raw, err := bits.ReadUint(r, ctx.Order().order(), 8)
	if err != nil {
		return err
	}
	*v = I64(bits.SignExtend(raw, 8))
	return nil
}

func (v *F32) Read(r io.ReadSeeker, ctx Context, _ None) error {
	raw, err := bits.ReadUint(r, ctx.Order().order(), 4)
	if err != nil {
		return err
	}
	*v = F32(math.Float32frombits(uint32(raw)))
	return nil
}

func (v *F64) Read(r io.ReadSeeker, ctx Context, _ None) error {
	raw, err := bits.ReadUint(r, ctx.Order().order(), 8)
	if err != nil {
		return err
	}
	*v = F64(math.Float64frombits(raw))
	return nil
}

func (v *Char) Read(r io.ReadSeeker, ctx Context, _ None) error {
	raw, err := bits.ReadUint(r, ctx.Order().order(), 1)
	if err != nil {
		return err
	}
	*v = Char(rune(raw))
	return nil
}

func (*U8) Resolve(io.ReadSeeker, Context, None) error   { return nil }
func (*U16) Resolve(io.ReadSeeker, Context, None) error  { return nil }
func (*U32) Resolve(io.ReadSeeker, Context, None) error  { return nil }
func (*U64) Resolve(io.ReadSeeker, Context, None) error  { return nil }
func (*I8) Resolve(io.ReadSeeker, Context, None) error   { return nil }
func (*I16) Resolve(io.ReadSeeker, Context, None) error  { return nil }
func (*I32) Resolve(io.ReadSeeker, Context, None) error  { return nil }
func (*I64) Resolve(io.ReadSeeker, Context, None) error  { return nil }
func (*F32) Resolve(io.ReadSeeker, Context, None) error  { return nil }
func (*F64) Resolve(io.ReadSeeker, Context, None) error  { return nil }
func (*Char) Resolve(io.ReadSeeker, Context, None) error { return nil }

// ReadBytes reads exactly n raw bytes from the current position. It is the
// efficient path for bulk byte data that needs no per-element decoding.
func ReadBytes(r io.ReadSeeker, n int) ([]byte, error) {
	buf, err := bits.ReadExact(r, n)
	if err != nil {
		return nil, fmt.Errorf("reading byte block: %w", err)
	}
	return buf, nil
}
