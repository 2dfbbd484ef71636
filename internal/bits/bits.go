// Package bits provides the low-level byte-order decode core shared by the
// primitive codec and pointer offsets.
package bits

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ErrInvalidWidth is returned when a decode is requested for a width that
// is not 1, 2, 4, or 8 bytes.
var ErrInvalidWidth = fmt.Errorf("invalid field width: must be 1, 2, 4, or 8")

// ReadExact reads exactly n bytes from r into a fresh buffer. A short
// stream surfaces as io.ErrUnexpectedEOF wrapped with context.
func ReadExact(r io.Reader, n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("reading %d bytes: %w", n, err)
	}
	return buf, nil
}

// DecodeUint decodes an unsigned integer of len(buf) bytes under order.
func DecodeUint(buf []byte, order binary.ByteOrder) (uint64, error) {
	switch len(buf) {
	case 1:
		return uint64(buf[0]), nil
	case 2:
		return uint64(order.Uint16(buf)), nil
	case 4:
		return uint64(order.Uint32(buf)), nil
	case 8:
		return order.Uint64(buf), nil
	default:
		return 0, fmt.Errorf("%w: got %d", ErrInvalidWidth, len(buf))
	}
}

// ReadUint reads and decodes an unsigned integer of the given width.
func ReadUint(r io.Reader, order binary.ByteOrder, width int) (uint64, error) {
	buf, err := ReadExact(r, width)
	if err != nil {
		return 0, err
	}
	return DecodeUint(buf, order)
}

// SignExtend reinterprets the low width*8 bits of v as a signed integer.
func SignExtend(v uint64, width int) int64 {
	shift := uint(64 - width*8)
	return int64(v<<shift) >> shift
}
