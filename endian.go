package binrw

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Endian selects the byte order used to decode fixed-width values.
type Endian uint8

const (
	// NativeEndian decodes using the platform's byte order. It is the
	// default when no order has been supplied.
	NativeEndian Endian = iota
	BigEndian
	LittleEndian
)

func (e Endian) String() string {
	switch e {
	case BigEndian:
		return "big"
	case LittleEndian:
		return "little"
	default:
		return "native"
	}
}

// order maps an Endian to the encoding/binary byte order used for decoding.
func (e Endian) order() binary.ByteOrder {
	switch e {
	case BigEndian:
		return binary.BigEndian
	case LittleEndian:
		return binary.LittleEndian
	default:
		return binary.NativeEndian
	}
}

// EndianFromBOM16BE interprets a byte-order mark that was decoded as a
// big-endian u16. 0xFEFF means the stream is big-endian, 0xFFFE little.
func EndianFromBOM16BE(bom uint16) (Endian, bool) {
	switch bom {
	case 0xFEFF:
		return BigEndian, true
	case 0xFFFE:
		return LittleEndian, true
	default:
		return NativeEndian, false
	}
}

// EndianFromBOM16LE interprets a byte-order mark that was decoded as a
// little-endian u16.
func EndianFromBOM16LE(bom uint16) (Endian, bool) {
	switch bom {
	case 0xFEFF:
		return LittleEndian, true
	case 0xFFFE:
		return BigEndian, true
	default:
		return NativeEndian, false
	}
}

// ReadBOM16 decodes a two-byte byte-order mark from the current position
// and returns the stream order it announces. An unrecognized mark fails
// with a BadMagicError at the mark's position.
func ReadBOM16(r io.ReadSeeker, ctx Context) (Endian, error) {
	pos, err := streamPos(r)
	if err != nil {
		return NativeEndian, err
	}

	var bom U16
	if err := bom.Read(r, ctx.WithOrder(BigEndian), None{}); err != nil {
		return NativeEndian, fmt.Errorf("reading byte-order mark: %w", err)
	}

	e, ok := EndianFromBOM16BE(uint16(bom))
	if !ok {
		return NativeEndian, &BadMagicError{Pos: pos, Found: uint16(bom)}
	}
	return e, nil
}
