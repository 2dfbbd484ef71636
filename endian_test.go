package binrw

import (
	"bytes"
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestEndianFromBOM(t *testing.T) {
	tests := []struct {
		name   string
		bom    uint16
		be     Endian
		le     Endian
		wantOK bool
	}{
		{"FEFF", 0xFEFF, BigEndian, LittleEndian, true},
		{"FFFE", 0xFFFE, LittleEndian, BigEndian, true},
		{"invalid", 0xFEFE, NativeEndian, NativeEndian, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := EndianFromBOM16BE(tt.bom)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.be, e)
			}

			e, ok = EndianFromBOM16LE(tt.bom)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.le, e)
			}
		})
	}
}

func TestReadBOM16(t *testing.T) {
	e, err := ReadBOM16(bytes.NewReader([]byte{0xFF, 0xFE}), NewContext())
	assert.NoError(t, err)
	assert.Equal(t, LittleEndian, e)

	e, err = ReadBOM16(bytes.NewReader([]byte{0xFE, 0xFF}), NewContext())
	assert.NoError(t, err)
	assert.Equal(t, BigEndian, e)
}

func TestReadBOM16Invalid(t *testing.T) {
	_, err := ReadBOM16(bytes.NewReader([]byte{0xFE, 0xFE}), NewContext())
	assert.Error(t, err)

	var bad *BadMagicError
	assert.True(t, errors.As(err, &bad))
	assert.Equal(t, int64(0), bad.Pos)
	assert.Equal(t, uint16(0xFEFE), bad.Found.(uint16))
}

func TestEndianString(t *testing.T) {
	assert.Equal(t, "big", BigEndian.String())
	assert.Equal(t, "little", LittleEndian.String())
	assert.Equal(t, "native", NativeEndian.String())
}
