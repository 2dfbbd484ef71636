package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/assert/v2"

	"github.com/kitlith/binrw"
)

const demoLayout = `
order = "big"

[[field]]
name  = "signature"
type  = "u16"
magic = 0x8950

[[field]]
name = "count"
type = "u8"

[[field]]
name       = "title"
type       = "char"
count_from = "count"

[[field]]
name  = "version"
type  = "u16"
order = "little"
`

func TestDecodeLayout(t *testing.T) {
	var lay layout
	err := toml.Unmarshal([]byte(demoLayout), &lay)
	assert.NoError(t, err)

	data := []byte{0x89, 0x50, 0x04, 'R', 'u', 'd', 'y', 0x02, 0x01}
	ctx := binrw.NewContext().WithOrder(binrw.BigEndian)

	var out bytes.Buffer
	err = decode(&out, bytes.NewReader(data), ctx, lay)
	assert.NoError(t, err)

	assert.True(t, strings.Contains(out.String(), "magic ok"))
	assert.True(t, strings.Contains(out.String(), "Rudy"))
	assert.True(t, strings.Contains(out.String(), "258")) // 0x0102 little-endian
}

func TestDecodeBadMagic(t *testing.T) {
	var lay layout
	err := toml.Unmarshal([]byte(demoLayout), &lay)
	assert.NoError(t, err)

	data := []byte{0x89, 0x51, 0x00}
	var out bytes.Buffer
	err = decode(&out, bytes.NewReader(data), binrw.NewContext().WithOrder(binrw.BigEndian), lay)
	assert.Error(t, err)
}

func TestDecodeUnknownCountRef(t *testing.T) {
	lay := layout{Fields: []field{{Name: "body", Type: "u8", CountFrom: "missing"}}}

	var out bytes.Buffer
	err := decode(&out, bytes.NewReader([]byte{0x01}), binrw.NewContext(), lay)
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "missing"))
}

func TestDecodeZeroCountRun(t *testing.T) {
	// A count that resolves to 0 decodes an empty run; the next field must
	// still see its own byte.
	const lay = `
[[field]]
name = "count"
type = "u8"

[[field]]
name       = "entries"
type       = "u8"
count_from = "count"

[[field]]
name = "version"
type = "u8"
`
	var l layout
	err := toml.Unmarshal([]byte(lay), &l)
	assert.NoError(t, err)

	var out bytes.Buffer
	err = decode(&out, bytes.NewReader([]byte{0x00, 0x07}), binrw.NewContext(), l)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(out.String(), "version"))
	assert.True(t, strings.Contains(out.String(), "7"))
}

func TestParseOrder(t *testing.T) {
	e, err := parseOrder("little")
	assert.NoError(t, err)
	assert.Equal(t, binrw.LittleEndian, e)

	e, err = parseOrder("")
	assert.NoError(t, err)
	assert.Equal(t, binrw.NativeEndian, e)

	_, err = parseOrder("middle")
	assert.Error(t, err)
}
