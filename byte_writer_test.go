/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteWriterWrite(t *testing.T) {
	w := newByteWriter()
	err := w.write(uint8(1), int8(-1), uint16(0x1234), int16(-2), FixedFromFloat(1.5), F2Dot14(0x4000),
		TagHead, LongDateTime(0x7C25B080), GlyphIndex(7), offset16(3), offset32(4))
	require.NoError(t, err)

	expected := []byte{
		0x01,
		0xFF,
		0x12, 0x34,
		0xFF, 0xFE,
		0x00, 0x01, 0x80, 0x00,
		0x40, 0x00,
		'h', 'e', 'a', 'd',
		0, 0, 0, 0, 0x7C, 0x25, 0xB0, 0x80,
		0x00, 0x07,
		0x00, 0x03,
		0x00, 0x00, 0x00, 0x04,
	}
	assert.Equal(t, expected, w.Bytes())
	assert.Equal(t, len(expected), w.bufferedLen())

	err = w.write(1.5)
	assert.Equal(t, errTypeCheck, err)
}

func TestByteWriterSlices(t *testing.T) {
	w := newByteWriter()
	require.NoError(t, w.writeSlice([]uint16{1, 2}))
	require.NoError(t, w.writeSlice([]int16{-1}))
	require.NoError(t, w.writeSlice([]uint32{3}))
	require.NoError(t, w.writeSlice([]int8{-2}))
	assert.Equal(t, []byte{0, 1, 0, 2, 0xFF, 0xFF, 0, 0, 0, 3, 0xFE}, w.Bytes())

	assert.Equal(t, errTypeCheck, w.writeSlice([]float32{1}))
}

func TestByteWriterPad(t *testing.T) {
	w := newByteWriter()
	w.writeBytes([]byte{1, 2, 3, 4, 5})
	w.pad(4)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 0, 0, 0}, w.Bytes())

	// Already aligned.
	w.pad(4)
	assert.Equal(t, 8, w.bufferedLen())
	assert.Equal(t, uint32(0x01020304+0x05000000), w.checksum())
}

// Values written are read back unchanged.
func TestByteWriterReader(t *testing.T) {
	w := newByteWriter()
	require.NoError(t, w.write(FixedFromFloat(-2.25), F2Dot14FromFloat(-0.5), int16(-32768), uint32(0xDEADBEEF)))

	r := newByteReader(w.Bytes())
	var (
		fx  Fixed
		f2  F2Dot14
		i16 int16
		u32 uint32
	)
	require.NoError(t, r.read(&fx, &f2, &i16, &u32))
	assert.Equal(t, -2.25, fx.Float64())
	assert.Equal(t, -0.5, f2.Float64())
	assert.Equal(t, int16(-32768), i16)
	assert.Equal(t, uint32(0xDEADBEEF), u32)
}
