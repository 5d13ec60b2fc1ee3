/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteReaderRead(t *testing.T) {
	data := []byte{
		0x01,       // uint8
		0xFF,       // int8
		0x12, 0x34, // uint16
		0xFF, 0xFE, // int16
		0x00, 0x01, 0x80, 0x00, // Fixed 1.5
		0x40, 0x00, // F2Dot14 1.0
		'g', 'l', 'y', 'f', // Tag
		0, 0, 0, 0, 0x7C, 0x25, 0xB0, 0x80, // LongDateTime
	}

	r := newByteReader(data)
	var (
		u8  uint8
		i8  int8
		u16 uint16
		i16 int16
		fx  Fixed
		f2  F2Dot14
		tag Tag
		ldt LongDateTime
	)
	err := r.read(&u8, &i8, &u16, &i16, &fx, &f2, &tag, &ldt)
	require.NoError(t, err)

	assert.Equal(t, uint8(1), u8)
	assert.Equal(t, int8(-1), i8)
	assert.Equal(t, uint16(0x1234), u16)
	assert.Equal(t, int16(-2), i16)
	assert.Equal(t, 1.5, fx.Float64())
	assert.Equal(t, 1.0, f2.Float64())
	assert.Equal(t, TagGlyf, tag)
	assert.Equal(t, LongDateTime(0x7C25B080), ldt)
	assert.Equal(t, 0, r.Remaining())
	assert.Equal(t, int64(len(data)), r.Offset())
}

// Reading beyond the data fails with ErrUnexpectedEndOfData and keeps the position.
func TestByteReaderBounds(t *testing.T) {
	r := newByteReader([]byte{0x00, 0x01, 0x02})

	v, err := r.readUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(1), v)
	assert.Equal(t, int64(2), r.Offset())

	testcases := []struct {
		name string
		read func() error
	}{
		{"uint16", func() error { _, err := r.readUint16(); return err }},
		{"uint32", func() error { _, err := r.readUint32(); return err }},
		{"fixed", func() error { _, err := r.readFixed(); return err }},
		{"tag", func() error { _, err := r.readTag(); return err }},
		{"bytes", func() error { var b []byte; return r.readBytes(&b, 2) }},
		{"slice", func() error { var s []uint16; return r.readSlice(&s, 1) }},
		{"skip", func() error { return r.Skip(5) }},
	}
	for _, tcase := range testcases {
		t.Run(tcase.name, func(t *testing.T) {
			err := tcase.read()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnexpectedEndOfData))
			assert.Equal(t, int64(2), r.Offset())
			assert.Equal(t, 1, r.Remaining())
		})
	}

	// A multi field read failing half way restores the position.
	r = newByteReader([]byte{0x00, 0x01, 0x02})
	var a, b uint16
	err = r.read(&a, &b)
	assert.True(t, errors.Is(err, ErrUnexpectedEndOfData))
	assert.Equal(t, int64(0), r.Offset())

	// A slice read failing half way restores the position too.
	var s []uint16
	err = r.readSlice(&s, 2)
	assert.True(t, errors.Is(err, ErrUnexpectedEndOfData))
	assert.Equal(t, int64(0), r.Offset())
}

func TestByteReaderSetOffset(t *testing.T) {
	r := newByteReader(make([]byte, 8))

	require.NoError(t, r.SetOffset(8))
	assert.Equal(t, 0, r.Remaining())

	err := r.SetOffset(9)
	assert.True(t, errors.Is(err, ErrUnexpectedEndOfData))
	assert.Equal(t, int64(8), r.Offset())

	err = r.SetOffset(-1)
	assert.True(t, errors.Is(err, ErrUnexpectedEndOfData))

	require.NoError(t, r.SetOffset(2))
	assert.Equal(t, 6, r.Remaining())
	assert.Equal(t, 8, r.Len())
}

// readBytes returns a view into the data rather than a copy.
func TestByteReaderZeroCopy(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	r := newByteReader(data)

	var b []byte
	require.NoError(t, r.Skip(1))
	require.NoError(t, r.readBytes(&b, 2))
	assert.Equal(t, []byte{2, 3}, b)

	data[1] = 9
	assert.Equal(t, byte(9), b[0])
	assert.Equal(t, 2, cap(b))
}

func TestByteReaderTypeCheck(t *testing.T) {
	r := newByteReader(make([]byte, 8))
	var f float64
	err := r.read(&f)
	assert.Equal(t, errTypeCheck, err)
	assert.Equal(t, int64(0), r.Offset())
}
