/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedParts(t *testing.T) {
	tcases := []struct {
		val Fixed
		a   uint16
		b   uint16
		f64 float64
	}{
		{Fixed(0x00011000), 0x0001, 0x1000, 1.0625},
		{Fixed(0x00005000), 0x0000, 0x5000, 0.3125},
		{Fixed(0x00025000), 0x0002, 0x5000, 2.3125},
		{Fixed(0x00018000), 0x0001, 0x8000, 1.5},
	}

	for _, tcase := range tcases {
		a, b := tcase.val.Parts()
		if a != tcase.a {
			t.Fatalf("%d != %d", a, tcase.a)
		}
		if b != tcase.b {
			t.Fatalf("%d != %d", b, tcase.b)
		}
		f64 := tcase.val.Float64()
		if f64 != tcase.f64 {
			t.Fatalf("%v != %v", f64, tcase.f64)
		}
		if FixedFromFloat(f64) != tcase.val {
			t.Fatalf("FixedFromFloat(%v) = 0x%08X", f64, uint32(FixedFromFloat(f64)))
		}
	}
	assert.Equal(t, Fixed(-0x00018000), FixedFromFloat(-1.5))
}

func TestF2Dot14(t *testing.T) {
	tcases := []struct {
		val F2Dot14
		f64 float64
	}{
		{0x4000, 1.0},
		{-0x4000, -1.0},
		{0x2000, 0.5},
		{0x7FFF, 32767.0 / 16384.0},
		{-0x8000, -2.0},
	}
	for _, tcase := range tcases {
		assert.Equal(t, tcase.f64, tcase.val.Float64())
		assert.Equal(t, tcase.val, F2Dot14FromFloat(tcase.f64))
	}

	// Clamped to the representable range.
	assert.Equal(t, F2Dot14(0x7FFF), F2Dot14FromFloat(2.0))
	assert.Equal(t, F2Dot14(-0x8000), F2Dot14FromFloat(-3.0))
}

func TestMakeTag(t *testing.T) {
	assert.Equal(t, Tag{'c', 'v', 't', ' '}, MakeTag("cvt"))
	assert.Equal(t, MakeTag("cvt "), MakeTag("cvt"))
	assert.Equal(t, Tag{'h', 'e', 'a', 'd'}, MakeTag("header"))
	assert.Equal(t, Tag{' ', ' ', ' ', ' '}, MakeTag(""))
	assert.Equal(t, "cvt", TagCvt.String())
	assert.Equal(t, "OS/2", TagOS2.String())
}

func TestLongDateTime(t *testing.T) {
	assert.True(t, time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC).Equal(LongDateTime(0).Time()))
	assert.True(t, time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC).Equal(LongDateTime(2082844800).Time()))
}
