/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// simpleGlyphBytes is a square with one off-curve corner: (0,0) (0,100) (100,100)* (100,0).
var simpleGlyphBytes = []byte{
	0x00, 0x01, // numberOfContours
	0x00, 0x00, 0x00, 0x00, 0x00, 0x64, 0x00, 0x64, // bbox
	0x00, 0x03, // endPtsOfContours
	0x00, 0x00, // instructionLength
	0x31, 0x35, 0x32, 0x15, // flags
	0x64,       // x: +100 (short, positive)
	0x64, 0x64, // y: +100, -100 (short)
}

// repeatGlyphBytes has a repeated flag and 16-bit coordinate deltas.
var repeatGlyphBytes = []byte{
	0x00, 0x01,
	0xFE, 0xD4, 0x01, 0xF4, 0xFE, 0xD4, 0x01, 0xF4,
	0x00, 0x02,
	0x00, 0x01, 0xAA, // one instruction
	0x01, 0x39, 0x01, // flags: words, then same x/y repeated once
	0xFE, 0xD4, // x: -300
	0x01, 0xF4, // y: 500
}

// compositeGlyphBytes has a scaled word offset component and a 2x2 byte offset component
// followed by instructions.
var compositeGlyphBytes = []byte{
	0xFF, 0xFF,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x2B, 0x00, 0x02, 0x03, 0xE8, 0xFF, 0xFB, 0x20, 0x00,
	0x01, 0x82, 0x00, 0x01, 0x05, 0xFD, 0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0xC0, 0x00,
	0x00, 0x02, 0xB0, 0x00,
}

func TestDecodeSimpleGlyph(t *testing.T) {
	g, err := decodeGlyph(simpleGlyphBytes)
	require.NoError(t, err)
	require.NotNil(t, g.Simple)
	assert.False(t, g.IsComposite())
	assert.Equal(t, int16(100), g.XMax)

	expected := []Point{
		{X: 0, Y: 0, OnCurve: true},
		{X: 0, Y: 100, OnCurve: true},
		{X: 100, Y: 100, OnCurve: false},
		{X: 100, Y: 0, OnCurve: true},
	}
	assert.Equal(t, expected, g.Simple.Points)
	// Point count is the last end point + 1.
	assert.Len(t, g.Simple.Points, int(g.Simple.EndPtsOfContours[0])+1)
	assert.Empty(t, g.Simple.Instructions)

	g, err = decodeGlyph(repeatGlyphBytes)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA}, g.Simple.Instructions)
	assert.Equal(t, []Point{
		{X: -300, Y: 500, OnCurve: true},
		{X: -300, Y: 500, OnCurve: true},
		{X: -300, Y: 500, OnCurve: true},
	}, g.Simple.Points)
	assert.Len(t, g.Simple.Contours(), 1)
}

// Encoding a decoded glyph reproduces the original bytes.
func TestEncodeGlyph(t *testing.T) {
	for _, data := range [][]byte{simpleGlyphBytes, compositeGlyphBytes} {
		g, err := decodeGlyph(data)
		require.NoError(t, err)

		w := newByteWriter()
		require.NoError(t, encodeGlyph(w, g))
		assert.Equal(t, data, w.Bytes())
	}
}

// Re-encoding points through their deltas reproduces the absolute points.
func TestSimpleGlyphPointsRoundTrip(t *testing.T) {
	points := []Point{
		{X: 0, Y: 0, OnCurve: true},
		{X: 0, Y: 0, OnCurve: true},
		{X: 255, Y: -255, OnCurve: false},
		{X: 511, Y: -511, OnCurve: true},
		{X: -32768, Y: 32767, OnCurve: true},
		{X: 32767, Y: -32768, OnCurve: false},
		{X: 1, Y: 1, OnCurve: true},
	}
	// Runs of identical flags longer than a repeat count can hold.
	for i := 0; i < 300; i++ {
		points = append(points, Point{X: 1, Y: 1, OnCurve: true})
	}

	g := &Glyph{
		NumberOfContours: 2,
		Simple: &SimpleGlyph{
			EndPtsOfContours: []uint16{3, uint16(len(points) - 1)},
			Instructions:     []byte{1, 2, 3},
			Points:           points,
			OverlapSimple:    true,
		},
	}
	w := newByteWriter()
	require.NoError(t, encodeGlyph(w, g))

	decoded, err := decodeGlyph(w.Bytes())
	require.NoError(t, err)
	if diff := cmp.Diff(g, decoded); diff != "" {
		t.Errorf("glyph mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeCompositeGlyph(t *testing.T) {
	g, err := decodeGlyph(compositeGlyphBytes)
	require.NoError(t, err)
	require.True(t, g.IsComposite())
	assert.Equal(t, int16(-1), g.NumberOfContours)

	expected := &CompositeGlyph{
		Components: []Component{
			{
				GlyphIndex: 2,
				Flags:      0x002B,
				DX:         1000,
				DY:         -5,
				Transform:  ComponentTransform{Kind: TransformScale, A: 0x2000, D: 0x2000},
			},
			{
				GlyphIndex: 1,
				Flags:      0x0182,
				DX:         5,
				DY:         -3,
				Transform:  ComponentTransform{Kind: TransformTwoByTwo, A: 0x4000, D: -0x4000},
			},
		},
		Instructions: []byte{0xB0, 0x00},
	}
	if diff := cmp.Diff(expected, g.Composite); diff != "" {
		t.Errorf("composite mismatch (-want +got):\n%s", diff)
	}

	x, y := g.Composite.Components[1].Transform.Matrix(5, -3).Transform(10, 10)
	assert.Equal(t, 15.0, x)
	assert.Equal(t, -13.0, y)
}

func TestDecodeGlyphErrors(t *testing.T) {
	testcases := []struct {
		name     string
		data     []byte
		expected error
	}{
		{
			"truncated header",
			simpleGlyphBytes[:6],
			ErrUnexpectedEndOfData,
		},
		{
			"truncated coordinates",
			simpleGlyphBytes[:len(simpleGlyphBytes)-1],
			ErrUnexpectedEndOfData,
		},
		{
			"repeat overrun",
			[]byte{0x00, 0x01, 0, 0, 0, 0, 0, 0, 0, 0, 0x00, 0x02, 0x00, 0x00, 0x39, 0x05},
			ErrInvalidTableData,
		},
		{
			"decreasing end points",
			[]byte{0x00, 0x02, 0, 0, 0, 0, 0, 0, 0, 0, 0x00, 0x03, 0x00, 0x01, 0x00, 0x00},
			ErrInvalidTableData,
		},
		{
			"point matching",
			[]byte{0xFF, 0xFF, 0, 0, 0, 0, 0, 0, 0, 0, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01},
			ErrUnsupportedFormat,
		},
	}

	for _, tcase := range testcases {
		t.Run(tcase.name, func(t *testing.T) {
			_, err := decodeGlyph(tcase.data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tcase.expected), "%v", err)
		})
	}
}

func TestLocaTable(t *testing.T) {
	t.Run("short", func(t *testing.T) {
		loca := NewLocaTable(locaFormatShort, 3)
		require.NoError(t, decodeTableBytes(loca, []byte{0, 0, 0, 10, 0, 10, 0, 12}))
		assert.Equal(t, []uint32{0, 20, 20, 24}, loca.Offsets)
		assert.Equal(t, 3, loca.NumGlyphs())

		start, end, err := loca.GlyphRange(1)
		require.NoError(t, err)
		assert.Equal(t, start, end)

		_, _, err = loca.GlyphRange(3)
		assert.True(t, errors.Is(err, ErrInvalidTableData))

		b, err := EncodeTable(loca)
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 0, 0, 10, 0, 10, 0, 12}, b)
	})

	t.Run("long", func(t *testing.T) {
		loca := NewLocaTable(locaFormatLong, 1)
		require.NoError(t, decodeTableBytes(loca, []byte{0, 0, 0, 0, 0, 1, 0, 0}))
		assert.Equal(t, []uint32{0, 0x10000}, loca.Offsets)
	})

	t.Run("decreasing", func(t *testing.T) {
		err := decodeTableBytes(NewLocaTable(locaFormatShort, 2), []byte{0, 0, 0, 10, 0, 8})
		assert.True(t, errors.Is(err, ErrInvalidTableData))
	})

	t.Run("format", func(t *testing.T) {
		err := decodeTableBytes(NewLocaTable(2, 1), make([]byte, 8))
		assert.True(t, errors.Is(err, ErrInvalidTableData))
	})

	t.Run("short overflow", func(t *testing.T) {
		loca := &LocaTable{Format: locaFormatShort, Offsets: []uint32{0, 3}}
		_, err := EncodeTable(loca)
		assert.True(t, errors.Is(err, errRangeCheck))
	})
}

func TestLocaFormatFor(t *testing.T) {
	assert.Equal(t, locaFormatShort, locaFormatFor([]uint32{0, 8, 0x1FFFE}))
	assert.Equal(t, locaFormatLong, locaFormatFor([]uint32{0, 0x20000}))
	assert.Equal(t, locaFormatLong, locaFormatFor([]uint32{0, 3}))
}

func TestGlyfTable(t *testing.T) {
	fnt := newTestFont(t).font(t)
	glyf, err := fnt.Glyf()
	require.NoError(t, err)
	assert.Equal(t, 4, glyf.NumGlyphs())

	// Index sequence is non-decreasing and an empty range yields an empty glyph.
	offsets := glyf.Loca().Offsets
	for i := 1; i < len(offsets); i++ {
		assert.LessOrEqual(t, offsets[i-1], offsets[i])
	}
	assert.Equal(t, offsets[testGlyphSpace], offsets[testGlyphSpace+1])
	g, err := glyf.GetGlyph(testGlyphSpace)
	require.NoError(t, err)
	assert.True(t, g.IsEmpty())

	g, err = glyf.GetGlyph(testGlyphA)
	require.NoError(t, err)
	require.NotNil(t, g.Simple)
	assert.Equal(t, []byte{0xB0, 0x01}, g.Simple.Instructions)
	assert.Equal(t, Point{X: 300, Y: 700, OnCurve: true}, g.Simple.Points[1])

	g, err = glyf.GetGlyph(testGlyphAring)
	require.NoError(t, err)
	require.True(t, g.IsComposite())
	comp := g.Composite.Components[0]
	assert.Equal(t, testGlyphA, comp.GlyphIndex)
	assert.True(t, comp.UseMyMetrics())
	assert.False(t, comp.ScaledOffset())
	assert.Equal(t, TransformIdentity, comp.Transform.Kind)

	_, err = glyf.GetGlyph(4)
	assert.True(t, errors.Is(err, ErrInvalidTableData))
}

// loca pointing past the end of glyf fails.
func TestGlyfTableBounds(t *testing.T) {
	loca := &LocaTable{Format: locaFormatLong, Offsets: []uint32{0, 12}, numGlyphs: 1}
	err := decodeTableBytes(NewGlyfTable(loca), make([]byte, 10))
	assert.True(t, errors.Is(err, ErrInvalidTableData))
}

// Every glyph of a real font re-encodes to an equivalent glyph.
func TestGlyfReencode(t *testing.T) {
	fnt := parseGoRegular(t)
	glyf, err := fnt.Glyf()
	require.NoError(t, err)

	glyphs := make([]*Glyph, glyf.NumGlyphs())
	for i := range glyphs {
		g, err := glyf.GetGlyph(GlyphIndex(i))
		require.NoError(t, err, "glyph %d", i)
		glyphs[i] = g
	}

	rebuilt, _, err := BuildGlyf(glyphs)
	require.NoError(t, err)
	require.Equal(t, len(glyphs), rebuilt.NumGlyphs())

	for i, g := range glyphs {
		g2, err := rebuilt.GetGlyph(GlyphIndex(i))
		require.NoError(t, err)
		if g.Composite != nil {
			// Layout bits are recomputed on encoding.
			for j := range g.Composite.Components {
				g.Composite.Components[j].Flags &^= uint16(compositeLayoutFlags)
				g2.Composite.Components[j].Flags &^= uint16(compositeLayoutFlags)
			}
		}
		if diff := cmp.Diff(g, g2, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("glyph %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}
