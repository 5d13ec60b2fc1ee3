/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func init() {
	logrus.SetLevel(logrus.InfoLevel)
	// logrus.SetLevel(logrus.DebugLevel)
}

// Glyph ids of the test font.
const (
	testGlyphNotdef GlyphIndex = iota
	testGlyphSpace
	testGlyphA
	testGlyphAring // composite: A shifted.
)

// testFont holds the tables of a small synthetic TrueType font.
type testFont struct {
	head   *HeadTable
	hhea   *HheaTable
	maxp   *MaxpTable
	os2    *OS2Table
	hmtx   *HmtxTable
	cmap   *CmapTable
	name   *NameTable
	post   *PostTable
	glyphs []*Glyph
	extra  []Table
}

func newTestFont(t *testing.T) *testFont {
	name := &NameTable{}
	require.NoError(t, name.Set(NameIDFamily, "Test Sans"))
	require.NoError(t, name.Set(NameIDSubfamily, "Regular"))
	require.NoError(t, name.Set(NameIDFullName, "Test Sans Regular"))
	require.NoError(t, name.Set(NameIDPostScriptName, "TestSans-Regular"))

	mac := &CmapFormat0{}
	mac.GlyphIDArray[' '] = uint8(testGlyphSpace)
	mac.GlyphIDArray['A'] = uint8(testGlyphA)
	mac.GlyphIDArray[0x81] = uint8(testGlyphAring) // Aring in Mac Roman.

	return &testFont{
		head: &HeadTable{
			MajorVersion: 1,
			FontRevision: FixedFromFloat(1.5),
			MagicNumber:  headMagicNumber,
			Flags:        0x000B,
			UnitsPerEm:   1000,
			XMax:         700,
			YMin:         -20,
			YMax:         700,
		},
		hhea: &HheaTable{
			MajorVersion:     1,
			Ascender:         800,
			Descender:        -200,
			AdvanceWidthMax:  700,
			CaretSlopeRise:   1,
			NumberOfHMetrics: 3,
		},
		maxp: &MaxpTable{
			Version:              maxpVersion10,
			MaxPoints:            4,
			MaxContours:          1,
			MaxCompositePoints:   3,
			MaxCompositeContours: 1,
			MaxZones:             2,
			MaxComponentElements: 1,
			MaxComponentDepth:    1,
		},
		os2: &OS2Table{
			Version:       4,
			UsWeightClass: 400,
			UsWidthClass:  5,
			FsType:        0x0008,
			AchVendID:     MakeTag("TEST"),
			FsSelection:   0x0040,
			STypoAscender: 800,
			UsWinAscent:   800,
			UsWinDescent:  200,
		},
		hmtx: &HmtxTable{
			HMetrics: []LongHorMetric{
				{AdvanceWidth: 500, Lsb: 0},
				{AdvanceWidth: 250, Lsb: 0},
				{AdvanceWidth: 600, Lsb: 0},
			},
			LeftSideBearings: []int16{100},
		},
		cmap: &CmapTable{
			Encodings: []CmapEncoding{
				{PlatformID: PlatformMacintosh, EncodingID: 0, Subtable: mac},
				{PlatformID: PlatformWindows, EncodingID: 1, Subtable: NewCmapFormat4(map[uint16]GlyphIndex{
					' ':    testGlyphSpace,
					'A':    testGlyphA,
					0x00C5: testGlyphAring,
				})},
			},
		},
		name: name,
		post: &PostTable{
			Version:            postVersion20,
			UnderlinePosition:  -100,
			UnderlineThickness: 50,
			GlyphNameIndex:     []uint16{0, 3, 36, 258},
			Names:              []string{"Aring.comp"},
		},
		glyphs: []*Glyph{
			// .notdef: a box.
			{
				NumberOfContours: 1,
				XMax:             500,
				YMax:             700,
				Simple: &SimpleGlyph{
					EndPtsOfContours: []uint16{3},
					Points: []Point{
						{X: 0, Y: 0, OnCurve: true},
						{X: 0, Y: 700, OnCurve: true},
						{X: 500, Y: 700, OnCurve: true},
						{X: 500, Y: 0, OnCurve: true},
					},
				},
			},
			// space.
			{},
			// A: a triangle.
			{
				NumberOfContours: 1,
				XMax:             600,
				YMax:             700,
				Simple: &SimpleGlyph{
					EndPtsOfContours: []uint16{2},
					Instructions:     []byte{0xB0, 0x01},
					Points: []Point{
						{X: 0, Y: 0, OnCurve: true},
						{X: 300, Y: 700, OnCurve: true},
						{X: 600, Y: 0, OnCurve: true},
					},
				},
			},
			// Aring: A moved by (100, -20).
			{
				NumberOfContours: -1,
				XMin:             100,
				YMin:             -20,
				XMax:             700,
				YMax:             680,
				Composite: &CompositeGlyph{
					Components: []Component{
						{GlyphIndex: testGlyphA, Flags: uint16(useMyMetrics), DX: 100, DY: -20},
					},
				},
			},
		},
	}
}

// tables returns the encoded tables of the font in the order they are laid out.
func (tf *testFont) tables(t *testing.T) []tableData {
	glyf, loca, err := BuildGlyf(tf.glyphs)
	require.NoError(t, err)
	tf.head.IndexToLocFormat = loca.Format
	tf.maxp.NumGlyphs = uint16(len(tf.glyphs))

	list := []Table{tf.head, tf.hhea, tf.maxp, tf.os2, tf.hmtx, tf.cmap, loca, glyf, tf.name, tf.post}
	list = append(list, tf.extra...)

	var tables []tableData
	for _, tbl := range list {
		b, err := EncodeTable(tbl)
		require.NoError(t, err)
		tables = append(tables, tableData{tag: tbl.Tag(), data: b})
	}
	return tables
}

// bytes returns the serialized font.
func (tf *testFont) bytes(t *testing.T) []byte {
	data, err := serialize(sfntVersionTrueType, tf.tables(t))
	require.NoError(t, err)
	return data
}

// font returns the parsed font.
func (tf *testFont) font(t *testing.T) *Font {
	fnt, err := ParseWithOptions(tf.bytes(t), ParseOptions{VerifyChecksums: true})
	require.NoError(t, err)
	return fnt
}
