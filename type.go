/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"encoding/binary"
	"math"
	"strings"
	"time"
)

// GlyphName is a representation of a glyph name, e.g. from Adobe's glyph list.
type GlyphName string

// GlyphIndex or Glyph ID (GID) represent each glyph within a font.
type GlyphIndex uint16

/*
Types in truetype fonts:
https://docs.microsoft.com/en-us/typography/opentype/spec/otff

Data Type	Description
--------------------------------------------------------
uint8	  8-bit unsigned integer.
int8	  8-bit signed integer.
uint16	  16-bit unsigned integer.
int16	  16-bit signed integer.
uint32	  32-bit unsigned integer.
int32	  32-bit signed integer.
Fixed	  32-bit signed fixed-point number (16.16)
FWORD	  int16 that describes a quantity in font design units.
UFWORD	  uint16 that describes a quantity in font design units.
F2DOT14	  16-bit signed fixed number with the low 14 bits of fraction (2.14).
LONGDATETIME
          Date represented in number of seconds since 12:00 midnight, January 1, 1904.
          The value is represented as a signed 64-bit integer.
Tag	      Array of four uint8s (length = 32 bits) used to identify a table,
          design-variation axis, script, language system, feature, or baseline
Offset16  Short offset to a table, same as uint16, NULL offset = 0x0000
Offset32  Long offset to a table, same as uint32, NULL offset = 0x00000000
*/

// Fixed is a 32-bit signed fixed-point number (16.16).
type Fixed int32

// F2Dot14 is a 16-bit signed fixed number with the low 14 bits of fraction (2.14).
type F2Dot14 int16

// LongDateTime is the number of seconds since 12:00 midnight, January 1, 1904 (UTC).
type LongDateTime int64

type fword int16
type ufword uint16
type offset16 uint16
type offset32 uint32

// Tag is a four byte table identifier, e.g. "glyf" or "OS/2".
type Tag [4]uint8

// String returns the tag with trailing padding spaces removed.
func (t Tag) String() string {
	return strings.TrimRight(string(t[:]), " ")
}

// MakeTag returns the Tag for `s`. Longer strings are truncated to 4 bytes and shorter ones are
// padded with spaces, e.g. MakeTag("cvt") == MakeTag("cvt ").
func MakeTag(s string) Tag {
	bb := []byte(s)
	if len(bb) > 4 {
		// Trim to 4 bytes.
		bb = bb[:4]
	}
	for len(bb) < 4 {
		// Pad with spaces to fill 4 bytes.
		bb = append(bb, ' ')
	}

	var t Tag
	copy(t[:], bb)
	return t
}

// Well known table tags.
var (
	TagHead = MakeTag("head")
	TagMaxp = MakeTag("maxp")
	TagHhea = MakeTag("hhea")
	TagHmtx = MakeTag("hmtx")
	TagLoca = MakeTag("loca")
	TagGlyf = MakeTag("glyf")
	TagCmap = MakeTag("cmap")
	TagName = MakeTag("name")
	TagOS2  = MakeTag("OS/2")
	TagPost = MakeTag("post")
	TagCvt  = MakeTag("cvt ")
	TagFpgm = MakeTag("fpgm")
	TagPrep = MakeTag("prep")
	TagCFF  = MakeTag("CFF ")
	TagCFF2 = MakeTag("CFF2")
)

// Parts returns the integral and decimal portions of `f`.
func (f Fixed) Parts() (uint16, uint16) {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(f))
	return binary.BigEndian.Uint16(b[0:2]), binary.BigEndian.Uint16(b[2:4])
}

// Float64 returns `f` as a float64.
func (f Fixed) Float64() float64 {
	return float64(f) / 65536.0
}

// FixedFromFloat returns the Fixed closest to `v`, i.e. round(v*65536) truncated to 32 bits.
func FixedFromFloat(v float64) Fixed {
	return Fixed(int32(int64(math.Round(v * 65536.0))))
}

// Float64 returns `f` as a float64.
func (f F2Dot14) Float64() float64 {
	return float64(f) / 16384.0
}

// F2Dot14FromFloat returns the F2Dot14 closest to `v`, clamped to the representable range.
func F2Dot14FromFloat(v float64) F2Dot14 {
	r := math.Round(v * 16384.0)
	if r > math.MaxInt16 {
		r = math.MaxInt16
	}
	if r < math.MinInt16 {
		r = math.MinInt16
	}
	return F2Dot14(r)
}

// longDateTimeEpoch is the LONGDATETIME epoch: 1904-01-01 00:00:00 UTC.
var longDateTimeEpoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// Time returns `d` as a time.Time in UTC.
func (d LongDateTime) Time() time.Time {
	return longDateTimeEpoch.Add(time.Duration(d) * time.Second)
}
