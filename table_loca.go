/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"github.com/sirupsen/logrus"
)

// loca formats, selected by head.indexToLocFormat.
const (
	locaFormatShort int16 = 0
	locaFormatLong  int16 = 1
)

// LocaTable represents the Index to Location (loca) table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/loca
//
// Offsets holds numGlyphs+1 byte offsets into the glyf table, already multiplied by 2 for the
// short format. The extra entry at the end gives the length of the last glyph.
type LocaTable struct {
	Format  int16
	Offsets []uint32

	numGlyphs int
}

// NewLocaTable returns a loca table to be decoded in `format` (head.indexToLocFormat) for
// `numGlyphs` glyphs (maxp.numGlyphs).
func NewLocaTable(format int16, numGlyphs int) *LocaTable {
	return &LocaTable{
		Format:    format,
		numGlyphs: numGlyphs,
	}
}

// Tag returns the loca tag.
func (t *LocaTable) Tag() Tag {
	return TagLoca
}

// NumGlyphs returns the number of glyphs indexed by the table.
func (t *LocaTable) NumGlyphs() int {
	if len(t.Offsets) == 0 {
		return 0
	}
	return len(t.Offsets) - 1
}

// GlyphRange returns the range [start, end) of glyph `gid` within the glyf table.
func (t *LocaTable) GlyphRange(gid GlyphIndex) (start, end uint32, err error) {
	if int(gid) >= t.NumGlyphs() {
		logrus.Debugf("Glyph %d out of range (%d glyphs)", gid, t.NumGlyphs())
		return 0, 0, invalidData("glyph %d out of range [0, %d)", gid, t.NumGlyphs())
	}
	return t.Offsets[gid], t.Offsets[gid+1], nil
}

func (t *LocaTable) unmarshal(r *byteReader) error {
	n := t.numGlyphs + 1
	t.Offsets = make([]uint32, 0, n)

	switch t.Format {
	case locaFormatShort:
		var offsets []uint16
		err := r.readSlice(&offsets, n)
		if err != nil {
			return err
		}
		for _, o := range offsets {
			t.Offsets = append(t.Offsets, 2*uint32(o))
		}
	case locaFormatLong:
		err := r.readSlice(&t.Offsets, n)
		if err != nil {
			return err
		}
	default:
		logrus.Debugf("Invalid index to loca format %d", t.Format)
		return invalidData("invalid indexToLocFormat %d", t.Format)
	}

	for i := 1; i < len(t.Offsets); i++ {
		if t.Offsets[i] < t.Offsets[i-1] {
			logrus.Debugf("loca offsets decreasing at %d: %d < %d", i, t.Offsets[i], t.Offsets[i-1])
			return invalidData("offsets decrease at glyph %d", i)
		}
	}

	return nil
}

func (t *LocaTable) marshal(w *byteWriter) error {
	switch t.Format {
	case locaFormatShort:
		for _, o := range t.Offsets {
			if o%2 != 0 || o/2 > 0xFFFF {
				logrus.Debugf("Offset %d not representable in short loca", o)
				return errRangeCheck
			}
			w.writeUint16(uint16(o / 2))
		}
	case locaFormatLong:
		return w.writeSlice(t.Offsets)
	default:
		return errRangeCheck
	}
	return nil
}

// locaFormatFor returns the short format if every offset in `offsets` fits, otherwise long.
func locaFormatFor(offsets []uint32) int16 {
	for _, o := range offsets {
		if o%2 != 0 || o/2 > 0xFFFF {
			return locaFormatLong
		}
	}
	return locaFormatShort
}
