/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// GlyfTable represents the Glyph Data table (glyf).
// Information that describes the glyphs in the font in the TrueType outline format.
//
// The 'glyf' table is comprised of a list of glyph data blocks, each of which provides
// the description for a single glyph. The 'glyf' table does not include any overall
// table header or records providing offsets to glyph data blocks. Rather, the 'loca' table
// provides an array of offsets, indexed by glyph IDs, which provide the location of each
// glyph data block within the 'glyf' table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/glyf
//
// Glyphs are decoded on request by GetGlyph.
type GlyfTable struct {
	loca *LocaTable
	data []byte
}

// NewGlyfTable returns a glyf table to be decoded with the glyph offsets in `loca`.
func NewGlyfTable(loca *LocaTable) *GlyfTable {
	return &GlyfTable{loca: loca}
}

// Tag returns the glyf tag.
func (t *GlyfTable) Tag() Tag {
	return TagGlyf
}

// Loca returns the index table the glyph offsets are taken from.
func (t *GlyfTable) Loca() *LocaTable {
	return t.loca
}

// NumGlyphs returns the number of glyphs in the table.
func (t *GlyfTable) NumGlyphs() int {
	if t.loca == nil {
		return 0
	}
	return t.loca.NumGlyphs()
}

func (t *GlyfTable) unmarshal(r *byteReader) error {
	if t.loca == nil {
		logrus.Debugf("glyf: loca missing")
		return errRequiredField
	}
	err := r.readBytes(&t.data, r.Remaining())
	if err != nil {
		return err
	}

	if n := len(t.loca.Offsets); n > 0 && int64(t.loca.Offsets[n-1]) > int64(len(t.data)) {
		logrus.Debugf("glyf: loca end %d beyond glyf length %d", t.loca.Offsets[n-1], len(t.data))
		return invalidData("glyph data end %d beyond table length %d", t.loca.Offsets[n-1], len(t.data))
	}
	return nil
}

func (t *GlyfTable) marshal(w *byteWriter) error {
	w.writeBytes(t.data)
	return nil
}

// GetGlyph decodes glyph `gid`. A glyph with no data is returned as an empty glyph.
func (t *GlyfTable) GetGlyph(gid GlyphIndex) (*Glyph, error) {
	if t.loca == nil {
		return nil, &TableError{Tag: TagGlyf, Err: errRequiredField}
	}
	start, end, err := t.loca.GlyphRange(gid)
	if err != nil {
		return nil, &TableError{Tag: TagGlyf, Err: err}
	}
	if int64(end) > int64(len(t.data)) {
		return nil, &TableError{Tag: TagGlyf, Err: invalidData("glyph %d data [%d, %d) beyond table", gid, start, end)}
	}

	g, err := decodeGlyph(t.data[start:end])
	if err != nil {
		logrus.Debugf("Decoding glyph %d failed: %v", gid, err)
		return nil, decodeError(TagGlyf, fmt.Errorf("glyph %d: %w", gid, err))
	}
	return g, nil
}

// BuildGlyf encodes `glyphs` into a new glyf table and the matching loca table. Each glyph is
// padded to a 4-byte boundary. The loca table uses the short format when all offsets fit.
// nil glyphs are encoded as empty glyphs.
func BuildGlyf(glyphs []*Glyph) (*GlyfTable, *LocaTable, error) {
	w := newByteWriter()
	offsets := make([]uint32, 0, len(glyphs)+1)
	for i, g := range glyphs {
		offsets = append(offsets, uint32(w.bufferedLen()))
		err := encodeGlyph(w, g)
		if err != nil {
			logrus.Debugf("Encoding glyph %d failed: %v", i, err)
			return nil, nil, &TableError{Tag: TagGlyf, Err: fmt.Errorf("glyph %d: %w", i, err)}
		}
		w.pad(4)
	}
	offsets = append(offsets, uint32(w.bufferedLen()))

	loca := &LocaTable{
		Format:    locaFormatFor(offsets),
		Offsets:   offsets,
		numGlyphs: len(glyphs),
	}
	glyf := &GlyfTable{
		loca: loca,
		data: w.Bytes(),
	}
	return glyf, loca, nil
}
