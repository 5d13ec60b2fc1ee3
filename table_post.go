/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"github.com/sirupsen/logrus"
)

// post table versions.
const (
	postVersion10 Fixed = 0x00010000
	postVersion20 Fixed = 0x00020000
	postVersion25 Fixed = 0x00025000
	postVersion30 Fixed = 0x00030000
)

// numMacGlyphNames is the number of standard Macintosh glyph names.
const numMacGlyphNames = 258

// PostTable represents a PostScript (post) table.
// This table contains additional information needed for use on PostScript printers.
// Includes FontInfo dictionary entries and the PostScript names of all glyphs.
//
//   - version 1.0 is used the font file contains exactly the 258 glyphs in the standard Macintosh TrueType font file.
//     Glyph list on: https://developer.apple.com/fonts/TrueType-Reference-Manual/RM06/Chap6post.html
//   - version 2.0 is used for fonts that contain some glyphs not in the standard set or have different ordering.
//   - version 2.5 can handle nonstandard ordering of the standard mac glyphs via offsets.
//   - other versions do not contain post glyph name data.
type PostTable struct {
	// header (all versions).
	Version            Fixed
	ItalicAngle        Fixed // in degrees.
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       uint32
	MinMemType42       uint32
	MaxMemType42       uint32
	MinMemType1        uint32
	MaxMemType1        uint32

	// version 2.0.
	GlyphNameIndex []uint16 // len = numGlyphs
	Names          []string // names indexed by GlyphNameIndex-258.

	// version 2.5.
	Offsets []int8 // len = numGlyphs

	// Processed data:
	GlyphNames []GlyphName // index is GlyphID (GID), GlyphNames[GlyphID] -> GlyphName.
}

// Tag returns the post tag.
func (t *PostTable) Tag() Tag {
	return TagPost
}

// GlyphName returns the name of `gid`.
func (t *PostTable) GlyphName(gid GlyphIndex) (GlyphName, bool) {
	if t.Version == postVersion10 && int(gid) < numMacGlyphNames {
		return macGlyphNames[gid], true
	}
	if int(gid) >= len(t.GlyphNames) || t.GlyphNames[gid] == "" {
		return "", false
	}
	return t.GlyphNames[gid], true
}

func (t *PostTable) unmarshal(r *byteReader) error {
	err := r.read(&t.Version, &t.ItalicAngle, &t.UnderlinePosition, &t.UnderlineThickness, &t.IsFixedPitch)
	if err != nil {
		return err
	}
	err = r.read(&t.MinMemType42, &t.MaxMemType42, &t.MinMemType1, &t.MaxMemType1)
	if err != nil {
		return err
	}

	switch t.Version {
	case postVersion10, postVersion30:
	case postVersion20:
		return t.unmarshalNames(r)
	case postVersion25:
		return t.unmarshalOffsets(r)
	default:
		logrus.Debugf("Unsupported version of post (0x%08X) - no post data loaded", uint32(t.Version))
	}
	return nil
}

func (t *PostTable) unmarshalNames(r *byteReader) error {
	numGlyphs, err := r.readUint16()
	if err != nil {
		return err
	}
	err = r.readSlice(&t.GlyphNameIndex, int(numGlyphs))
	if err != nil {
		return err
	}

	numNames := 0
	for _, ni := range t.GlyphNameIndex {
		if ni >= numMacGlyphNames && int(ni)-numMacGlyphNames+1 > numNames {
			numNames = int(ni) - numMacGlyphNames + 1
		}
	}
	// Unreferenced names up to the end of the table are kept too.
	for i := 0; i < numNames || r.Remaining() > 0; i++ {
		numChars, err := r.readUint8()
		if err != nil {
			logrus.Debugf("post: reading name %d/%d outside table", i, numNames)
			return err
		}
		if i >= numNames && int(numChars) > r.Remaining() {
			logrus.Debugf("post: ignoring truncated trailing name %d", i)
			break
		}
		var name []byte
		err = r.readBytes(&name, int(numChars))
		if err != nil {
			return err
		}
		t.Names = append(t.Names, string(name))
	}

	t.GlyphNames = make([]GlyphName, numGlyphs)
	for i, ni := range t.GlyphNameIndex {
		if ni < numMacGlyphNames {
			t.GlyphNames[i] = macGlyphNames[ni]
		} else {
			t.GlyphNames[i] = GlyphName(t.Names[int(ni)-numMacGlyphNames])
		}
		logrus.Tracef("GID %d -> '%s'", i, t.GlyphNames[i])
	}
	return nil
}

func (t *PostTable) unmarshalOffsets(r *byteReader) error {
	numGlyphs, err := r.readUint16()
	if err != nil {
		return err
	}
	err = r.readSlice(&t.Offsets, int(numGlyphs))
	if err != nil {
		return err
	}

	t.GlyphNames = make([]GlyphName, numGlyphs)
	for i, off := range t.Offsets {
		nameIndex := i + int(off)
		if nameIndex < 0 || nameIndex >= numMacGlyphNames {
			logrus.Debugf("post 2.5: name index outside range (%d)", nameIndex)
			continue
		}
		t.GlyphNames[i] = macGlyphNames[nameIndex]
	}
	return nil
}

func (t *PostTable) marshal(w *byteWriter) error {
	err := w.write(t.Version, t.ItalicAngle, t.UnderlinePosition, t.UnderlineThickness, t.IsFixedPitch)
	if err != nil {
		return err
	}
	err = w.write(t.MinMemType42, t.MaxMemType42, t.MinMemType1, t.MaxMemType1)
	if err != nil {
		return err
	}

	switch t.Version {
	case postVersion20:
		w.writeUint16(uint16(len(t.GlyphNameIndex)))
		w.writeUint16(t.GlyphNameIndex...)
		for _, name := range t.Names {
			if len(name) > 255 {
				logrus.Debugf("post: glyph name too long (%d)", len(name))
				return errRangeCheck
			}
			w.writeUint8(uint8(len(name)))
			w.writeBytes([]byte(name))
		}
	case postVersion25:
		w.writeUint16(uint16(len(t.Offsets)))
		return w.writeSlice(t.Offsets)
	}
	return nil
}
