/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// CmapFormat0 is a byte encoding table (format 0): a direct mapping of the codes 0-255.
type CmapFormat0 struct {
	Language     uint16
	GlyphIDArray [256]uint8
}

// Format returns 0.
func (st *CmapFormat0) Format() uint16 {
	return 0
}

// Lookup returns the glyph index for `code`. Codes >= 256 are unmapped.
func (st *CmapFormat0) Lookup(code uint32) GlyphIndex {
	if code >= 256 {
		return 0
	}
	return GlyphIndex(st.GlyphIDArray[code])
}

func (st *CmapFormat0) unmarshal(r *byteReader) error {
	var format, length uint16
	err := r.read(&format, &length, &st.Language)
	if err != nil {
		return err
	}
	var ids []byte
	err = r.readBytes(&ids, len(st.GlyphIDArray))
	if err != nil {
		return err
	}
	copy(st.GlyphIDArray[:], ids)
	return nil
}

func (st *CmapFormat0) marshal(w *byteWriter) error {
	w.writeUint16(0, 6+uint16(len(st.GlyphIDArray)), st.Language)
	w.writeBytes(st.GlyphIDArray[:])
	return nil
}

// CmapFormat6 is a trimmed table mapping (format 6): a dense mapping of the codes
// [FirstCode, FirstCode+len(GlyphIDArray)).
type CmapFormat6 struct {
	Language     uint16
	FirstCode    uint16
	GlyphIDArray []uint16
}

// Format returns 6.
func (st *CmapFormat6) Format() uint16 {
	return 6
}

// Lookup returns the glyph index for `code`, 0 if outside the covered range.
func (st *CmapFormat6) Lookup(code uint32) GlyphIndex {
	if code < uint32(st.FirstCode) || code-uint32(st.FirstCode) >= uint32(len(st.GlyphIDArray)) {
		return 0
	}
	return GlyphIndex(st.GlyphIDArray[code-uint32(st.FirstCode)])
}

func (st *CmapFormat6) unmarshal(r *byteReader) error {
	var format, length, entryCount uint16
	err := r.read(&format, &length, &st.Language, &st.FirstCode, &entryCount)
	if err != nil {
		return err
	}
	if int(st.FirstCode)+int(entryCount) > 0x10000 {
		logrus.Debugf("cmap format 6: range 0x%04X+%d beyond 0xFFFF", st.FirstCode, entryCount)
		return invalidData("format 6 range 0x%04X+%d beyond 0xFFFF", st.FirstCode, entryCount)
	}
	return r.readSlice(&st.GlyphIDArray, int(entryCount))
}

func (st *CmapFormat6) marshal(w *byteWriter) error {
	length := 10 + 2*len(st.GlyphIDArray)
	if length > 0xFFFF {
		return errRangeCheck
	}
	w.writeUint16(6, uint16(length), st.Language, st.FirstCode, uint16(len(st.GlyphIDArray)))
	w.writeUint16(st.GlyphIDArray...)
	return nil
}

// CmapFormat12 is a segmented coverage subtable (format 12) for the full Unicode range.
type CmapFormat12 struct {
	Language uint32
	Groups   []CmapGroup // sorted by StartCharCode, non-overlapping.
}

// CmapGroup maps the codes [StartCharCode, EndCharCode] to consecutive glyphs from StartGlyphID.
type CmapGroup struct {
	StartCharCode uint32
	EndCharCode   uint32
	StartGlyphID  uint32
}

// Format returns 12.
func (st *CmapFormat12) Format() uint16 {
	return 12
}

// Lookup returns the glyph index for `code`, 0 if unmapped.
func (st *CmapFormat12) Lookup(code uint32) GlyphIndex {
	i, found := slices.BinarySearchFunc(st.Groups, code, func(g CmapGroup, c uint32) int {
		switch {
		case g.EndCharCode < c:
			return -1
		case g.StartCharCode > c:
			return 1
		}
		return 0
	})
	if !found {
		return 0
	}
	gid := uint64(st.Groups[i].StartGlyphID) + uint64(code-st.Groups[i].StartCharCode)
	if gid > 0xFFFF {
		return 0
	}
	return GlyphIndex(gid)
}

func (st *CmapFormat12) unmarshal(r *byteReader) error {
	var format, reserved uint16
	var length, numGroups uint32
	err := r.read(&format, &reserved, &length, &st.Language, &numGroups)
	if err != nil {
		return err
	}
	if uint64(numGroups)*12 > uint64(r.Remaining()) {
		logrus.Debugf("cmap format 12: %d groups do not fit in %d bytes", numGroups, r.Remaining())
		return invalidData("format 12 with %d groups exceeds table", numGroups)
	}

	st.Groups = make([]CmapGroup, numGroups)
	for i := range st.Groups {
		g := &st.Groups[i]
		err := r.read(&g.StartCharCode, &g.EndCharCode, &g.StartGlyphID)
		if err != nil {
			return err
		}
		if g.StartCharCode > g.EndCharCode {
			return invalidData("format 12 group %d start > end", i)
		}
		if i > 0 && g.StartCharCode <= st.Groups[i-1].EndCharCode {
			return invalidData("format 12 group %d not ascending", i)
		}
	}
	return nil
}

func (st *CmapFormat12) marshal(w *byteWriter) error {
	w.writeUint16(12, 0)
	w.writeUint32(uint32(16 + 12*len(st.Groups)))
	w.writeUint32(st.Language)
	w.writeUint32(uint32(len(st.Groups)))
	for _, g := range st.Groups {
		w.writeUint32(g.StartCharCode)
		w.writeUint32(g.EndCharCode)
		w.writeUint32(g.StartGlyphID)
	}
	return nil
}
