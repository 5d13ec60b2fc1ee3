/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"math/bits"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// CmapFormat4 is a segment mapping to delta values subtable (format 4), covering the Basic
// Multilingual Plane. Segments are sorted by EndCode and do not overlap, the last one maps the
// single code 0xFFFF.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-4-segment-mapping-to-delta-values
type CmapFormat4 struct {
	Language      uint16
	EndCode       []uint16
	StartCode     []uint16
	IDDelta       []int16
	IDRangeOffset []uint16
	GlyphIDArray  []uint16
}

// Format returns 4.
func (st *CmapFormat4) Format() uint16 {
	return 4
}

// Lookup returns the glyph index for `code`, 0 if unmapped.
func (st *CmapFormat4) Lookup(code uint32) GlyphIndex {
	if code > 0xFFFF {
		return 0
	}
	c := uint16(code)

	// First segment with endCode >= c.
	k, _ := slices.BinarySearch(st.EndCode, c)
	if k >= len(st.EndCode) || st.StartCode[k] > c {
		return 0
	}

	delta := uint16(st.IDDelta[k])
	if st.IDRangeOffset[k] == 0 {
		return GlyphIndex(c + delta)
	}

	// idRangeOffset is relative to its own position in the idRangeOffset array, which
	// is followed directly by glyphIdArray.
	idx := int(st.IDRangeOffset[k])/2 + int(c-st.StartCode[k]) - (len(st.EndCode) - k)
	if idx < 0 || idx >= len(st.GlyphIDArray) {
		return 0
	}
	g := st.GlyphIDArray[idx]
	if g == 0 {
		return 0
	}
	return GlyphIndex(g + delta)
}

func (st *CmapFormat4) unmarshal(r *byteReader) error {
	start := r.Offset()

	var format, length, segCountX2 uint16
	err := r.read(&format, &length, &st.Language, &segCountX2)
	if err != nil {
		return err
	}
	if segCountX2 == 0 || segCountX2%2 != 0 {
		logrus.Debugf("cmap format 4: invalid segCountX2 %d", segCountX2)
		return invalidData("format 4 segCountX2 %d", segCountX2)
	}
	segCount := int(segCountX2 / 2)

	// searchRange, entrySelector and rangeShift are derived.
	err = r.Skip(3 * 2)
	if err != nil {
		return err
	}

	err = r.readSlice(&st.EndCode, segCount)
	if err != nil {
		return err
	}
	err = r.Skip(2) // reservedPad
	if err != nil {
		return err
	}
	err = r.readSlice(&st.StartCode, segCount)
	if err != nil {
		return err
	}
	err = r.readSlice(&st.IDDelta, segCount)
	if err != nil {
		return err
	}
	err = r.readSlice(&st.IDRangeOffset, segCount)
	if err != nil {
		return err
	}

	consumed := int(r.Offset() - start)
	numGlyphIDs := (int(length) - consumed) / 2
	if numGlyphIDs < 0 {
		logrus.Debugf("cmap format 4: length %d shorter than segment arrays", length)
		return invalidData("format 4 length %d shorter than %d segments", length, segCount)
	}
	if 2*numGlyphIDs > r.Remaining() {
		logrus.Debugf("cmap format 4: length %d exceeds table, truncating glyph id array", length)
		numGlyphIDs = r.Remaining() / 2
	}
	err = r.readSlice(&st.GlyphIDArray, numGlyphIDs)
	if err != nil {
		return err
	}

	return st.validate()
}

// validate checks the segment invariants the lookup relies on.
func (st *CmapFormat4) validate() error {
	n := len(st.EndCode)
	if n == 0 || st.EndCode[n-1] != 0xFFFF {
		logrus.Debugf("cmap format 4: missing 0xFFFF sentinel segment")
		return invalidData("format 4 missing final 0xFFFF segment")
	}
	for k := 0; k < n; k++ {
		if st.StartCode[k] > st.EndCode[k] {
			return invalidData("format 4 segment %d start 0x%04X > end 0x%04X", k, st.StartCode[k], st.EndCode[k])
		}
		if k > 0 && st.StartCode[k] <= st.EndCode[k-1] {
			return invalidData("format 4 segment %d overlaps previous segment", k)
		}
	}
	return nil
}

func (st *CmapFormat4) marshal(w *byteWriter) error {
	segCount := len(st.EndCode)
	if segCount == 0 || len(st.StartCode) != segCount || len(st.IDDelta) != segCount ||
		len(st.IDRangeOffset) != segCount {
		logrus.Debugf("cmap format 4: inconsistent segment arrays")
		return errRangeCheck
	}
	length := 16 + 8*segCount + 2*len(st.GlyphIDArray)
	if length > 0xFFFF {
		logrus.Debugf("cmap format 4: length %d too large", length)
		return errRangeCheck
	}

	entrySelector := bits.Len(uint(segCount)) - 1
	searchRange := 2 << entrySelector
	rangeShift := 2*segCount - searchRange

	w.writeUint16(4, uint16(length), st.Language, uint16(2*segCount))
	w.writeUint16(uint16(searchRange), uint16(entrySelector), uint16(rangeShift))
	w.writeUint16(st.EndCode...)
	w.writeUint16(0)
	w.writeUint16(st.StartCode...)
	w.writeInt16(st.IDDelta...)
	w.writeUint16(st.IDRangeOffset...)
	w.writeUint16(st.GlyphIDArray...)
	return nil
}

// NewCmapFormat4 returns a format 4 subtable mapping the codes in `m`. Runs of consecutive codes
// with consecutive glyph indices share a segment using idDelta. Mappings to glyph 0 are dropped.
func NewCmapFormat4(m map[uint16]GlyphIndex) *CmapFormat4 {
	codes := make([]uint16, 0, len(m))
	for c, gid := range m {
		if gid != 0 && c != 0xFFFF {
			codes = append(codes, c)
		}
	}
	slices.Sort(codes)

	st := &CmapFormat4{}
	for i := 0; i < len(codes); {
		start := codes[i]
		delta := uint16(m[start]) - start
		j := i + 1
		for j < len(codes) && codes[j] == codes[j-1]+1 && uint16(m[codes[j]])-codes[j] == delta {
			j++
		}
		st.StartCode = append(st.StartCode, start)
		st.EndCode = append(st.EndCode, codes[j-1])
		st.IDDelta = append(st.IDDelta, int16(delta))
		st.IDRangeOffset = append(st.IDRangeOffset, 0)
		i = j
	}

	// Sentinel segment, maps 0xFFFF to glyph 0.
	st.StartCode = append(st.StartCode, 0xFFFF)
	st.EndCode = append(st.EndCode, 0xFFFF)
	st.IDDelta = append(st.IDDelta, 1)
	st.IDRangeOffset = append(st.IDRangeOffset, 0)
	return st
}
