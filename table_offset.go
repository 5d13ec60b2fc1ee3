/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"fmt"
	"math/bits"

	"github.com/sirupsen/logrus"
)

// offsetTable is the sfnt header preceding the table records.
// searchRange, entrySelector and rangeShift are derived from numTables and are recomputed
// rather than trusted when writing.
type offsetTable struct {
	sfntVersion   uint32
	numTables     uint16
	searchRange   uint16
	entrySelector uint16
	rangeShift    uint16
}

// newOffsetTable returns an offset table for `numTables` tables with the binary search fields
// computed: searchRange is the largest power of two <= numTables times 16, entrySelector is
// log2 of that power and rangeShift is numTables*16 - searchRange.
func newOffsetTable(sfntVersion uint32, numTables int) *offsetTable {
	ot := &offsetTable{
		sfntVersion: sfntVersion,
		numTables:   uint16(numTables),
	}
	if numTables == 0 {
		return ot
	}
	entrySelector := bits.Len(uint(numTables)) - 1
	ot.entrySelector = uint16(entrySelector)
	ot.searchRange = uint16(16 << entrySelector)
	ot.rangeShift = uint16(16*numTables) - ot.searchRange
	return ot
}

func parseOffsetTable(r *byteReader) (*offsetTable, error) {
	ot := &offsetTable{}

	err := r.read(&ot.sfntVersion, &ot.numTables, &ot.searchRange)
	if err != nil {
		return nil, fmt.Errorf("%w: offset table: %v", ErrInvalidFormat, err)
	}

	err = r.read(&ot.entrySelector, &ot.rangeShift)
	if err != nil {
		return nil, fmt.Errorf("%w: offset table: %v", ErrInvalidFormat, err)
	}

	switch ot.sfntVersion {
	case sfntVersionTrueType, sfntVersionApple, sfntVersionCFF:
	default:
		logrus.Debugf("Unknown sfnt version 0x%08X", ot.sfntVersion)
		return nil, fmt.Errorf("%w: unknown sfnt version 0x%08X", ErrInvalidFormat, ot.sfntVersion)
	}

	return ot, nil
}

func (ot *offsetTable) write(w *byteWriter) error {
	return w.write(ot.sfntVersion, ot.numTables, ot.searchRange, ot.entrySelector, ot.rangeShift)
}
