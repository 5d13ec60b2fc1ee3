/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"github.com/sirupsen/logrus"
)

// HmtxTable represents the horizontal metrics (hmtx) table.
// Its layout depends on hhea.numberOfHMetrics and maxp.numGlyphs, see NewHmtxTable.
type HmtxTable struct {
	HMetrics         []LongHorMetric // length is numberOfHMetrics from hhea table.
	LeftSideBearings []int16         // length is numGlyphs - numberOfHmetrics from maxp and hhea tables.

	numberOfHMetrics int
	numGlyphs        int
}

// LongHorMetric is the advance width and left side bearing of a glyph.
type LongHorMetric struct {
	AdvanceWidth uint16
	Lsb          int16
}

// NewHmtxTable returns an hmtx table to be decoded with `numberOfHMetrics` full metrics
// followed by bearings up to `numGlyphs`.
func NewHmtxTable(numberOfHMetrics, numGlyphs int) *HmtxTable {
	return &HmtxTable{
		numberOfHMetrics: numberOfHMetrics,
		numGlyphs:        numGlyphs,
	}
}

// Tag returns the hmtx tag.
func (t *HmtxTable) Tag() Tag {
	return TagHmtx
}

func (t *HmtxTable) unmarshal(r *byteReader) error {
	if t.numberOfHMetrics == 0 && t.numGlyphs > 0 {
		logrus.Debugf("hmtx: numberOfHMetrics is 0")
		return invalidData("numberOfHMetrics is 0 for %d glyphs", t.numGlyphs)
	}

	t.HMetrics = make([]LongHorMetric, 0, t.numberOfHMetrics)
	for i := 0; i < t.numberOfHMetrics; i++ {
		var lhm LongHorMetric
		err := r.read(&lhm.AdvanceWidth, &lhm.Lsb)
		if err != nil {
			return err
		}
		t.HMetrics = append(t.HMetrics, lhm)
	}

	lsbLen := t.numGlyphs - t.numberOfHMetrics
	if lsbLen < 0 {
		logrus.Debugf("hmtx: numberOfHMetrics %d > numGlyphs %d", t.numberOfHMetrics, t.numGlyphs)
		return invalidData("numberOfHMetrics %d exceeds numGlyphs %d", t.numberOfHMetrics, t.numGlyphs)
	}

	return r.readSlice(&t.LeftSideBearings, lsbLen)
}

func (t *HmtxTable) marshal(w *byteWriter) error {
	for _, lhm := range t.HMetrics {
		err := w.write(lhm.AdvanceWidth, lhm.Lsb)
		if err != nil {
			return err
		}
	}
	return w.writeSlice(t.LeftSideBearings)
}

// Metrics returns the advance width and left side bearing of `gid`. Glyphs past the last full
// metric share its advance width.
func (t *HmtxTable) Metrics(gid GlyphIndex) (advance uint16, lsb int16, err error) {
	i := int(gid)
	if i < len(t.HMetrics) {
		return t.HMetrics[i].AdvanceWidth, t.HMetrics[i].Lsb, nil
	}

	j := i - len(t.HMetrics)
	if len(t.HMetrics) == 0 || j >= len(t.LeftSideBearings) {
		return 0, 0, &TableError{Tag: TagHmtx, Err: invalidData("glyph %d out of range", gid)}
	}
	return t.HMetrics[len(t.HMetrics)-1].AdvanceWidth, t.LeftSideBearings[j], nil
}
