/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

// HheaTable represents the horizontal header table (hhea).
// This table contains information for horizontal layout.
// https://docs.microsoft.com/en-us/typography/opentype/spec/hhea
type HheaTable struct {
	MajorVersion        uint16
	MinorVersion        uint16
	Ascender            int16
	Descender           int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	MetricDataFormat    int16
	NumberOfHMetrics    uint16 // Number of hMetric entries in 'hmtx' table.
}

// Tag returns the hhea tag.
func (t *HheaTable) Tag() Tag {
	return TagHhea
}

func (t *HheaTable) unmarshal(r *byteReader) error {
	err := r.read(&t.MajorVersion, &t.MinorVersion)
	if err != nil {
		return err
	}

	err = r.read(&t.Ascender, &t.Descender, &t.LineGap)
	if err != nil {
		return err
	}

	err = r.read(&t.AdvanceWidthMax, &t.MinLeftSideBearing, &t.MinRightSideBearing, &t.XMaxExtent)
	if err != nil {
		return err
	}

	err = r.read(&t.CaretSlopeRise, &t.CaretSlopeRun, &t.CaretOffset)
	if err != nil {
		return err
	}

	// Skip over reserved bytes.
	err = r.Skip(4 * 2)
	if err != nil {
		return err
	}

	return r.read(&t.MetricDataFormat, &t.NumberOfHMetrics)
}

func (t *HheaTable) marshal(w *byteWriter) error {
	err := w.write(t.MajorVersion, t.MinorVersion)
	if err != nil {
		return err
	}

	err = w.write(t.Ascender, t.Descender, t.LineGap)
	if err != nil {
		return err
	}

	err = w.write(t.AdvanceWidthMax, t.MinLeftSideBearing, t.MinRightSideBearing, t.XMaxExtent)
	if err != nil {
		return err
	}

	err = w.write(t.CaretSlopeRise, t.CaretSlopeRun, t.CaretOffset)
	if err != nil {
		return err
	}

	w.writeInt16(0, 0, 0, 0)

	return w.write(t.MetricDataFormat, t.NumberOfHMetrics)
}
