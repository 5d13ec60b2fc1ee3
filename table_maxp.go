/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import "github.com/sirupsen/logrus"

const (
	maxpVersion05 Fixed = 0x00005000
	maxpVersion10 Fixed = 0x00010000
)

// MaxpTable represents the Maximum Profile (maxp) table.
// This table establishes the memory requirements for the font.
// Version 0.5 tables (CFF fonts) only carry the glyph count.
type MaxpTable struct {
	// Version 0.5 and above:
	Version   Fixed
	NumGlyphs uint16

	// Version 1.0 and above:
	MaxPoints             uint16
	MaxContours           uint16
	MaxCompositePoints    uint16
	MaxCompositeContours  uint16
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16
	MaxComponentDepth     uint16
}

// Tag returns the maxp tag.
func (t *MaxpTable) Tag() Tag {
	return TagMaxp
}

func (t *MaxpTable) unmarshal(r *byteReader) error {
	err := r.read(&t.Version, &t.NumGlyphs)
	if err != nil {
		return err
	}

	if t.Version < maxpVersion10 {
		if t.Version != maxpVersion05 {
			logrus.Debugf("Unexpected maxp version 0x%08X", uint32(t.Version))
		}
		return nil
	}

	err = r.read(&t.MaxPoints, &t.MaxContours, &t.MaxCompositePoints, &t.MaxCompositeContours)
	if err != nil {
		return err
	}

	err = r.read(&t.MaxZones, &t.MaxTwilightPoints, &t.MaxStorage, &t.MaxFunctionDefs, &t.MaxInstructionDefs)
	if err != nil {
		return err
	}

	return r.read(&t.MaxStackElements, &t.MaxSizeOfInstructions, &t.MaxComponentElements, &t.MaxComponentDepth)
}

func (t *MaxpTable) marshal(w *byteWriter) error {
	err := w.write(t.Version, t.NumGlyphs)
	if err != nil {
		return err
	}

	if t.Version < maxpVersion10 {
		return nil
	}

	err = w.write(t.MaxPoints, t.MaxContours, t.MaxCompositePoints, t.MaxCompositeContours)
	if err != nil {
		return err
	}

	err = w.write(t.MaxZones, t.MaxTwilightPoints, t.MaxStorage, t.MaxFunctionDefs, t.MaxInstructionDefs)
	if err != nil {
		return err
	}

	return w.write(t.MaxStackElements, t.MaxSizeOfInstructions, t.MaxComponentElements, t.MaxComponentDepth)
}
