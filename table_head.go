/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"github.com/sirupsen/logrus"
)

// macStyle bits.
const (
	macStyleBold   = 1 << 0
	macStyleItalic = 1 << 1
)

// HeadTable represents the font header (head) table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/head
type HeadTable struct {
	MajorVersion       uint16
	MinorVersion       uint16
	FontRevision       Fixed
	ChecksumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            LongDateTime
	Modified           LongDateTime
	XMin               int16
	YMin               int16
	XMax               int16
	YMax               int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   int16 // 0 for short offsets (Offset16), 1 for long (Offset32).
	GlyphDataFormat    int16
}

// Tag returns the head tag.
func (t *HeadTable) Tag() Tag {
	return TagHead
}

func (t *HeadTable) unmarshal(r *byteReader) error {
	err := r.read(&t.MajorVersion, &t.MinorVersion, &t.FontRevision)
	if err != nil {
		return err
	}

	err = r.read(&t.ChecksumAdjustment, &t.MagicNumber)
	if err != nil {
		return err
	}
	if t.MagicNumber != headMagicNumber {
		logrus.Debugf("head magic number mismatch: 0x%08X", t.MagicNumber)
		return invalidData("magic number mismatch 0x%08X", t.MagicNumber)
	}

	err = r.read(&t.Flags, &t.UnitsPerEm, &t.Created, &t.Modified)
	if err != nil {
		return err
	}

	err = r.read(&t.XMin, &t.YMin, &t.XMax, &t.YMax)
	if err != nil {
		return err
	}

	return r.read(&t.MacStyle, &t.LowestRecPPEM, &t.FontDirectionHint, &t.IndexToLocFormat, &t.GlyphDataFormat)
}

func (t *HeadTable) marshal(w *byteWriter) error {
	err := w.write(t.MajorVersion, t.MinorVersion, t.FontRevision, t.ChecksumAdjustment, t.MagicNumber)
	if err != nil {
		return err
	}

	err = w.write(t.Flags, t.UnitsPerEm, t.Created, t.Modified, t.XMin, t.YMin, t.XMax, t.YMax)
	if err != nil {
		return err
	}

	return w.write(t.MacStyle, t.LowestRecPPEM, t.FontDirectionHint, t.IndexToLocFormat, t.GlyphDataFormat)
}
