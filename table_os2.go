/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import "github.com/sirupsen/logrus"

// fsSelection bits.
const (
	fsSelectionItalic = 1 << 0
	fsSelectionBold   = 1 << 5
)

// OS2Table represents the OS/2 metrics table. It consists of metrics and other data that are
// required on Windows. Fields beyond the table's version are zero.
// https://docs.microsoft.com/en-us/typography/opentype/spec/os2
type OS2Table struct {
	// Version 0+
	Version             uint16
	XAvgCharWidth       int16
	UsWeightClass       uint16
	UsWidthClass        uint16
	FsType              uint16
	YSubscriptXSize     int16
	YSubscriptYSize     int16
	YSubscriptXOffset   int16
	YSubscriptYOffset   int16
	YSuperscriptXSize   int16
	YSuperscriptYSize   int16
	YSuperscriptXOffset int16
	YSuperscriptYOffset int16
	YStrikeoutSize      int16
	YStrikeoutPosition  int16
	SFamilyClass        int16
	Panose              [10]uint8
	UlUnicodeRange1     uint32 // Bits 0-31.
	UlUnicodeRange2     uint32 // Bits 32-63.
	UlUnicodeRange3     uint32 // Bits 64-95.
	UlUnicodeRange4     uint32 // Bits 96-127.
	AchVendID           Tag
	FsSelection         uint16
	UsFirstCharIndex    uint16
	UsLastCharIndex     uint16
	STypoAscender       int16
	STypoDescender      int16
	STypoLineGap        int16
	UsWinAscent         uint16
	UsWinDescent        uint16

	// Version 1-5.
	UlCodePageRange1 uint32 // Bits 0-31
	UlCodePageRange2 uint32 // Bits 32-63.

	// Version 2-5
	SxHeight      int16
	SCapHeight    int16
	UsDefaultChar uint16
	UsBreakChar   uint16
	UsMaxContext  uint16

	// Version 5
	UsLowerOpticalPointSize uint16
	UsUpperOpticalPointSize uint16
}

// Tag returns the OS/2 tag.
func (t *OS2Table) Tag() Tag {
	return TagOS2
}

// IsBold returns true if the bold bit of fsSelection is set.
func (t *OS2Table) IsBold() bool {
	return t.FsSelection&fsSelectionBold != 0
}

// IsItalic returns true if the italic bit of fsSelection is set.
func (t *OS2Table) IsItalic() bool {
	return t.FsSelection&fsSelectionItalic != 0
}

func (t *OS2Table) unmarshal(r *byteReader) error {
	err := r.read(&t.Version, &t.XAvgCharWidth, &t.UsWeightClass, &t.UsWidthClass, &t.FsType)
	if err != nil {
		return err
	}

	if t.Version > 5 {
		logrus.Debugf("OS/2 table version %d > 5, reading as 5", t.Version)
	}

	err = r.read(&t.YSubscriptXSize, &t.YSubscriptYSize, &t.YSubscriptXOffset, &t.YSubscriptYOffset)
	if err != nil {
		return err
	}

	err = r.read(&t.YSuperscriptXSize, &t.YSuperscriptYSize, &t.YSuperscriptXOffset, &t.YSuperscriptYOffset)
	if err != nil {
		return err
	}

	err = r.read(&t.YStrikeoutSize, &t.YStrikeoutPosition, &t.SFamilyClass)
	if err != nil {
		return err
	}

	var panose []byte
	err = r.readBytes(&panose, len(t.Panose))
	if err != nil {
		return err
	}
	copy(t.Panose[:], panose)

	err = r.read(&t.UlUnicodeRange1, &t.UlUnicodeRange2, &t.UlUnicodeRange3, &t.UlUnicodeRange4)
	if err != nil {
		return err
	}
	err = r.read(&t.AchVendID, &t.FsSelection, &t.UsFirstCharIndex, &t.UsLastCharIndex, &t.STypoAscender)
	if err != nil {
		return err
	}
	err = r.read(&t.STypoDescender, &t.STypoLineGap, &t.UsWinAscent, &t.UsWinDescent)
	if err != nil {
		return err
	}

	if t.Version == 0 {
		return nil
	}

	// version >= 1.
	err = r.read(&t.UlCodePageRange1, &t.UlCodePageRange2)
	if err != nil {
		return err
	}
	if t.Version == 1 {
		return nil
	}

	// version 2-5.
	err = r.read(&t.SxHeight, &t.SCapHeight, &t.UsDefaultChar, &t.UsBreakChar, &t.UsMaxContext)
	if err != nil {
		return err
	}
	if t.Version < 5 {
		return nil
	}

	// version >= 5.
	return r.read(&t.UsLowerOpticalPointSize, &t.UsUpperOpticalPointSize)
}

func (t *OS2Table) marshal(w *byteWriter) error {
	err := w.write(t.Version, t.XAvgCharWidth, t.UsWeightClass, t.UsWidthClass, t.FsType)
	if err != nil {
		return err
	}

	err = w.write(t.YSubscriptXSize, t.YSubscriptYSize, t.YSubscriptXOffset, t.YSubscriptYOffset)
	if err != nil {
		return err
	}

	err = w.write(t.YSuperscriptXSize, t.YSuperscriptYSize, t.YSuperscriptXOffset, t.YSuperscriptYOffset)
	if err != nil {
		return err
	}

	err = w.write(t.YStrikeoutSize, t.YStrikeoutPosition, t.SFamilyClass)
	if err != nil {
		return err
	}
	w.writeBytes(t.Panose[:])

	err = w.write(t.UlUnicodeRange1, t.UlUnicodeRange2, t.UlUnicodeRange3, t.UlUnicodeRange4)
	if err != nil {
		return err
	}
	err = w.write(t.AchVendID, t.FsSelection, t.UsFirstCharIndex, t.UsLastCharIndex, t.STypoAscender)
	if err != nil {
		return err
	}
	err = w.write(t.STypoDescender, t.STypoLineGap, t.UsWinAscent, t.UsWinDescent)
	if err != nil {
		return err
	}

	if t.Version == 0 {
		return nil
	}
	err = w.write(t.UlCodePageRange1, t.UlCodePageRange2)
	if err != nil {
		return err
	}
	if t.Version == 1 {
		return nil
	}
	err = w.write(t.SxHeight, t.SCapHeight, t.UsDefaultChar, t.UsBreakChar, t.UsMaxContext)
	if err != nil {
		return err
	}
	if t.Version < 5 {
		return nil
	}
	return w.write(t.UsLowerOpticalPointSize, t.UsUpperOpticalPointSize)
}
