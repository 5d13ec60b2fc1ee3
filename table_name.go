/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"bytes"
	"cmp"
	"strconv"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
)

// Name IDs.
const (
	NameIDCopyright      uint16 = 0
	NameIDFamily         uint16 = 1
	NameIDSubfamily      uint16 = 2
	NameIDUniqueID       uint16 = 3
	NameIDFullName       uint16 = 4
	NameIDVersion        uint16 = 5
	NameIDPostScriptName uint16 = 6
)

// languageEnglishUS is the Windows language ID for English (United States).
const languageEnglishUS uint16 = 0x0409

// NameTable represents the Naming table (name).
// The naming table allows multilingual strings to be associated with the font.
// These strings can represent copyright notices, font names, family names, style names, and so on.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name
type NameTable struct {
	Format  uint16 // 0 or 1.
	Records []*NameRecord

	// Format 1 only.
	LangTags []*LangTagRecord
}

// LangTagRecord is a language tag string (UTF-16BE), referenced by language IDs >= 0x8000.
type LangTagRecord struct {
	Data []byte
}

// NameRecord is a string of the naming table. Data holds the encoded string.
type NameRecord struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	Data       []byte
}

var utf16be = xunicode.UTF16(xunicode.BigEndian, xunicode.IgnoreBOM)

// Decoded decodes the record data to a string. Unicode and Windows records are UTF-16BE,
// Macintosh Roman records are decoded with the Mac OS Roman charmap.
func (nr *NameRecord) Decoded() string {
	switch {
	case nr.PlatformID == PlatformUnicode, nr.PlatformID == PlatformWindows && isUTF16WindowsEncoding(nr.EncodingID):
		// When building a Unicode font for Windows, the platform ID should be 3 and the encoding ID
		// should be 1, and the referenced string data must be encoded in UTF-16BE.
		b, err := utf16be.NewDecoder().Bytes(nr.Data)
		if err == nil {
			return string(b)
		}
		logrus.Debugf("UTF-16 decoding of name %d failed: %v", nr.NameID, err)
	case nr.PlatformID == PlatformMacintosh && nr.EncodingID == 0:
		b, err := charmap.Macintosh.NewDecoder().Bytes(nr.Data)
		if err == nil {
			return string(b)
		}
		logrus.Debugf("Mac Roman decoding of name %d failed: %v", nr.NameID, err)
	}

	return makePrintable(string(nr.Data))
}

// isUTF16WindowsEncoding returns true for the Windows encodings with UTF-16BE strings:
// symbol (0), Unicode BMP (1) and Unicode full (10).
func isUTF16WindowsEncoding(encodingID uint16) bool {
	return encodingID == 0 || encodingID == encodingWindowsUnicodeBMP || encodingID == encodingWindowsUnicodeFull
}

// makePrintable replaces unprintable runes with quotes runes, returning printable string.
func makePrintable(str string) string {
	var buf bytes.Buffer
	for _, r := range str {
		if unicode.IsPrint(r) || r == '\n' {
			buf.WriteRune(r)
		} else {
			buf.WriteString(strconv.QuoteRune(r))
		}
	}
	return buf.String()
}

// Tag returns the name tag.
func (t *NameTable) Tag() Tag {
	return TagName
}

// Get returns the string with `nameID`. Windows Unicode English records are preferred,
// then any Windows or Unicode record, then the first record with that ID.
func (t *NameTable) Get(nameID uint16) (string, bool) {
	var best *NameRecord
	rank := func(nr *NameRecord) int {
		switch {
		case nr.PlatformID == PlatformWindows && nr.EncodingID == 1 && nr.LanguageID == languageEnglishUS:
			return 3
		case nr.PlatformID == PlatformWindows || nr.PlatformID == PlatformUnicode:
			return 2
		}
		return 1
	}
	for _, nr := range t.Records {
		if nr.NameID != nameID {
			continue
		}
		if best == nil || rank(nr) > rank(best) {
			best = nr
		}
	}
	if best == nil {
		return "", false
	}
	return best.Decoded(), true
}

// Set sets the Windows Unicode English (3, 1, 0x0409) record with `nameID` to `s`, adding the
// record if absent. Records are kept sorted.
func (t *NameTable) Set(nameID uint16, s string) error {
	data, err := utf16be.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return err
	}

	for _, nr := range t.Records {
		if nr.PlatformID == PlatformWindows && nr.EncodingID == 1 && nr.LanguageID == languageEnglishUS &&
			nr.NameID == nameID {
			nr.Data = data
			return nil
		}
	}

	t.Records = append(t.Records, &NameRecord{
		PlatformID: PlatformWindows,
		EncodingID: 1,
		LanguageID: languageEnglishUS,
		NameID:     nameID,
		Data:       data,
	})
	slices.SortStableFunc(t.Records, compareNameRecords)
	return nil
}

func compareNameRecords(a, b *NameRecord) int {
	if c := cmp.Compare(a.PlatformID, b.PlatformID); c != 0 {
		return c
	}
	if c := cmp.Compare(a.EncodingID, b.EncodingID); c != 0 {
		return c
	}
	if c := cmp.Compare(a.LanguageID, b.LanguageID); c != 0 {
		return c
	}
	return cmp.Compare(a.NameID, b.NameID)
}

func (t *NameTable) unmarshal(r *byteReader) error {
	var count uint16
	var stringOffset offset16
	err := r.read(&t.Format, &count, &stringOffset)
	if err != nil {
		return err
	}
	if t.Format > 1 {
		logrus.Debugf("name format > 1 (%d)", t.Format)
		return invalidData("name format %d", t.Format)
	}

	type span struct {
		length uint16
		offset offset16
	}
	spans := make([]span, 0, count)
	for i := 0; i < int(count); i++ {
		var nr NameRecord
		var s span
		err = r.read(&nr.PlatformID, &nr.EncodingID, &nr.LanguageID, &nr.NameID, &s.length, &s.offset)
		if err != nil {
			return err
		}
		t.Records = append(t.Records, &nr)
		spans = append(spans, s)
	}

	var langSpans []span
	if t.Format == 1 {
		var langTagCount uint16
		err = r.read(&langTagCount)
		if err != nil {
			return err
		}
		for i := 0; i < int(langTagCount); i++ {
			var s span
			err = r.read(&s.length, &s.offset)
			if err != nil {
				return err
			}
			langSpans = append(langSpans, s)
			t.LangTags = append(t.LangTags, &LangTagRecord{})
		}
	}

	// Get the actual string data.
	readString := func(s span, data *[]byte) error {
		start := int64(stringOffset) + int64(s.offset)
		if start+int64(s.length) > int64(r.Len()) {
			logrus.Debugf("name string offset outside table")
			return invalidData("string [%d, %d) outside table", start, start+int64(s.length))
		}
		err := r.SetOffset(start)
		if err != nil {
			return err
		}
		return r.readBytes(data, int(s.length))
	}
	for i, nr := range t.Records {
		err = readString(spans[i], &nr.Data)
		if err != nil {
			return err
		}
	}
	for i, ltr := range t.LangTags {
		err = readString(langSpans[i], &ltr.Data)
		if err != nil {
			return err
		}
	}

	logrus.Tracef("Name records: %d", len(t.Records))
	return nil
}

func (t *NameTable) marshal(w *byteWriter) error {
	headerLen := 6 + 12*len(t.Records)
	if t.Format == 1 {
		headerLen += 2 + 4*len(t.LangTags)
	}
	if headerLen > 0xFFFF {
		return errRangeCheck
	}

	var storage bytes.Buffer
	offsets := map[string]int{}
	place := func(data []byte) (uint16, uint16, error) {
		off, ok := offsets[string(data)]
		if !ok {
			off = storage.Len()
			storage.Write(data)
			offsets[string(data)] = off
		}
		if off > 0xFFFF || len(data) > 0xFFFF {
			logrus.Debugf("name string storage overflow")
			return 0, 0, errRangeCheck
		}
		return uint16(len(data)), uint16(off), nil
	}

	w.writeUint16(t.Format, uint16(len(t.Records)), uint16(headerLen))
	for _, nr := range t.Records {
		length, off, err := place(nr.Data)
		if err != nil {
			return err
		}
		w.writeUint16(nr.PlatformID, nr.EncodingID, nr.LanguageID, nr.NameID, length, off)
	}
	if t.Format == 1 {
		w.writeUint16(uint16(len(t.LangTags)))
		for _, ltr := range t.LangTags {
			length, off, err := place(ltr.Data)
			if err != nil {
				return err
			}
			w.writeUint16(length, off)
		}
	}
	w.writeBytes(storage.Bytes())
	return nil
}
