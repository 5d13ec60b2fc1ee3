/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"cmp"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
	"golang.org/x/text/encoding/charmap"
)

// Platform IDs used in cmap and name tables.
const (
	PlatformUnicode   uint16 = 0
	PlatformMacintosh uint16 = 1
	PlatformWindows   uint16 = 3
)

// Windows encoding IDs.
const (
	encodingWindowsUnicodeBMP  uint16 = 1
	encodingWindowsUnicodeFull uint16 = 10
)

// CmapTable represents a Character to Glyph Index Mapping Table (cmap).
// This table defines the mapping of character codes to the glyph index values used
// in the font.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap
//
// Regardless of the encoding scheme, character codes that do not correspond to any glyph in
// the font are mapped to glyph index 0 (.notdef).
type CmapTable struct {
	Version   uint16
	Encodings []CmapEncoding // in encoding record order.
}

// CmapEncoding is an encoding record with its decoded subtable. Records sharing a subtable in
// the font share the same Subtable value.
type CmapEncoding struct {
	PlatformID uint16
	EncodingID uint16
	Subtable   CmapSubtable
}

// CmapSubtable is a decoded cmap subtable of a given format.
type CmapSubtable interface {
	// Format returns the subtable format number.
	Format() uint16
	// Lookup returns the glyph index for character code `code`, 0 if unmapped.
	Lookup(code uint32) GlyphIndex

	marshal(w *byteWriter) error
}

// Tag returns the cmap tag.
func (t *CmapTable) Tag() Tag {
	return TagCmap
}

func (t *CmapTable) unmarshal(r *byteReader) error {
	var numTables uint16
	err := r.read(&t.Version, &numTables)
	if err != nil {
		return err
	}

	type encodingRecord struct {
		platformID uint16
		encodingID uint16
		offset     offset32
	}
	records := make([]encodingRecord, 0, numTables)
	for i := 0; i < int(numTables); i++ {
		var rec encodingRecord
		err := r.read(&rec.platformID, &rec.encodingID, &rec.offset)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}

	subtables := map[offset32]CmapSubtable{}
	t.Encodings = make([]CmapEncoding, 0, len(records))
	for _, rec := range records {
		st, ok := subtables[rec.offset]
		if !ok {
			st, err = decodeCmapSubtable(r, rec.offset)
			if err != nil {
				logrus.Debugf("cmap subtable (%d,%d) at %d: %v", rec.platformID, rec.encodingID, rec.offset, err)
				return fmt.Errorf("subtable (%d,%d): %w", rec.platformID, rec.encodingID, err)
			}
			subtables[rec.offset] = st
		}
		t.Encodings = append(t.Encodings, CmapEncoding{
			PlatformID: rec.platformID,
			EncodingID: rec.encodingID,
			Subtable:   st,
		})
	}
	return nil
}

// decodeCmapSubtable decodes the subtable at `offset` in the cmap table read by `r`.
func decodeCmapSubtable(r *byteReader, offset offset32) (CmapSubtable, error) {
	err := r.SetOffset(int64(offset))
	if err != nil {
		return nil, invalidData("subtable offset %d beyond table", offset)
	}
	format, err := r.readUint16()
	if err != nil {
		return nil, err
	}
	err = r.SetOffset(int64(offset))
	if err != nil {
		return nil, err
	}
	logrus.Tracef("cmap subtable format %d at %d", format, offset)

	var st interface {
		CmapSubtable
		unmarshal(r *byteReader) error
	}
	switch format {
	case 0:
		st = &CmapFormat0{}
	case 4:
		st = &CmapFormat4{}
	case 6:
		st = &CmapFormat6{}
	case 12:
		st = &CmapFormat12{}
	case 2, 8, 10, 13, 14:
		st = &CmapRaw{}
	default:
		return nil, invalidData("unknown subtable format %d", format)
	}

	err = st.unmarshal(r)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (t *CmapTable) marshal(w *byteWriter) error {
	encodings := slices.Clone(t.Encodings)
	slices.SortStableFunc(encodings, func(a, b CmapEncoding) int {
		if c := cmp.Compare(a.PlatformID, b.PlatformID); c != 0 {
			return c
		}
		return cmp.Compare(a.EncodingID, b.EncodingID)
	})

	w.writeUint16(t.Version, uint16(len(encodings)))

	offsets := map[CmapSubtable]uint32{}
	body := newByteWriter()
	start := uint32(4 + 8*len(encodings))
	for _, enc := range encodings {
		if enc.Subtable == nil {
			return errRequiredField
		}
		offset, ok := offsets[enc.Subtable]
		if !ok {
			offset = start + uint32(body.bufferedLen())
			err := enc.Subtable.marshal(body)
			if err != nil {
				return err
			}
			offsets[enc.Subtable] = offset
		}
		w.writeUint16(enc.PlatformID, enc.EncodingID)
		w.writeUint32(offset)
	}
	w.writeBytes(body.Bytes())
	return nil
}

// Subtable returns the subtable for (`platformID`, `encodingID`).
func (t *CmapTable) Subtable(platformID, encodingID uint16) (CmapSubtable, bool) {
	for _, enc := range t.Encodings {
		if enc.PlatformID == platformID && enc.EncodingID == encodingID {
			return enc.Subtable, true
		}
	}
	return nil, false
}

// Lookup returns the glyph index of `code` in subtable (`platformID`, `encodingID`).
// Fails with ErrTableNotFound if the subtable is absent and ErrUnsupportedFormat if its format
// is not decoded. Unmapped codes return 0.
func (t *CmapTable) Lookup(platformID, encodingID uint16, code uint32) (GlyphIndex, error) {
	st, ok := t.Subtable(platformID, encodingID)
	if !ok {
		return 0, &TableError{
			Tag: TagCmap,
			Err: fmt.Errorf("%w: subtable (%d,%d)", ErrTableNotFound, platformID, encodingID),
		}
	}
	if _, raw := st.(*CmapRaw); raw {
		return 0, &TableError{Tag: TagCmap, Err: unsupported("subtable format %d", st.Format())}
	}
	return st.Lookup(code), nil
}

// BestEncoding returns the preferred subtable for Unicode lookups. In order of preference:
// Windows BMP (3,1), any Unicode platform subtable (0,*) and Mac Roman (1,0). Subtables of
// undecoded formats are skipped.
// Fails with ErrUnsupportedFormat if none is present.
func (t *CmapTable) BestEncoding() (CmapEncoding, error) {
	for _, pref := range []func(enc CmapEncoding) bool{
		func(enc CmapEncoding) bool {
			return enc.PlatformID == PlatformWindows && enc.EncodingID == encodingWindowsUnicodeBMP
		},
		func(enc CmapEncoding) bool {
			return enc.PlatformID == PlatformUnicode
		},
		func(enc CmapEncoding) bool {
			return enc.PlatformID == PlatformMacintosh && enc.EncodingID == 0
		},
	} {
		if enc, ok := t.decodedEncoding(pref); ok {
			return enc, nil
		}
	}

	logrus.Debugf("No usable cmap subtable in %d encodings", len(t.Encodings))
	return CmapEncoding{}, &TableError{Tag: TagCmap, Err: unsupported("no Unicode or Mac Roman subtable")}
}

// decodedEncoding returns the first encoding with a decoded subtable matching `match`.
func (t *CmapTable) decodedEncoding(match func(enc CmapEncoding) bool) (CmapEncoding, bool) {
	for _, enc := range t.Encodings {
		if _, raw := enc.Subtable.(*CmapRaw); raw || enc.Subtable == nil {
			continue
		}
		if match(enc) {
			return enc, true
		}
	}
	return CmapEncoding{}, false
}

// GlyphIndex returns the glyph index of `r` in the best subtable (see BestEncoding).
// Unmapped runes return 0 and no error.
func (t *CmapTable) GlyphIndex(r rune) (GlyphIndex, error) {
	enc, err := t.BestEncoding()
	if err != nil {
		return 0, err
	}
	if r < 0 {
		return 0, nil
	}

	code := uint32(r)
	if enc.PlatformID == PlatformMacintosh {
		b, ok := charmap.Macintosh.EncodeRune(r)
		if !ok {
			return 0, nil
		}
		code = uint32(b)
	}
	return enc.Subtable.Lookup(code), nil
}

// GlyphIndexFull returns the glyph index of `r` in the Windows full Unicode (3,10) format 12
// subtable when the font has one, and otherwise falls back to GlyphIndex.
func (t *CmapTable) GlyphIndexFull(r rune) (GlyphIndex, error) {
	enc, ok := t.decodedEncoding(func(enc CmapEncoding) bool {
		return enc.PlatformID == PlatformWindows && enc.EncodingID == encodingWindowsUnicodeFull &&
			enc.Subtable.Format() == 12
	})
	if !ok {
		return t.GlyphIndex(r)
	}
	if r < 0 {
		return 0, nil
	}
	return enc.Subtable.Lookup(uint32(r)), nil
}

// CmapRaw is a subtable of a format without a decoder (2, 8, 10, 13 and 14). Its bytes are
// kept verbatim. Lookup always returns 0; CmapTable.Lookup reports ErrUnsupportedFormat.
type CmapRaw struct {
	Data []byte
}

// Format returns the format number stored in the subtable.
func (st *CmapRaw) Format() uint16 {
	if len(st.Data) < 2 {
		return 0
	}
	return uint16(st.Data[0])<<8 | uint16(st.Data[1])
}

// Lookup returns 0.
func (st *CmapRaw) Lookup(code uint32) GlyphIndex {
	return 0
}

func (st *CmapRaw) unmarshal(r *byteReader) error {
	start := r.Offset()
	format, err := r.readUint16()
	if err != nil {
		return err
	}

	var length uint32
	switch format {
	case 2:
		var l uint16
		err = r.read(&l)
		length = uint32(l)
	case 14:
		err = r.read(&length)
	default:
		var reserved uint16
		err = r.read(&reserved, &length)
	}
	if err != nil {
		return err
	}

	err = r.SetOffset(start)
	if err != nil {
		return err
	}
	if int64(length) > int64(r.Remaining()) {
		logrus.Debugf("cmap format %d length %d exceeds %d", format, length, r.Remaining())
		return invalidData("subtable format %d length %d exceeds table", format, length)
	}
	return r.readBytes(&st.Data, int(length))
}

func (st *CmapRaw) marshal(w *byteWriter) error {
	w.writeBytes(st.Data)
	return nil
}
