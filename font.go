/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Font is a loaded sfnt font. It owns the raw font data and the table directory. Tables are
// decoded from the raw data on every access: nothing is cached and the returned values are
// owned by the caller, except that byte slices in them (e.g. RawTable.Data) may alias the font
// data and must not be modified in place. Font is immutable once loaded and safe for concurrent
// use.
type Font struct {
	data []byte
	ot   *offsetTable
	trec *tableRecords // table records (references other tables).
}

// parseFont parses the offset table and table records in `data`. The tables themselves are only
// decoded on access.
func parseFont(data []byte, opts ParseOptions) (*Font, error) {
	r := newByteReader(data)

	ot, err := parseOffsetTable(r)
	if err != nil {
		return nil, err
	}

	trec, err := parseTableRecords(r, ot)
	if err != nil {
		return nil, err
	}

	f := &Font{
		data: data,
		ot:   ot,
		trec: trec,
	}

	if opts.VerifyChecksums {
		err = f.verifyChecksums()
		if err != nil {
			return nil, err
		}
	}

	return f, nil
}

// numTables returns the number of tables in the directory.
func (f *Font) numTables() int {
	return int(f.ot.numTables)
}

// SfntVersion returns the scaler type of the font: 0x00010000 or 'true' for TrueType outlines,
// 'OTTO' for CFF outlines.
func (f *Font) SfntVersion() uint32 {
	return f.ot.sfntVersion
}

// Tables returns the tags of the tables in the font, in directory order.
func (f *Font) Tables() []Tag {
	tags := make([]Tag, 0, len(f.trec.list))
	for _, tr := range f.trec.list {
		tags = append(tags, tr.tableTag)
	}
	return tags
}

// HasTable returns true if the font has a table `tag`.
func (f *Font) HasTable(tag Tag) bool {
	return f.trec.HasTable(tag)
}

// TableBytes returns a copy of the raw bytes of table `tag`.
func (f *Font) TableBytes(tag Tag) ([]byte, error) {
	b, err := f.trec.tableBytes(f.data, tag)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// decodeTable decodes `t` from the bytes of the table with the same tag.
func (f *Font) decodeTable(t Table) error {
	b, err := f.trec.tableBytes(f.data, t.Tag())
	if err != nil {
		return err
	}
	logrus.Tracef("Decoding %s (%d bytes)", t.Tag(), len(b))
	return decodeTableBytes(t, b)
}

// Table decodes the table `tag` with the codec registered for it. Tables without a codec are
// returned as *RawTable.
func (f *Font) Table(tag Tag) (Table, error) {
	switch tag {
	case TagHead:
		return f.Head()
	case TagMaxp:
		return f.Maxp()
	case TagHhea:
		return f.Hhea()
	case TagHmtx:
		return f.Hmtx()
	case TagLoca:
		return f.Loca()
	case TagGlyf:
		return f.Glyf()
	case TagCmap:
		return f.Cmap()
	case TagName:
		return f.Name()
	case TagOS2:
		return f.OS2()
	case TagPost:
		return f.Post()
	case TagCvt:
		return f.Cvt()
	case TagFpgm:
		return f.Fpgm()
	case TagPrep:
		return f.Prep()
	}

	t := &RawTable{TableTag: tag}
	if err := f.decodeTable(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Head decodes the font header table.
func (f *Font) Head() (*HeadTable, error) {
	t := &HeadTable{}
	if err := f.decodeTable(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Maxp decodes the maximum profile table.
func (f *Font) Maxp() (*MaxpTable, error) {
	t := &MaxpTable{}
	if err := f.decodeTable(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Hhea decodes the horizontal header table.
func (f *Font) Hhea() (*HheaTable, error) {
	t := &HheaTable{}
	if err := f.decodeTable(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Hmtx decodes the horizontal metrics table. Requires hhea and maxp.
func (f *Font) Hmtx() (*HmtxTable, error) {
	hhea, err := f.Hhea()
	if err != nil {
		return nil, err
	}
	maxp, err := f.Maxp()
	if err != nil {
		return nil, err
	}

	t := NewHmtxTable(int(hhea.NumberOfHMetrics), int(maxp.NumGlyphs))
	if err := f.decodeTable(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Loca decodes the glyph index to location table. Requires head and maxp.
func (f *Font) Loca() (*LocaTable, error) {
	head, err := f.Head()
	if err != nil {
		return nil, err
	}
	maxp, err := f.Maxp()
	if err != nil {
		return nil, err
	}

	t := NewLocaTable(head.IndexToLocFormat, int(maxp.NumGlyphs))
	if err := f.decodeTable(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Glyf decodes the glyph data table together with its loca index.
// Fonts with CFF outlines fail with ErrUnsupportedFormat.
func (f *Font) Glyf() (*GlyfTable, error) {
	if !f.HasTable(TagGlyf) && (f.HasTable(TagCFF) || f.HasTable(TagCFF2) || f.ot.sfntVersion == sfntVersionCFF) {
		logrus.Debugf("Font has CFF outlines")
		return nil, &TableError{Tag: TagGlyf, Err: unsupported("CFF outlines")}
	}

	loca, err := f.Loca()
	if err != nil {
		return nil, err
	}

	t := NewGlyfTable(loca)
	if err := f.decodeTable(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Cmap decodes the character to glyph index mapping table.
func (f *Font) Cmap() (*CmapTable, error) {
	t := &CmapTable{}
	if err := f.decodeTable(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Name decodes the naming table.
func (f *Font) Name() (*NameTable, error) {
	t := &NameTable{}
	if err := f.decodeTable(t); err != nil {
		return nil, err
	}
	return t, nil
}

// OS2 decodes the OS/2 and Windows metrics table.
func (f *Font) OS2() (*OS2Table, error) {
	t := &OS2Table{}
	if err := f.decodeTable(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Post decodes the PostScript table.
func (f *Font) Post() (*PostTable, error) {
	t := &PostTable{}
	if err := f.decodeTable(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Cvt decodes the control value table.
func (f *Font) Cvt() (*CvtTable, error) {
	t := &CvtTable{}
	if err := f.decodeTable(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Fpgm decodes the font program table.
func (f *Font) Fpgm() (*FpgmTable, error) {
	t := &FpgmTable{}
	if err := f.decodeTable(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Prep decodes the control value program table.
func (f *Font) Prep() (*PrepTable, error) {
	t := &PrepTable{}
	if err := f.decodeTable(t); err != nil {
		return nil, err
	}
	return t, nil
}

// NumGlyphs returns the number of glyphs in the font, from maxp.
func (f *Font) NumGlyphs() (int, error) {
	maxp, err := f.Maxp()
	if err != nil {
		return 0, err
	}
	return int(maxp.NumGlyphs), nil
}

// UnitsPerEm returns the number of font units per em, from head.
func (f *Font) UnitsPerEm() (int, error) {
	head, err := f.Head()
	if err != nil {
		return 0, err
	}
	return int(head.UnitsPerEm), nil
}

// GlyphIndex returns the glyph index of `r` using the best available cmap subtable.
// Unmapped runes return 0 and no error.
func (f *Font) GlyphIndex(r rune) (GlyphIndex, error) {
	cmap, err := f.Cmap()
	if err != nil {
		return 0, err
	}
	return cmap.GlyphIndex(r)
}

// GlyphIndexFull is GlyphIndex preferring a full Unicode (3,10) format 12 subtable.
func (f *Font) GlyphIndexFull(r rune) (GlyphIndex, error) {
	cmap, err := f.Cmap()
	if err != nil {
		return 0, err
	}
	return cmap.GlyphIndexFull(r)
}

// Glyph returns the decoded glyph `gid`.
func (f *Font) Glyph(gid GlyphIndex) (*Glyph, error) {
	glyf, err := f.Glyf()
	if err != nil {
		return nil, err
	}
	return glyf.GetGlyph(gid)
}

// AdvanceWidth returns the advance width of `gid` in font units.
func (f *Font) AdvanceWidth(gid GlyphIndex) (int, error) {
	hmtx, err := f.Hmtx()
	if err != nil {
		return 0, err
	}
	adv, _, err := hmtx.Metrics(gid)
	return int(adv), err
}

// LeftSideBearing returns the left side bearing of `gid` in font units.
func (f *Font) LeftSideBearing(gid GlyphIndex) (int, error) {
	hmtx, err := f.Hmtx()
	if err != nil {
		return 0, err
	}
	_, lsb, err := hmtx.Metrics(gid)
	return int(lsb), err
}

// FamilyName returns the font family name (name ID 1).
func (f *Font) FamilyName() (string, error) {
	return f.nameString(NameIDFamily)
}

// FullName returns the full font name (name ID 4).
func (f *Font) FullName() (string, error) {
	return f.nameString(NameIDFullName)
}

// PostScriptName returns the PostScript name of the font (name ID 6).
func (f *Font) PostScriptName() (string, error) {
	return f.nameString(NameIDPostScriptName)
}

func (f *Font) nameString(nameID uint16) (string, error) {
	name, err := f.Name()
	if err != nil {
		return "", err
	}
	s, ok := name.Get(nameID)
	if !ok {
		return "", &TableError{Tag: TagName, Err: fmt.Errorf("%w: name id %d", ErrTableNotFound, nameID)}
	}
	return s, nil
}

// IsBold returns true if the font is marked bold, in OS/2 fsSelection if present, otherwise in
// head macStyle.
func (f *Font) IsBold() (bool, error) {
	if f.HasTable(TagOS2) {
		os2, err := f.OS2()
		if err != nil {
			return false, err
		}
		return os2.IsBold(), nil
	}
	head, err := f.Head()
	if err != nil {
		return false, err
	}
	return head.MacStyle&macStyleBold != 0, nil
}

// IsItalic returns true if the font is marked italic, in OS/2 fsSelection if present, otherwise
// in head macStyle.
func (f *Font) IsItalic() (bool, error) {
	if f.HasTable(TagOS2) {
		os2, err := f.OS2()
		if err != nil {
			return false, err
		}
		return os2.IsItalic(), nil
	}
	head, err := f.Head()
	if err != nil {
		return false, err
	}
	return head.MacStyle&macStyleItalic != 0, nil
}

// GlyphName returns the PostScript name of `gid` from the post table.
func (f *Font) GlyphName(gid GlyphIndex) (GlyphName, error) {
	post, err := f.Post()
	if err != nil {
		return "", err
	}
	name, ok := post.GlyphName(gid)
	if !ok {
		return "", &TableError{Tag: TagPost, Err: fmt.Errorf("%w: no name for glyph %d", ErrTableNotFound, gid)}
	}
	return name, nil
}

// verifyChecksums checks each table record checksum and the whole-file checksum adjustment.
func (f *Font) verifyChecksums() error {
	for _, tr := range f.trec.list {
		b, err := f.trec.tableBytes(f.data, tr.tableTag)
		if err != nil {
			return err
		}
		sum := checksum(b)
		if tr.tableTag == TagHead {
			sum = headChecksum(b)
		}
		if sum != tr.checksum {
			logrus.Debugf("Checksum mismatch %s: 0x%08X != 0x%08X", tr.tableTag, sum, tr.checksum)
			return &TableError{
				Tag: tr.tableTag,
				Err: fmt.Errorf("%w: computed 0x%08X, recorded 0x%08X", ErrInvalidChecksum, sum, tr.checksum),
			}
		}
	}

	want, got, err := f.checksumAdjustment()
	if err != nil {
		return err
	}
	if want != got {
		logrus.Debugf("File checksum adjustment mismatch: 0x%08X != 0x%08X", want, got)
		return &TableError{
			Tag: TagHead,
			Err: fmt.Errorf("%w: adjustment 0x%08X, expected 0x%08X", ErrInvalidChecksum, got, want),
		}
	}
	return nil
}

// checksumAdjustment returns the expected and the stored head checkSumAdjustment of the font.
func (f *Font) checksumAdjustment() (want, got uint32, err error) {
	head, err := f.trec.tableBytes(f.data, TagHead)
	if err != nil {
		return 0, 0, err
	}
	if len(head) < checksumAdjustmentOffset+4 {
		return 0, 0, &TableError{Tag: TagHead, Err: invalidData("head too short (%d bytes)", len(head))}
	}
	adj := head[checksumAdjustmentOffset : checksumAdjustmentOffset+4]
	got = uint32(adj[0])<<24 | uint32(adj[1])<<16 | uint32(adj[2])<<8 | uint32(adj[3])

	// The adjustment word contributes its value at its position in the word grid of the file.
	// Only when the head table is 4-aligned does removing it equal subtracting the word.
	start := f.trec.trMap[TagHead].offset + checksumAdjustmentOffset
	if start%4 == 0 {
		want = checksumAdjustmentBase - (checksum(f.data) - got)
		return want, got, nil
	}

	data := append([]byte(nil), f.data...)
	for i := uint32(0); i < 4; i++ {
		data[uint32(start)+i] = 0
	}
	want = checksumAdjustmentBase - checksum(data)
	return want, got, nil
}
