/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"bytes"
	"cmp"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// Modifier collects table edits on top of a Font. The source Font is never mutated:
// Font() serializes the edited tables into a new font.
//
// Edits chain: a setter that changes a field of a table (e.g. SetName) applies to the latest
// version of that table, including one supplied by SetTable or SetRaw.
type Modifier struct {
	font    *Font
	tables  map[Tag]Table
	removed map[Tag]bool
}

// NewModifier returns a modifier without edits for `font`.
func NewModifier(font *Font) *Modifier {
	return &Modifier{
		font:    font,
		tables:  map[Tag]Table{},
		removed: map[Tag]bool{},
	}
}

// SetTable replaces (or adds) the table with the tag of `t`.
func (m *Modifier) SetTable(t Table) {
	tag := t.Tag()
	logrus.Tracef("Modifier: set %s", tag)
	delete(m.removed, tag)
	m.tables[tag] = t
}

// SetRaw replaces (or adds) the table `tag` with the verbatim bytes `data`.
func (m *Modifier) SetRaw(tag Tag, data []byte) {
	m.SetTable(&RawTable{TableTag: tag, Data: append([]byte(nil), data...)})
}

// RemoveTable removes the table `tag`. Removing head fails when the font is built.
func (m *Modifier) RemoveTable(tag Tag) {
	logrus.Tracef("Modifier: remove %s", tag)
	delete(m.tables, tag)
	m.removed[tag] = true
}

// HasTable returns true if the modified font has the table `tag`.
func (m *Modifier) HasTable(tag Tag) bool {
	if m.removed[tag] {
		return false
	}
	if _, ok := m.tables[tag]; ok {
		return true
	}
	return m.font.HasTable(tag)
}

// current returns the latest version of table `tag`.
func (m *Modifier) current(tag Tag) (Table, error) {
	if m.removed[tag] {
		return nil, tableNotFound(tag)
	}
	if t, ok := m.tables[tag]; ok {
		return t, nil
	}
	return m.font.Table(tag)
}

// editable returns the latest version of table `tag` decoded into `t`, registered as an edit.
func editable[T Table](m *Modifier, tag Tag, t T) (T, error) {
	var zero T
	cur, err := m.current(tag)
	if err != nil {
		return zero, err
	}
	if typed, ok := cur.(T); ok {
		m.tables[tag] = typed
		return typed, nil
	}

	// Supplied as raw bytes.
	b, err := EncodeTable(cur)
	if err != nil {
		return zero, err
	}
	if err := decodeTableBytes(t, b); err != nil {
		return zero, err
	}
	m.tables[tag] = t
	return t, nil
}

// SetName sets the name record `nameID` to `s` as a Windows Unicode BMP, English (US) record.
func (m *Modifier) SetName(nameID uint16, s string) error {
	name, err := editable(m, TagName, &NameTable{})
	if err != nil {
		return err
	}
	return name.Set(nameID, s)
}

// SetFontRevision sets head.fontRevision to `revision`.
func (m *Modifier) SetFontRevision(revision float64) error {
	head, err := editable(m, TagHead, &HeadTable{})
	if err != nil {
		return err
	}
	head.FontRevision = FixedFromFloat(revision)
	return nil
}

// SetEmbeddingType sets the OS/2 fsType embedding licensing flags.
func (m *Modifier) SetEmbeddingType(fsType uint16) error {
	os2, err := editable(m, TagOS2, &OS2Table{})
	if err != nil {
		return err
	}
	os2.FsType = fsType
	return nil
}

// SetGlyphs replaces the outlines of the font with `glyphs`, indexed by glyph id. The glyf and
// loca tables are rebuilt, head.indexToLocFormat and maxp.numGlyphs are updated to match.
// Horizontal metrics are not changed and must cover the new glyph count.
func (m *Modifier) SetGlyphs(glyphs []*Glyph) error {
	if len(glyphs) > 0xFFFF {
		return &TableError{Tag: TagMaxp, Err: invalidData("%d glyphs", len(glyphs))}
	}
	glyf, loca, err := BuildGlyf(glyphs)
	if err != nil {
		return err
	}
	head, err := editable(m, TagHead, &HeadTable{})
	if err != nil {
		return err
	}
	maxp, err := editable(m, TagMaxp, &MaxpTable{})
	if err != nil {
		return err
	}

	head.IndexToLocFormat = loca.Format
	maxp.NumGlyphs = uint16(len(glyphs))
	m.SetTable(loca)
	m.SetTable(glyf)
	return nil
}

// Font serializes the modified tables into a new Font. Table bodies keep the order of the
// source font, added tables follow in tag order.
func (m *Modifier) Font() (*Font, error) {
	list := slices.Clone(m.font.trec.list)
	slices.SortStableFunc(list, func(a, b tableRecord) int {
		return cmp.Compare(a.offset, b.offset)
	})

	var tables []tableData
	seen := map[Tag]bool{}
	for _, tr := range list {
		tag := tr.tableTag
		seen[tag] = true
		if m.removed[tag] {
			continue
		}
		if t, ok := m.tables[tag]; ok {
			b, err := EncodeTable(t)
			if err != nil {
				return nil, err
			}
			tables = append(tables, tableData{tag: tag, data: b})
			continue
		}
		b, err := m.font.trec.tableBytes(m.font.data, tag)
		if err != nil {
			return nil, err
		}
		tables = append(tables, tableData{tag: tag, data: b})
	}

	var added []Tag
	for tag := range m.tables {
		if !seen[tag] {
			added = append(added, tag)
		}
	}
	slices.SortFunc(added, func(a, b Tag) int {
		return bytes.Compare(a[:], b[:])
	})
	for _, tag := range added {
		b, err := EncodeTable(m.tables[tag])
		if err != nil {
			return nil, err
		}
		tables = append(tables, tableData{tag: tag, data: b})
	}

	data, err := serialize(m.font.ot.sfntVersion, tables)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
