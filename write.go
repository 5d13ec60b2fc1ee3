/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// tableData is a table body to be laid out in a serialized font.
type tableData struct {
	tag  Tag
	data []byte
}

// serialize writes an sfnt font with `tables`, whose bodies are laid out in the given order.
//
// The table records are written in ascending tag order. Each body starts on a 4-byte boundary
// and is zero padded, the records carry the unpadded lengths and freshly computed checksums.
// Finally the head checkSumAdjustment is patched in place so that the whole file sums to
// 0xB1B0AFBA.
func serialize(sfntVersion uint32, tables []tableData) ([]byte, error) {
	if len(tables) > 0xFFFF {
		return nil, fmt.Errorf("%w: too many tables (%d)", ErrInvalidFormat, len(tables))
	}

	headIdx := slices.IndexFunc(tables, func(t tableData) bool { return t.tag == TagHead })
	if headIdx < 0 {
		logrus.Debugf("Cannot serialize font without head")
		return nil, tableNotFound(TagHead)
	}
	if len(tables[headIdx].data) < checksumAdjustmentOffset+4 {
		return nil, &TableError{Tag: TagHead, Err: invalidData("head too short (%d bytes)", len(tables[headIdx].data))}
	}

	// The adjustment is computed over the file with the field zeroed.
	head := append([]byte(nil), tables[headIdx].data...)
	binary.BigEndian.PutUint32(head[checksumAdjustmentOffset:], 0)

	ot := newOffsetTable(sfntVersion, len(tables))

	offset := uint64(offsetTableSize + tableRecordSize*len(tables))
	trs := &tableRecords{
		trMap: make(map[Tag]tableRecord, len(tables)),
	}
	for i, t := range tables {
		if i == headIdx {
			t.data = head
		}
		if _, dup := trs.trMap[t.tag]; dup {
			return nil, fmt.Errorf("%w: duplicate table %q", ErrInvalidFormat, t.tag.String())
		}
		if offset+uint64(len(t.data)) > 0xFFFFFFFF {
			return nil, fmt.Errorf("%w: font exceeds 4GiB", ErrInvalidFormat)
		}
		tr := tableRecord{
			tableTag: t.tag,
			checksum: checksum(t.data),
			offset:   offset32(offset),
			length:   uint32(len(t.data)),
		}
		trs.list = append(trs.list, tr)
		trs.trMap[t.tag] = tr
		offset += uint64(len(t.data)+3) &^ 3
	}
	headOffset := int(trs.trMap[TagHead].offset)

	sorted := slices.Clone(trs.list)
	slices.SortFunc(sorted, func(a, b tableRecord) int {
		return bytes.Compare(a.tableTag[:], b.tableTag[:])
	})

	w := newByteWriter()
	if err := ot.write(w); err != nil {
		return nil, err
	}
	if err := (&tableRecords{list: sorted}).write(w); err != nil {
		return nil, err
	}
	for i, t := range tables {
		if i == headIdx {
			w.writeBytes(head)
		} else {
			w.writeBytes(t.data)
		}
		w.pad(4)
	}

	data := w.Bytes()
	adjustment := checksumAdjustmentBase - checksum(data)
	binary.BigEndian.PutUint32(data[headOffset+checksumAdjustmentOffset:], adjustment)
	logrus.Tracef("Serialized %d tables, %d bytes, adjustment 0x%08X", len(tables), len(data), adjustment)

	return data, nil
}

// Bytes serializes the font. Table bodies keep their original relative order and bytes,
// the directory, checksums and checksum adjustment are recomputed.
func (f *Font) Bytes() ([]byte, error) {
	list := slices.Clone(f.trec.list)
	slices.SortStableFunc(list, func(a, b tableRecord) int {
		return cmp.Compare(a.offset, b.offset)
	})

	tables := make([]tableData, 0, len(list))
	for _, tr := range list {
		b, err := f.trec.tableBytes(f.data, tr.tableTag)
		if err != nil {
			return nil, err
		}
		tables = append(tables, tableData{tag: tr.tableTag, data: b})
	}
	return serialize(f.ot.sfntVersion, tables)
}

// Write writes the serialized font to `w`.
func (f *Font) Write(w io.Writer) error {
	b, err := f.Bytes()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// WriteFile writes the serialized font to file `filePath`.
func (f *Font) WriteFile(filePath string) error {
	b, err := f.Bytes()
	if err != nil {
		return err
	}

	fd, err := os.Create(filePath)
	if err != nil {
		return err
	}
	_, err = fd.Write(b)
	if cerr := fd.Close(); err == nil {
		err = cerr
	}
	return err
}
