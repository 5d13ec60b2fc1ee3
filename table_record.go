/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"bytes"
	"fmt"

	"github.com/sirupsen/logrus"
)

// tableRecord represents table records, including name (tag) and file offset, size
// and checksum for integrity checking.
type tableRecord struct {
	tableTag Tag
	checksum uint32
	offset   offset32
	length   uint32
}

func (tr *tableRecord) read(r *byteReader) error {
	return r.read(&tr.tableTag, &tr.checksum, &tr.offset, &tr.length)
}

func (tr tableRecord) write(w *byteWriter) error {
	return w.write(tr.tableTag, tr.checksum, tr.offset, tr.length)
}

// end returns the offset just past the table data.
func (tr tableRecord) end() uint64 {
	return uint64(tr.offset) + uint64(tr.length)
}

// tableRecords represents a set of table records in a truetype font file.
// Includes a map by table tag for quick lookup of records.
type tableRecords struct {
	list  []tableRecord
	trMap map[Tag]tableRecord
}

// parseTableRecords reads `ot.numTables` records from `r`. The data must hold all records and
// tags must be unique.
func parseTableRecords(r *byteReader, ot *offsetTable) (*tableRecords, error) {
	numTables := int(ot.numTables)
	if r.Remaining() < numTables*tableRecordSize {
		logrus.Debugf("Data too short for %d table records (%d bytes left)", numTables, r.Remaining())
		return nil, fmt.Errorf("%w: %d table records do not fit in %d bytes", ErrInvalidFormat,
			numTables, r.Len())
	}

	trs := &tableRecords{
		trMap: make(map[Tag]tableRecord, numTables),
	}

	for i := 0; i < numTables; i++ {
		var rec tableRecord
		err := rec.read(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		if _, dup := trs.trMap[rec.tableTag]; dup {
			logrus.Debugf("Duplicate table record %q", rec.tableTag.String())
			return nil, fmt.Errorf("%w: duplicate table %q", ErrInvalidFormat, rec.tableTag.String())
		}
		trs.list = append(trs.list, rec)
		trs.trMap[rec.tableTag] = rec
	}

	return trs, nil
}

func (trs *tableRecords) write(w *byteWriter) error {
	for _, tr := range trs.list {
		err := tr.write(w)
		if err != nil {
			return err
		}
	}
	return nil
}

// HasTable returns true if there is a record of `tag` in table records `trs`.
func (trs *tableRecords) HasTable(tag Tag) bool {
	_, has := trs.trMap[tag]
	return has
}

// tableBytes returns the bytes of the table `tag` within `data`.
// Fails with ErrTableNotFound if absent and ErrInvalidTableData if the record points outside `data`.
func (trs *tableRecords) tableBytes(data []byte, tag Tag) ([]byte, error) {
	tr, has := trs.trMap[tag]
	if !has {
		return nil, tableNotFound(tag)
	}
	if tr.end() > uint64(len(data)) {
		logrus.Debugf("Table %q outside data (%d+%d > %d)", tag.String(), tr.offset, tr.length, len(data))
		return nil, &TableError{
			Tag: tag,
			Err: invalidData("range [%d, %d) exceeds data length %d", tr.offset, tr.end(), len(data)),
		}
	}
	return data[tr.offset:tr.end():tr.end()], nil
}

func (trs *tableRecords) String() string {
	var buf bytes.Buffer
	for i, tr := range trs.list {
		buf.WriteString(fmt.Sprintf("Table record %d: %s checksum=0x%08X offset=%d length=%d\n",
			i+1, tr.tableTag, tr.checksum, tr.offset, tr.length))
	}
	return buf.String()
}
