/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"errors"
	"fmt"
)

// Table is implemented by every sfnt table codec in this package. The Font decodes and encodes
// tables only through this contract, without inspecting their fields.
//
// unmarshal reads the table from a reader spanning exactly the table's bytes. Tables whose layout
// depends on other tables (hmtx, loca, glyf) are configured with that context before unmarshal.
// marshal writes the table's canonical byte layout.
type Table interface {
	Tag() Tag
	unmarshal(r *byteReader) error
	marshal(w *byteWriter) error
}

// RawTable holds the bytes of a table that has no dedicated codec. The bytes are kept verbatim.
type RawTable struct {
	TableTag Tag
	Data     []byte
}

// Tag returns the table tag.
func (t *RawTable) Tag() Tag {
	return t.TableTag
}

func (t *RawTable) unmarshal(r *byteReader) error {
	return r.readBytes(&t.Data, r.Remaining())
}

func (t *RawTable) marshal(w *byteWriter) error {
	w.writeBytes(t.Data)
	return nil
}

// EncodeTable returns the binary representation of `t`.
func EncodeTable(t Table) ([]byte, error) {
	w := newByteWriter()
	err := t.marshal(w)
	if err != nil {
		return nil, &TableError{Tag: t.Tag(), Err: err}
	}
	return w.Bytes(), nil
}

// decodeTableBytes decodes `t` from `data` (exactly the table's bytes). Any failure is wrapped
// with the table's tag.
func decodeTableBytes(t Table, data []byte) error {
	r := newByteReader(data)
	err := t.unmarshal(r)
	if err != nil {
		return decodeError(t.Tag(), err)
	}
	return nil
}

// decodeError wraps a decoding failure of table `tag`. Failures that are not already classified
// are reported as ErrInvalidTableData, keeping the underlying cause in the chain.
func decodeError(tag Tag, err error) error {
	if !errors.Is(err, ErrInvalidTableData) && !errors.Is(err, ErrUnsupportedFormat) {
		err = fmt.Errorf("%w: %w", ErrInvalidTableData, err)
	}
	return &TableError{Tag: tag, Err: err}
}
