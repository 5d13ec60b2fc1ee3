/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"encoding/binary"

	"github.com/sirupsen/logrus"
)

// byteReader is a sequential, bounds checked, big-endian reader over an immutable byte slice.
// Every read advances the offset by its width. A failed read returns ErrUnexpectedEndOfData and
// leaves the offset unchanged.
type byteReader struct {
	data []byte
	pos  int
}

func newByteReader(data []byte) *byteReader {
	return &byteReader{
		data: data,
	}
}

// Offset returns current offset position of `r`.
func (r *byteReader) Offset() int64 {
	return int64(r.pos)
}

// Len returns the total length of the underlying data.
func (r *byteReader) Len() int {
	return len(r.data)
}

// Remaining returns the number of bytes left to read.
func (r *byteReader) Remaining() int {
	return len(r.data) - r.pos
}

// SetOffset moves the read position to `offset`. Setting it to the end of the data is allowed,
// beyond it is not.
func (r *byteReader) SetOffset(offset int64) error {
	if offset < 0 || offset > int64(len(r.data)) {
		logrus.Tracef("offset outside data (%d/%d)", offset, len(r.data))
		return ErrUnexpectedEndOfData
	}
	r.pos = int(offset)
	return nil
}

// Skip skips over `n` bytes.
func (r *byteReader) Skip(n int) error {
	_, err := r.take(n)
	return err
}

// take returns the next `n` bytes as a view into the underlying data and advances.
func (r *byteReader) take(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, ErrUnexpectedEndOfData
	}
	b := r.data[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b, nil
}

// readBytes reads `length` bytes straight from `r`. The result is a view into the underlying
// data and is valid for as long as that data is.
func (r *byteReader) readBytes(bp *[]byte, length int) error {
	b, err := r.take(length)
	if err != nil {
		return err
	}
	*bp = b
	return nil
}

// readSlice reads a series of values into `slice` from `r` (big endian).
func (r *byteReader) readSlice(slice interface{}, length int) error {
	if length < 0 {
		return errRangeCheck
	}
	start := r.pos
	err := r.readSliceValues(slice, length)
	if err != nil {
		r.pos = start
	}
	return err
}

func (r *byteReader) readSliceValues(slice interface{}, length int) error {
	switch t := slice.(type) {
	case *[]uint8:
		b, err := r.take(length)
		if err != nil {
			return err
		}
		*t = append(*t, b...)
	case *[]uint16:
		for i := 0; i < length; i++ {
			val, err := r.readUint16()
			if err != nil {
				return err
			}
			*t = append(*t, val)
		}
	case *[]int16:
		for i := 0; i < length; i++ {
			val, err := r.readInt16()
			if err != nil {
				return err
			}
			*t = append(*t, val)
		}
	case *[]uint32:
		for i := 0; i < length; i++ {
			val, err := r.readUint32()
			if err != nil {
				return err
			}
			*t = append(*t, val)
		}
	case *[]int8:
		for i := 0; i < length; i++ {
			val, err := r.readInt8()
			if err != nil {
				return err
			}
			*t = append(*t, val)
		}
	case *[]offset16:
		for i := 0; i < length; i++ {
			val, err := r.readOffset16()
			if err != nil {
				return err
			}
			*t = append(*t, val)
		}
	case *[]offset32:
		for i := 0; i < length; i++ {
			val, err := r.readOffset32()
			if err != nil {
				return err
			}
			*t = append(*t, val)
		}
	case *[]fword:
		for i := 0; i < length; i++ {
			val, err := r.readFword()
			if err != nil {
				return err
			}
			*t = append(*t, val)
		}

	default:
		logrus.Debugf("Unsupported type: %T (readSlice)", t)
		return errTypeCheck
	}
	return nil
}

// read reads a series of fields from `r`. On failure the offset is restored to where it was
// before the call.
func (r *byteReader) read(fields ...interface{}) error {
	start := r.pos
	for _, f := range fields {
		err := r.readField(f)
		if err != nil {
			r.pos = start
			return err
		}
	}
	return nil
}

func (r *byteReader) readField(f interface{}) error {
	var err error
	switch t := f.(type) {
	case *F2Dot14:
		*t, err = r.readF2dot14()
	case *Fixed:
		*t, err = r.readFixed()
	case *fword:
		*t, err = r.readFword()
	case *ufword:
		*t, err = r.readUfword()
	case *int8:
		*t, err = r.readInt8()
	case *int16:
		*t, err = r.readInt16()
	case *int32:
		*t, err = r.readInt32()
	case *LongDateTime:
		*t, err = r.readLongdatetime()
	case *offset16:
		*t, err = r.readOffset16()
	case *offset32:
		*t, err = r.readOffset32()
	case *uint8:
		*t, err = r.readUint8()
	case *uint16:
		*t, err = r.readUint16()
	case *uint32:
		*t, err = r.readUint32()
	case *Tag:
		*t, err = r.readTag()
	case *GlyphIndex:
		var v uint16
		v, err = r.readUint16()
		*t = GlyphIndex(v)

	default:
		logrus.Debugf("Unsupported type: %T (read)", t)
		return errTypeCheck
	}
	return err
}

func (r *byteReader) readUint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *byteReader) readInt8() (int8, error) {
	v, err := r.readUint8()
	return int8(v), err
}

func (r *byteReader) readUint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *byteReader) readInt16() (int16, error) {
	v, err := r.readUint16()
	return int16(v), err
}

func (r *byteReader) readUint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *byteReader) readInt32() (int32, error) {
	v, err := r.readUint32()
	return int32(v), err
}

func (r *byteReader) readF2dot14() (F2Dot14, error) {
	v, err := r.readUint16()
	return F2Dot14(v), err
}

func (r *byteReader) readFixed() (Fixed, error) {
	v, err := r.readUint32()
	return Fixed(v), err
}

func (r *byteReader) readFword() (fword, error) {
	v, err := r.readUint16()
	return fword(v), err
}

func (r *byteReader) readUfword() (ufword, error) {
	v, err := r.readUint16()
	return ufword(v), err
}

func (r *byteReader) readTag() (Tag, error) {
	b, err := r.take(4)
	if err != nil {
		return Tag{}, err
	}
	var t Tag
	copy(t[:], b)
	return t, nil
}

func (r *byteReader) readLongdatetime() (LongDateTime, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return LongDateTime(binary.BigEndian.Uint64(b)), nil
}

func (r *byteReader) readOffset16() (offset16, error) {
	v, err := r.readUint16()
	return offset16(v), err
}

func (r *byteReader) readOffset32() (offset32, error) {
	v, err := r.readUint32()
	return offset32(v), err
}
