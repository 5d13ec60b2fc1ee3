/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"bytes"
	"encoding/binary"

	"github.com/sirupsen/logrus"
)

// byteWriter is an append-only big-endian writer for truetype binary data.
// Writes go to an in-memory buffer and never fail. Provides methods to calculate checksum of the
// current buffer.
type byteWriter struct {
	buffer bytes.Buffer
}

func newByteWriter() *byteWriter {
	return &byteWriter{}
}

// Bytes returns the written data. The slice aliases the buffer until the next write.
func (w *byteWriter) Bytes() []byte {
	return w.buffer.Bytes()
}

// bufferedLen returns the length of the current buffer.
func (w *byteWriter) bufferedLen() int {
	return w.buffer.Len()
}

// checksum returns the checksum of the current buffer.
func (w *byteWriter) checksum() uint32 {
	return checksum(w.buffer.Bytes())
}

// pad appends zero bytes until the buffer length is a multiple of `align`.
func (w *byteWriter) pad(align int) {
	for w.buffer.Len()%align != 0 {
		w.buffer.WriteByte(0)
	}
}

func (w *byteWriter) writeSlice(slice interface{}) error {
	switch t := slice.(type) {
	case []uint8:
		w.writeBytes(t)
	case []uint16:
		w.writeUint16(t...)
	case []int16:
		w.writeInt16(t...)
	case []uint32:
		for _, val := range t {
			w.writeUint32(val)
		}
	case []int8:
		for _, val := range t {
			w.writeUint8(uint8(val))
		}
	case []offset16:
		for _, val := range t {
			w.writeUint16(uint16(val))
		}
	case []offset32:
		for _, val := range t {
			w.writeUint32(uint32(val))
		}
	case []fword:
		for _, val := range t {
			w.writeInt16(int16(val))
		}
	default:
		logrus.Debugf("Write type check error: %T (slice)", t)
		return errTypeCheck
	}
	return nil
}

// write writes a series of values to `w`.
func (w *byteWriter) write(fields ...interface{}) error {
	for _, f := range fields {
		switch t := f.(type) {
		case uint8:
			w.writeUint8(t)
		case int8:
			w.writeUint8(uint8(t))
		case uint16:
			w.writeUint16(t)
		case int16:
			w.writeInt16(t)
		case uint32:
			w.writeUint32(t)
		case int32:
			w.writeUint32(uint32(t))
		case Fixed:
			w.writeUint32(uint32(t))
		case F2Dot14:
			w.writeInt16(int16(t))
		case fword:
			w.writeInt16(int16(t))
		case ufword:
			w.writeUint16(uint16(t))
		case LongDateTime:
			w.writeUint64(uint64(t))
		case GlyphIndex:
			w.writeUint16(uint16(t))
		case Tag:
			w.writeTag(t)
		case offset16:
			w.writeUint16(uint16(t))
		case offset32:
			w.writeUint32(uint32(t))
		default:
			logrus.Debugf("Write type check error: %T", t)
			return errTypeCheck
		}
	}

	return nil
}

func (w *byteWriter) writeUint8(vals ...uint8) {
	w.buffer.Write(vals)
}

func (w *byteWriter) writeUint16(vals ...uint16) {
	var b [2]byte
	for _, v := range vals {
		binary.BigEndian.PutUint16(b[:], v)
		w.buffer.Write(b[:])
	}
}

func (w *byteWriter) writeInt16(vals ...int16) {
	for _, v := range vals {
		w.writeUint16(uint16(v))
	}
}

func (w *byteWriter) writeUint32(val uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], val)
	w.buffer.Write(b[:])
}

func (w *byteWriter) writeUint64(val uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], val)
	w.buffer.Write(b[:])
}

func (w *byteWriter) writeTag(val Tag) {
	w.buffer.Write(val[:])
}

func (w *byteWriter) writeBytes(b []byte) {
	w.buffer.Write(b)
}
