/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

// PrepTable represents a Control Value Program table (prep).
// Consists of a set of TrueType instructions that will be executed whenever the font or point size
// or transformation matrix change and before each glyph is interpreted.
// Used for preparation (hence the name "prep").
type PrepTable struct {
	Instructions []uint8
}

// Tag returns the prep tag.
func (t *PrepTable) Tag() Tag {
	return TagPrep
}

func (t *PrepTable) unmarshal(r *byteReader) error {
	return r.readBytes(&t.Instructions, r.Remaining())
}

func (t *PrepTable) marshal(w *byteWriter) error {
	return w.writeSlice(t.Instructions)
}

// FpgmTable represents the Font Program table (fpgm): instructions executed once, when the font
// is first used.
type FpgmTable struct {
	Instructions []uint8
}

// Tag returns the fpgm tag.
func (t *FpgmTable) Tag() Tag {
	return TagFpgm
}

func (t *FpgmTable) unmarshal(r *byteReader) error {
	return r.readBytes(&t.Instructions, r.Remaining())
}

func (t *FpgmTable) marshal(w *byteWriter) error {
	w.writeBytes(t.Instructions)
	return nil
}
