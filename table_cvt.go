/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import "github.com/sirupsen/logrus"

// CvtTable represents the Control Value Table (cvt).
// This table contains a list of values that can be referenced by instructions.
// The number of values is given by the table length.
type CvtTable struct {
	Values []int16
}

// Tag returns the cvt tag.
func (t *CvtTable) Tag() Tag {
	return TagCvt
}

func (t *CvtTable) unmarshal(r *byteReader) error {
	if r.Remaining()%2 != 0 {
		logrus.Debugf("cvt length %d not a multiple of 2", r.Remaining())
		return invalidData("length %d not a multiple of 2", r.Remaining())
	}
	return r.readSlice(&t.Values, r.Remaining()/2)
}

func (t *CvtTable) marshal(w *byteWriter) error {
	return w.writeSlice(t.Values)
}
