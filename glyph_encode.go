/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"math"

	"github.com/sirupsen/logrus"
)

// encodeGlyph writes the glyph description of `g` to `w`. Empty glyphs write nothing.
func encodeGlyph(w *byteWriter, g *Glyph) error {
	if g == nil || g.IsEmpty() {
		return nil
	}

	numContours := g.NumberOfContours
	if g.Simple != nil {
		if len(g.Simple.EndPtsOfContours) > math.MaxInt16 {
			return errRangeCheck
		}
		numContours = int16(len(g.Simple.EndPtsOfContours))
	} else if numContours >= 0 {
		numContours = -1
	}

	err := w.write(numContours, g.XMin, g.YMin, g.XMax, g.YMax)
	if err != nil {
		return err
	}

	if g.Simple != nil {
		return encodeSimpleGlyph(w, g.Simple)
	}
	return encodeCompositeGlyph(w, g.Composite)
}

func encodeSimpleGlyph(w *byteWriter, s *SimpleGlyph) error {
	numPoints := 0
	if n := len(s.EndPtsOfContours); n > 0 {
		numPoints = int(s.EndPtsOfContours[n-1]) + 1
	}
	if numPoints != len(s.Points) {
		logrus.Debugf("#points != last end point + 1 (%d/%d)", len(s.Points), numPoints)
		return errRangeCheck
	}
	if len(s.Instructions) > math.MaxUint16 {
		return errRangeCheck
	}

	err := w.writeSlice(s.EndPtsOfContours)
	if err != nil {
		return err
	}
	w.writeUint16(uint16(len(s.Instructions)))
	w.writeBytes(s.Instructions)

	flags := make([]simpleGlyphFlag, numPoints)
	xw := newByteWriter()
	yw := newByteWriter()
	var prev Point
	for i, p := range s.Points {
		var flag simpleGlyphFlag
		if p.OnCurve {
			flag |= onCurvePoint
		}
		flag |= writeCoordinate(xw, p.X-prev.X, xShortVector, xIsSameOrPositiveVector)
		flag |= writeCoordinate(yw, p.Y-prev.Y, yShortVector, yIsSameOrPositiveVector)
		flags[i] = flag
		prev = p
	}
	if s.OverlapSimple && numPoints > 0 {
		flags[0] |= overlapSimple
	}

	// flags - packed.
	i := 0
	for i < len(flags) {
		flag := flags[i]
		count := 1
		for i+count < len(flags) && flags[i+count] == flag && count <= 255 {
			count++
		}

		if count > 1 {
			w.writeUint8(uint8(flag|repeatFlag), uint8(count-1))
		} else {
			w.writeUint8(uint8(flag))
		}
		i += count
	}

	w.writeBytes(xw.Bytes())
	w.writeBytes(yw.Bytes())
	return nil
}

// writeCoordinate writes coordinate delta `d` in the smallest form and returns the flag bits
// describing it.
func writeCoordinate(w *byteWriter, d int16, short, same simpleGlyphFlag) simpleGlyphFlag {
	switch {
	case d == 0:
		return same
	case d > 0 && d <= 255:
		w.writeUint8(uint8(d))
		return short | same
	case d < 0 && d >= -255:
		w.writeUint8(uint8(-d))
		return short
	}
	w.writeInt16(d)
	return 0
}

func encodeCompositeGlyph(w *byteWriter, c *CompositeGlyph) error {
	if len(c.Components) == 0 {
		logrus.Debugf("Composite glyph without components")
		return errRequiredField
	}
	if len(c.Instructions) > math.MaxUint16 {
		return errRangeCheck
	}

	for i, comp := range c.Components {
		flags := compositeGlyphFlag(comp.Flags)&^compositeLayoutFlags | argsAreXYValues

		words := comp.DX < math.MinInt8 || comp.DX > math.MaxInt8 ||
			comp.DY < math.MinInt8 || comp.DY > math.MaxInt8
		if words {
			flags |= arg1And2AreWords
		}

		switch comp.Transform.Kind {
		case TransformScale:
			flags |= weHaveAScale
		case TransformXYScale:
			flags |= weHaveAnXAndYScale
		case TransformTwoByTwo:
			flags |= weHaveATwoByTwo
		}

		last := i == len(c.Components)-1
		if !last {
			flags |= moreComponents
		}
		if last && len(c.Instructions) > 0 {
			flags |= weHaveInstructions
		}

		w.writeUint16(uint16(flags), uint16(comp.GlyphIndex))
		if words {
			w.writeInt16(comp.DX, comp.DY)
		} else {
			w.writeUint8(uint8(int8(comp.DX)), uint8(int8(comp.DY)))
		}

		tr := comp.Transform
		switch tr.Kind {
		case TransformScale:
			err := w.write(tr.A)
			if err != nil {
				return err
			}
		case TransformXYScale:
			err := w.write(tr.A, tr.D)
			if err != nil {
				return err
			}
		case TransformTwoByTwo:
			err := w.write(tr.A, tr.B, tr.C, tr.D)
			if err != nil {
				return err
			}
		}
	}

	if len(c.Instructions) > 0 {
		w.writeUint16(uint16(len(c.Instructions)))
		w.writeBytes(c.Instructions)
	}
	return nil
}
