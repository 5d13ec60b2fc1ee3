/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/unidoc/unitype/internal/transform"
)

// Glyph is a decoded glyph description from the glyf table. Exactly one of Simple and Composite
// is set, unless the glyph is empty (no outline, e.g. space) in which case both are nil.
type Glyph struct {
	NumberOfContours int16 // negative for composite glyphs.
	XMin             int16
	YMin             int16
	XMax             int16
	YMax             int16

	Simple    *SimpleGlyph
	Composite *CompositeGlyph
}

// IsEmpty returns true if the glyph has no outline data.
func (g *Glyph) IsEmpty() bool {
	return g.Simple == nil && g.Composite == nil
}

// IsComposite returns true if the glyph is made of references to other glyphs.
func (g *Glyph) IsComposite() bool {
	return g.Composite != nil
}

// SimpleGlyph is a glyph outline given directly by its contours.
type SimpleGlyph struct {
	// EndPtsOfContours holds the index of the last point of each contour.
	EndPtsOfContours []uint16
	Instructions     []byte
	// Points are in absolute font units.
	Points []Point
	// OverlapSimple is bit 6 of the first flag: contours may overlap.
	OverlapSimple bool
}

// Contours returns the points of `s` split into contours.
func (s *SimpleGlyph) Contours() [][]Point {
	contours := make([][]Point, 0, len(s.EndPtsOfContours))
	start := 0
	for _, end := range s.EndPtsOfContours {
		e := int(end) + 1
		if e > len(s.Points) || e < start {
			break
		}
		contours = append(contours, s.Points[start:e])
		start = e
	}
	return contours
}

// Point is a point of a glyph outline in font units.
type Point struct {
	X, Y    int16
	OnCurve bool
}

// CompositeGlyph is a glyph built from transformed references to other glyphs.
// The referenced glyph indices are not checked against the glyph count.
type CompositeGlyph struct {
	Components   []Component
	Instructions []byte
}

// Component is a reference to a glyph within a composite glyph, placed at offset (DX, DY)
// after applying Transform.
type Component struct {
	GlyphIndex GlyphIndex
	// Flags is the flag word as decoded. Layout bits (argument size, transform kind, more
	// components, instructions) are recomputed on encoding, the others are kept.
	Flags     uint16
	DX, DY    int16
	Transform ComponentTransform
}

// UseMyMetrics returns true if the composite uses the metrics of this component.
func (c Component) UseMyMetrics() bool {
	return compositeGlyphFlag(c.Flags).IsSet(useMyMetrics)
}

// ScaledOffset returns true if the offset is transformed along with the component outline.
func (c Component) ScaledOffset() bool {
	f := compositeGlyphFlag(c.Flags)
	return f.IsSet(scaledComponentOffset) && !f.IsSet(unscaledComponentOffset)
}

// TransformKind specifies how a component transform is stored.
type TransformKind int

// Component transform kinds.
const (
	TransformIdentity TransformKind = iota
	TransformScale                  // uniform scale: A (== D).
	TransformXYScale                // separate x and y scale: A and D.
	TransformTwoByTwo               // full 2x2 matrix: A, B, C, D.
)

// ComponentTransform is the 2x2 linear transform of a composite component.
// A point (x, y) maps to (A*x + C*y, B*x + D*y).
type ComponentTransform struct {
	Kind       TransformKind
	A, B, C, D F2Dot14
}

// Matrix returns the transform as a matrix, translated by (`dx`, `dy`).
func (t ComponentTransform) Matrix(dx, dy float64) transform.Matrix {
	switch t.Kind {
	case TransformScale:
		return transform.NewMatrix(t.A.Float64(), 0, 0, t.A.Float64(), dx, dy)
	case TransformXYScale:
		return transform.NewMatrix(t.A.Float64(), 0, 0, t.D.Float64(), dx, dy)
	case TransformTwoByTwo:
		return transform.NewMatrix(t.A.Float64(), t.B.Float64(), t.C.Float64(), t.D.Float64(), dx, dy)
	}
	return transform.TranslationMatrix(dx, dy)
}

// simpleGlyphFlag represents a flag data representation of a point in a simple glyph.
type simpleGlyphFlag uint8

const (
	onCurvePoint simpleGlyphFlag = (1 << iota)
	xShortVector
	yShortVector
	repeatFlag
	xIsSameOrPositiveVector
	yIsSameOrPositiveVector
	overlapSimple
	reserved
)

func (f simpleGlyphFlag) String() string {
	var flags []string
	if f&onCurvePoint != 0 {
		flags = append(flags, "onCurvePoint")
	}
	if f&xShortVector != 0 {
		flags = append(flags, "xShortVector")
	}
	if f&yShortVector != 0 {
		flags = append(flags, "yShortVector")
	}
	if f&repeatFlag != 0 {
		flags = append(flags, "repeatFlag")
	}
	if f&xIsSameOrPositiveVector != 0 {
		flags = append(flags, "xIsSameOrPositiveVector")
	}
	if f&yIsSameOrPositiveVector != 0 {
		flags = append(flags, "yIsSameOrPositiveVector")
	}
	if f&overlapSimple != 0 {
		flags = append(flags, "overlapSimple")
	}
	if f&reserved != 0 {
		flags = append(flags, "reserved")
	}
	return strings.Join(flags, "|")
}

type compositeGlyphFlag uint16

const (
	arg1And2AreWords compositeGlyphFlag = (1 << iota) // If set, the args are 16-bit (int16), otherwise int8.
	argsAreXYValues                                   // If set, the args are signed xy values, otherwise point numbers.
	roundXYToGrid
	weHaveAScale
	_              // reserved
	moreComponents // Indicates at least one glyph following this one.
	weHaveAnXAndYScale
	weHaveATwoByTwo
	weHaveInstructions
	useMyMetrics
	overlapCompound
	scaledComponentOffset
	unscaledComponentOffset
)

// compositeLayoutFlags are the flags describing the record layout, recomputed on encoding.
const compositeLayoutFlags = arg1And2AreWords | argsAreXYValues | weHaveAScale | moreComponents |
	weHaveAnXAndYScale | weHaveATwoByTwo | weHaveInstructions

func (f compositeGlyphFlag) IsSet(flag compositeGlyphFlag) bool {
	return f&flag != 0
}

func (f compositeGlyphFlag) String() string {
	var flags []string
	names := []struct {
		flag compositeGlyphFlag
		name string
	}{
		{arg1And2AreWords, "arg1And2AreWords"},
		{argsAreXYValues, "argsAreXYValues"},
		{roundXYToGrid, "roundXYToGrid"},
		{weHaveAScale, "weHaveAScale"},
		{moreComponents, "moreComponents"},
		{weHaveAnXAndYScale, "weHaveAnXAndYScale"},
		{weHaveATwoByTwo, "weHaveATwoByTwo"},
		{weHaveInstructions, "weHaveInstructions"},
		{useMyMetrics, "useMyMetrics"},
		{overlapCompound, "overlapCompound"},
		{scaledComponentOffset, "scaledComponentOffset"},
		{unscaledComponentOffset, "unscaledComponentOffset"},
	}
	for _, n := range names {
		if f.IsSet(n.flag) {
			flags = append(flags, n.name)
		}
	}
	return strings.Join(flags, "|")
}

// decodeGlyph decodes the glyph description in `data`, which spans exactly one glyph.
func decodeGlyph(data []byte) (*Glyph, error) {
	g := &Glyph{}
	if len(data) == 0 {
		return g, nil
	}

	r := newByteReader(data)
	err := r.read(&g.NumberOfContours, &g.XMin, &g.YMin, &g.XMax, &g.YMax)
	if err != nil {
		return nil, err
	}

	if g.NumberOfContours >= 0 {
		logrus.Tracef("simple glyph data, contours: %d", g.NumberOfContours)
		g.Simple, err = decodeSimpleGlyph(r, int(g.NumberOfContours))
	} else {
		logrus.Tracef("composite glyph data")
		g.Composite, err = decodeCompositeGlyph(r)
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// decodeSimpleGlyph decodes a simple glyph with `numContours` at the current position of `r`.
func decodeSimpleGlyph(r *byteReader, numContours int) (*SimpleGlyph, error) {
	s := &SimpleGlyph{}

	err := r.readSlice(&s.EndPtsOfContours, numContours)
	if err != nil {
		return nil, err
	}
	for i := 1; i < numContours; i++ {
		if s.EndPtsOfContours[i] < s.EndPtsOfContours[i-1] {
			logrus.Debugf("Contour end points decreasing at %d", i)
			return nil, invalidData("contour end points decrease at contour %d", i)
		}
	}

	instructionLength, err := r.readUint16()
	if err != nil {
		return nil, err
	}
	err = r.readBytes(&s.Instructions, int(instructionLength))
	if err != nil {
		return nil, err
	}

	// total number of points (all contours).
	numPoints := 0
	if numContours > 0 {
		numPoints = int(s.EndPtsOfContours[numContours-1]) + 1
	}
	logrus.Tracef("Number of points: %d", numPoints)

	// flags (one for each point).
	flags := make([]simpleGlyphFlag, 0, numPoints)
	for len(flags) < numPoints {
		b, err := r.readUint8()
		if err != nil {
			return nil, err
		}
		flag := simpleGlyphFlag(b)
		flags = append(flags, flag)

		if flag&repeatFlag != 0 {
			// following byte specifies number of times this flag is to be repeated.
			repeats, err := r.readUint8()
			if err != nil {
				return nil, err
			}
			if len(flags)+int(repeats) > numPoints {
				logrus.Debugf("Flag repeat overruns points (%d+%d > %d)", len(flags), repeats, numPoints)
				return nil, invalidData("flag repeat count %d overruns %d points", repeats, numPoints)
			}
			for i := 0; i < int(repeats); i++ {
				flags = append(flags, flag)
			}
		}
	}
	if numPoints > 0 {
		s.OverlapSimple = flags[0]&overlapSimple != 0
	}

	xs, err := readCoordinates(r, flags, xShortVector, xIsSameOrPositiveVector)
	if err != nil {
		return nil, err
	}
	ys, err := readCoordinates(r, flags, yShortVector, yIsSameOrPositiveVector)
	if err != nil {
		return nil, err
	}

	s.Points = make([]Point, numPoints)
	for i := range s.Points {
		s.Points[i] = Point{
			X:       xs[i],
			Y:       ys[i],
			OnCurve: flags[i]&onCurvePoint != 0,
		}
	}
	return s, nil
}

// readCoordinates reads one coordinate per flag as deltas and returns the absolute values.
// With `short` set the delta is one byte whose sign is given by `same` (set means positive).
// Otherwise `same` set means an unchanged coordinate and clear means a signed 16-bit delta.
func readCoordinates(r *byteReader, flags []simpleGlyphFlag, short, same simpleGlyphFlag) ([]int16, error) {
	coords := make([]int16, len(flags))
	var v int16
	for i, flag := range flags {
		switch {
		case flag&short != 0:
			d, err := r.readUint8()
			if err != nil {
				return nil, err
			}
			if flag&same != 0 {
				v += int16(d)
			} else {
				v -= int16(d)
			}
		case flag&same == 0:
			d, err := r.readInt16()
			if err != nil {
				return nil, err
			}
			v += d
		}
		coords[i] = v
	}
	return coords, nil
}

// decodeCompositeGlyph decodes the component records of a composite glyph at the current
// position of `r`.
func decodeCompositeGlyph(r *byteReader) (*CompositeGlyph, error) {
	c := &CompositeGlyph{}
	haveInstructions := false

	for {
		var flags compositeGlyphFlag
		var gid GlyphIndex
		err := r.read((*uint16)(&flags), &gid)
		if err != nil {
			return nil, err
		}
		logrus.Tracef("component %d flags: %s", gid, flags)

		if !flags.IsSet(argsAreXYValues) {
			logrus.Debugf("Point matching component %d not supported", gid)
			return nil, unsupported("point matching composite component (glyph %d)", gid)
		}

		comp := Component{
			GlyphIndex: gid,
			Flags:      uint16(flags),
		}

		if flags.IsSet(arg1And2AreWords) {
			err = r.read(&comp.DX, &comp.DY)
		} else {
			var dx, dy int8
			err = r.read(&dx, &dy)
			comp.DX, comp.DY = int16(dx), int16(dy)
		}
		if err != nil {
			return nil, err
		}

		tr := &comp.Transform
		switch {
		case flags.IsSet(weHaveAScale):
			tr.Kind = TransformScale
			err = r.read(&tr.A)
			tr.D = tr.A
		case flags.IsSet(weHaveAnXAndYScale):
			tr.Kind = TransformXYScale
			err = r.read(&tr.A, &tr.D)
		case flags.IsSet(weHaveATwoByTwo):
			tr.Kind = TransformTwoByTwo
			err = r.read(&tr.A, &tr.B, &tr.C, &tr.D)
		}
		if err != nil {
			return nil, err
		}

		c.Components = append(c.Components, comp)
		if flags.IsSet(weHaveInstructions) {
			haveInstructions = true
		}
		if !flags.IsSet(moreComponents) {
			break
		}
	}

	if haveInstructions {
		numInstr, err := r.readUint16()
		if err != nil {
			return nil, err
		}
		err = r.readBytes(&c.Instructions, int(numInstr))
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}
