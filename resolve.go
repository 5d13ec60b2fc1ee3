/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/math/fixed"

	"github.com/unidoc/unitype/internal/transform"
)

// defaultMaxComponentDepth bounds composite nesting when maxp does not allow more.
const defaultMaxComponentDepth = 16

// Resolver flattens glyphs into absolute contours, substituting composite components
// recursively. Composite glyphs can reference each other in cycles or nest arbitrarily deep in
// malformed fonts: the Resolver fails with ErrInvalidTableData when a glyph references itself
// through its components or the nesting exceeds the depth bound.
type Resolver struct {
	glyf       *GlyfTable
	unitsPerEm int
	maxDepth   int
}

// Contour is a closed sequence of outline points.
type Contour []OutlinePoint

// OutlinePoint is a point of a resolved outline in font units.
type OutlinePoint struct {
	X, Y    float64
	OnCurve bool
}

// ScaledPoint is a point of an outline scaled to pixels, in 26.6 fixed point.
type ScaledPoint struct {
	fixed.Point26_6
	OnCurve bool
}

// NewResolver returns a resolver over `glyf` for a font with `unitsPerEm`. Composite nesting
// deeper than `maxDepth` fails; values below 16 are raised to 16.
func NewResolver(glyf *GlyfTable, unitsPerEm, maxDepth int) *Resolver {
	if maxDepth < defaultMaxComponentDepth {
		maxDepth = defaultMaxComponentDepth
	}
	return &Resolver{
		glyf:       glyf,
		unitsPerEm: unitsPerEm,
		maxDepth:   maxDepth,
	}
}

// Resolver returns a glyph resolver for the font, bounded by maxp.maxComponentDepth.
func (f *Font) Resolver() (*Resolver, error) {
	glyf, err := f.Glyf()
	if err != nil {
		return nil, err
	}
	head, err := f.Head()
	if err != nil {
		return nil, err
	}
	maxp, err := f.Maxp()
	if err != nil {
		return nil, err
	}
	return NewResolver(glyf, int(head.UnitsPerEm), int(maxp.MaxComponentDepth)), nil
}

// Resolve returns the contours of glyph `gid` in font units with all components substituted.
// Empty glyphs have no contours.
func (r *Resolver) Resolve(gid GlyphIndex) ([]Contour, error) {
	var contours []Contour
	err := r.resolve(gid, transform.IdentityMatrix(), nil, &contours)
	if err != nil {
		return nil, err
	}
	return contours, nil
}

func (r *Resolver) resolve(gid GlyphIndex, m transform.Matrix, path []GlyphIndex, out *[]Contour) error {
	if len(path) > r.maxDepth {
		logrus.Debugf("Composite depth exceeds %d at glyph %d", r.maxDepth, gid)
		return &TableError{Tag: TagGlyf, Err: invalidData("component depth exceeds %d at glyph %d", r.maxDepth, gid)}
	}
	for _, p := range path {
		if p == gid {
			logrus.Debugf("Composite cycle: %v -> %d", path, gid)
			return &TableError{Tag: TagGlyf, Err: invalidData("component cycle through glyph %d", gid)}
		}
	}

	g, err := r.glyf.GetGlyph(gid)
	if err != nil {
		return err
	}

	switch {
	case g.Simple != nil:
		for _, c := range g.Simple.Contours() {
			contour := make(Contour, len(c))
			for i, p := range c {
				x, y := m.Transform(float64(p.X), float64(p.Y))
				contour[i] = OutlinePoint{X: x, Y: y, OnCurve: p.OnCurve}
			}
			*out = append(*out, contour)
		}
	case g.Composite != nil:
		path = append(path, gid)
		for _, comp := range g.Composite.Components {
			dx, dy := float64(comp.DX), float64(comp.DY)
			var local transform.Matrix
			if comp.ScaledOffset() {
				local = transform.TranslationMatrix(dx, dy).Mult(comp.Transform.Matrix(0, 0))
			} else {
				local = comp.Transform.Matrix(dx, dy)
			}
			err := r.resolve(comp.GlyphIndex, local.Mult(m), path, out)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Outline returns the resolved contours of `gid` scaled to `ppem` pixels per em.
func (r *Resolver) Outline(gid GlyphIndex, ppem fixed.Int26_6) ([][]ScaledPoint, error) {
	if r.unitsPerEm <= 0 {
		return nil, &TableError{Tag: TagHead, Err: invalidData("unitsPerEm %d", r.unitsPerEm)}
	}
	contours, err := r.Resolve(gid)
	if err != nil {
		return nil, err
	}

	scale := float64(ppem) / float64(r.unitsPerEm)
	outline := make([][]ScaledPoint, 0, len(contours))
	for _, c := range contours {
		sc := make([]ScaledPoint, len(c))
		for i, p := range c {
			sc[i] = ScaledPoint{
				Point26_6: fixed.Point26_6{
					X: fixed.Int26_6(math.Round(p.X * scale)),
					Y: fixed.Int26_6(math.Round(p.Y * scale)),
				},
				OnCurve: p.OnCurve,
			}
		}
		outline = append(outline, sc)
	}
	return outline, nil
}
