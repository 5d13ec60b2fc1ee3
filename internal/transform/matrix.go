/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package transform provides the affine transforms used to place composite glyph components.
package transform

import (
	"fmt"
)

// Matrix is a 2D affine transform stored as a 3x3 matrix acting on row vectors [x y 1]:
//
//	| a  b  0 |
//	| c  d  0 |
//	| tx ty 1 |
//
// so that x' = a*x + c*y + tx and y' = b*x + d*y + ty.
type Matrix [9]float64

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Matrix {
	return NewMatrix(1, 0, 0, 1, 0, 0)
}

// TranslationMatrix returns a matrix that translates by `tx`, `ty`.
func TranslationMatrix(tx, ty float64) Matrix {
	return NewMatrix(1, 0, 0, 1, tx, ty)
}

// NewMatrix returns an affine transform matrix laid out in homogenous coordinates as
//
//	a  b  0
//	c  d  0
//	tx ty 1
func NewMatrix(a, b, c, d, tx, ty float64) Matrix {
	return Matrix{
		a, b, 0,
		c, d, 0,
		tx, ty, 1,
	}
}

// String returns a string describing `m`.
func (m Matrix) String() string {
	a, b, c, d, tx, ty := m[0], m[1], m[3], m[4], m[6], m[7]
	return fmt.Sprintf("[%7.4f,%7.4f,%7.4f,%7.4f:%7.4f,%7.4f]", a, b, c, d, tx, ty)
}

// Mult returns `m` x `b`: the transform applying `m` first, then `b`.
func (m Matrix) Mult(b Matrix) Matrix {
	var p Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += m[3*i+k] * b[3*k+j]
			}
			p[3*i+j] = s
		}
	}
	return p
}

// Transform returns coordinates `x`, `y` transformed by `m`.
func (m Matrix) Transform(x, y float64) (float64, float64) {
	xp := x*m[0] + y*m[3] + m[6]
	yp := x*m[1] + y*m[4] + m[7]
	return xp, yp
}
