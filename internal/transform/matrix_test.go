/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMultOrder checks that m.Mult(b) applies m first.
func TestMultOrder(t *testing.T) {
	scale := NewMatrix(2, 0, 0, 2, 0, 0)
	shift := TranslationMatrix(10, 20)

	x, y := scale.Mult(shift).Transform(1, 1)
	assert.InDelta(t, 12.0, x, tolerance)
	assert.InDelta(t, 22.0, y, tolerance)

	x, y = shift.Mult(scale).Transform(1, 1)
	assert.InDelta(t, 22.0, x, tolerance)
	assert.InDelta(t, 42.0, y, tolerance)

	tx, ty := shift.Mult(scale).Transform(0, 0)
	assert.InDelta(t, 20.0, tx, tolerance)
	assert.InDelta(t, 40.0, ty, tolerance)

	assert.True(t, isIdentity(IdentityMatrix().Mult(IdentityMatrix())))
	assert.Equal(t, shift, shift.Mult(IdentityMatrix()))
}

// TestTransformTwoByTwo checks the row vector convention x' = a*x + c*y, y' = b*x + d*y.
func TestTransformTwoByTwo(t *testing.T) {
	m := NewMatrix(1, 2, 3, 4, 5, 6)
	x, y := m.Transform(10, 100)
	assert.InDelta(t, 1*10+3*100+5.0, x, tolerance)
	assert.InDelta(t, 2*10+4*100+6.0, y, tolerance)
	assert.True(t, isIdentity(IdentityMatrix()))
	assert.Equal(t, "[ 1.0000, 2.0000, 3.0000, 4.0000: 5.0000, 6.0000]", m.String())
}

// isIdentity returns true if `m` approximates the identity matrix.
func isIdentity(m Matrix) bool {
	return isOne(m[0]) && isZero(m[1]) && isZero(m[2]) &&
		isZero(m[3]) && isOne(m[4]) && isZero(m[5]) &&
		isZero(m[6]) && isZero(m[7]) && isOne(m[8])
}

// isOne returns true if `x` is approximately one.
func isOne(x float64) bool {
	return isZero(x - 1.0)
}

// isZero returns true if `x` is approximately zero.
func isZero(x float64) bool {
	return math.Abs(x) <= tolerance
}

const tolerance = 1.0e-10
