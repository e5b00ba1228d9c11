package core

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrNotInvertible is returned when a singular matrix is used where an inverse is required.
var ErrNotInvertible = errors.New("matrix is not invertible")

// Matrix is an immutable 4x4 row-major matrix
type Matrix [4][4]float64

// Identity returns the 4x4 identity matrix
func Identity() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Multiply returns m*other
func (m Matrix) Multiply(other Matrix) Matrix {
	var r Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			r[row][col] = m[row][0]*other[0][col] +
				m[row][1]*other[1][col] +
				m[row][2]*other[2][col] +
				m[row][3]*other[3][col]
		}
	}
	return r
}

// MultiplyTuple returns m*t
func (m Matrix) MultiplyTuple(t Tuple) Tuple {
	return Tuple{
		X: m[0][0]*t.X + m[0][1]*t.Y + m[0][2]*t.Z + m[0][3]*t.W,
		Y: m[1][0]*t.X + m[1][1]*t.Y + m[1][2]*t.Z + m[1][3]*t.W,
		Z: m[2][0]*t.X + m[2][1]*t.Y + m[2][2]*t.Z + m[2][3]*t.W,
		W: m[3][0]*t.X + m[3][1]*t.Y + m[3][2]*t.Z + m[3][3]*t.W,
	}
}

// Then composes transformations in application order: m is applied first, next second.
func (m Matrix) Then(next Matrix) Matrix {
	return next.Multiply(m)
}

// Transpose returns the transposed matrix
func (m Matrix) Transpose() Matrix {
	var r Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			r[col][row] = m[row][col]
		}
	}
	return r
}

// Determinant returns the determinant of the matrix
func (m Matrix) Determinant() float64 {
	return mat.Det(m.dense())
}

// IsInvertible reports whether the matrix has an inverse
func (m Matrix) IsInvertible() bool {
	_, err := m.Inverse()
	return err == nil
}

// Inverse returns the inverse of the matrix, or ErrNotInvertible
func (m Matrix) Inverse() (Matrix, error) {
	a := m.dense()
	if mat.Det(a) == 0 {
		return Matrix{}, ErrNotInvertible
	}

	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		// gonum reports near-singular input as a Condition error
		return Matrix{}, fmt.Errorf("%w: %v", ErrNotInvertible, err)
	}

	var r Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			r[row][col] = inv.At(row, col)
		}
	}
	return r, nil
}

// Equals compares two matrices element-wise within Epsilon
func (m Matrix) Equals(other Matrix) bool {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if !ApproxEqual(m[row][col], other[row][col]) {
				return false
			}
		}
	}
	return true
}

func (m Matrix) dense() *mat.Dense {
	data := make([]float64, 0, 16)
	for row := 0; row < 4; row++ {
		data = append(data, m[row][:]...)
	}
	return mat.NewDense(4, 4, data)
}
