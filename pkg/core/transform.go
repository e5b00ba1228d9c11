package core

import "fmt"

// Transform is a matrix together with its cached inverse and inverse-transpose.
// Values are built once by NewTransform and never mutated; replacing a transform
// means assigning a new Transform, so the caches can never go stale.
type Transform struct {
	matrix           Matrix
	inverse          Matrix
	inverseTranspose Matrix
}

// NewTransform computes the caches for m. Singular matrices are rejected.
func NewTransform(m Matrix) (Transform, error) {
	inv, err := m.Inverse()
	if err != nil {
		return Transform{}, fmt.Errorf("building transform: %w", err)
	}
	return Transform{
		matrix:           m,
		inverse:          inv,
		inverseTranspose: inv.Transpose(),
	}, nil
}

// MustTransform is like NewTransform but panics on a singular matrix.
// It is intended for hard-coded scenes and tests.
func MustTransform(m Matrix) Transform {
	t, err := NewTransform(m)
	if err != nil {
		panic(err)
	}
	return t
}

// IdentityTransform returns the identity transform
func IdentityTransform() Transform {
	return Transform{matrix: Identity(), inverse: Identity(), inverseTranspose: Identity()}
}

// Matrix returns the forward matrix
func (t Transform) Matrix() Matrix { return t.matrix }

// Inverse returns the cached inverse
func (t Transform) Inverse() Matrix { return t.inverse }

// InverseTranspose returns the cached transpose of the inverse
func (t Transform) InverseTranspose() Matrix { return t.inverseTranspose }

// PointToLocal maps a point from the parent space into the transform's local space
func (t Transform) PointToLocal(p Tuple) Tuple {
	return t.inverse.MultiplyTuple(p)
}

// RayToLocal maps a ray into the transform's local space
func (t Transform) RayToLocal(r Ray) Ray {
	return r.Transform(t.inverse)
}

// NormalToWorld maps a local normal back to the parent space and renormalizes it
func (t Transform) NormalToWorld(n Tuple) Tuple {
	return t.inverseTranspose.MultiplyTuple(n).AsVector().Normalize()
}
