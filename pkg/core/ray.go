package core

// Ray is a half-line with an origin point and a direction vector
type Ray struct {
	Origin    Tuple
	Direction Tuple
}

// NewRay creates a new ray
func NewRay(origin, direction Tuple) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// Position returns the point at parameter t along the ray
func (r Ray) Position(t float64) Tuple {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Transform applies m to both origin and direction. The direction is not renormalized.
func (r Ray) Transform(m Matrix) Ray {
	return Ray{Origin: m.MultiplyTuple(r.Origin), Direction: m.MultiplyTuple(r.Direction)}
}
