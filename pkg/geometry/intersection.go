package geometry

import "sort"

// Intersection records where along a ray a body was met
type Intersection struct {
	T    float64
	Body *Body
}

// Intersections is a list of intersections, usually sorted by T
type Intersections []Intersection

// NewIntersections collects xs sorted by T
func NewIntersections(xs ...Intersection) Intersections {
	result := Intersections(xs)
	result.Sort()
	return result
}

// Sort orders the intersections by ascending T, keeping the order of equal values
func (xs Intersections) Sort() {
	sort.SliceStable(xs, func(i, j int) bool { return xs[i].T < xs[j].T })
}

// Hit returns the intersection with the smallest non-negative T
func (xs Intersections) Hit() (Intersection, bool) {
	best := -1
	for i, x := range xs {
		if x.T >= 0 && (best < 0 || x.T < xs[best].T) {
			best = i
		}
	}
	if best < 0 {
		return Intersection{}, false
	}
	return xs[best], true
}
