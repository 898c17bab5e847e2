package colormath

import (
	"errors"
	"math"
)

// ErrParallelLines is returned when two lines have no unique intersection.
var ErrParallelLines = errors.New("lines are parallel or colinear")

const epsilon = 1e-9

// Point is a 2D point.
type Point struct {
	X, Y float64
}

// Line is the infinite line through A and B.
type Line struct {
	A, B Point
}

// Intersect returns the unique intersection point of two lines using the
// determinant formula. A zero determinant yields ErrParallelLines.
func Intersect(l1, l2 Line) (Point, error) {
	x1, y1, x2, y2 := l1.A.X, l1.A.Y, l1.B.X, l1.B.Y
	x3, y3, x4, y4 := l2.A.X, l2.A.Y, l2.B.X, l2.B.Y

	det := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if math.Abs(det) < epsilon {
		return Point{}, ErrParallelLines
	}

	a := x1*y2 - y1*x2
	b := x3*y4 - y3*x4
	return Point{
		X: (a*(x3-x4) - (x1-x2)*b) / det,
		Y: (a*(y3-y4) - (y1-y2)*b) / det,
	}, nil
}

// Rotate rotates p around center by deg degrees (clockwise in screen space, y down).
func Rotate(p, center Point, deg float64) Point {
	rad := deg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	dx, dy := p.X-center.X, p.Y-center.Y
	return Point{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func (p Point) sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) scale(f float64) Point { return Point{p.X * f, p.Y * f} }
func (p Point) dot(q Point) float64   { return p.X*q.X + p.Y*q.Y }
