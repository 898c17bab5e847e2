package colormath

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/kataras/figma-tokens/pkg/figma"
)

// ErrGradientHandles is returned when a gradient paint carries fewer than two handle points.
var ErrGradientHandles = errors.New("gradient needs at least two handle positions")

// Size is the width and height of the painted box. The zero Size is treated as a unit square.
type Size struct {
	Width, Height float64
}

// SizeOf returns the size of a node bounding box, or the zero Size when box is nil.
func SizeOf(box *figma.Rectangle) Size {
	if box == nil {
		return Size{}
	}
	return Size{Width: box.Width, Height: box.Height}
}

func (s Size) normalized() Size {
	if s.Width <= 0 || s.Height <= 0 {
		return Size{Width: 1, Height: 1}
	}
	return s
}

// Stop is a gradient color stop with its position in percent.
type Stop struct {
	Color    figma.Color
	Position float64
}

// LinearGradient holds the CSS parameters recovered from Figma gradient handles.
type LinearGradient struct {
	Angle float64 // CSS degrees, [0, 360)
	Stops []Stop
}

// RadialGradient holds the CSS parameters of a radial gradient, all in percent of the box.
type RadialGradient struct {
	Width, Height    float64
	CenterX, CenterY float64
	Stops            []Stop
}

// LinearGradientParams recovers a CSS linear-gradient from the three Figma
// handles: the pivot (start), the direction guide (end) and the angle guide
// (width handle). The angle guide spans the isoline through the pivot; the
// gradient runs perpendicular to it, towards the direction guide.
//
// The CSS gradient line always crosses the box so that 0% and 100% touch
// opposite corners. Both corner lines are intersected with the line through
// the start and end handles, and each stop is re-expressed as a percentage of
// that intersected segment.
func LinearGradientParams(handles []figma.Vector, stops []figma.ColorStop, size Size) (LinearGradient, error) {
	if len(handles) < 2 {
		return LinearGradient{}, ErrGradientHandles
	}

	size = size.normalized()
	toBox := func(v figma.Vector) Point {
		return Point{X: v.X * size.Width, Y: v.Y * size.Height}
	}

	pivot, dir := toBox(handles[0]), toBox(handles[1])
	guide := pivot
	if len(handles) > 2 {
		guide = toBox(handles[2])
	}

	angle := gradientAngle(pivot, dir, guide)

	start, end, err := gradientLine(angle, size, pivot, dir)
	if err != nil {
		return LinearGradient{}, err
	}

	segment := end.sub(start)
	length := segment.dot(segment)

	out := LinearGradient{Angle: round(angle, 2)}
	for _, s := range stops {
		pos := 0.0
		if length > epsilon {
			p := pivot.add(dir.sub(pivot).scale(s.Position))
			pos = p.sub(start).dot(segment) / length * 100
		}
		out.Stops = append(out.Stops, Stop{Color: s.Color, Position: round(pos, 2)})
	}
	return out, nil
}

// gradientAngle returns the CSS angle of the gradient direction.
//
// The slope of pivot->guide gives the isoline. Its normal is the gradient
// direction, up to sign: when the direction guide falls on the opposite side,
// the roles flip and the normal is reversed. A guide that coincides with the
// pivot leaves no isoline, so the pivot->direction vector is used directly.
func gradientAngle(pivot, dir, guide Point) float64 {
	iso := guide.sub(pivot)
	if math.Abs(iso.X) < epsilon && math.Abs(iso.Y) < epsilon {
		d := dir.sub(pivot)
		return cssAngle(d.X, d.Y)
	}

	normal := Point{X: -iso.Y, Y: iso.X}
	if normal.dot(dir.sub(pivot)) < 0 {
		normal = normal.scale(-1)
	}
	return cssAngle(normal.X, normal.Y)
}

// cssAngle converts a screen-space direction vector (y down) to CSS degrees:
// 0deg points up and angles grow clockwise.
func cssAngle(dx, dy float64) float64 {
	deg := math.Atan2(dx, -dy) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

// gradientLine returns the points where the CSS 0% and 100% lines cross the
// line through the gradient handles.
func gradientLine(angle float64, size Size, pivot, dir Point) (Point, Point, error) {
	center := Point{X: size.Width / 2, Y: size.Height / 2}
	rad := angle * math.Pi / 180
	g := Point{X: math.Sin(rad), Y: -math.Cos(rad)}

	corners := []Point{
		{0, 0},
		{size.Width, 0},
		{size.Width, size.Height},
		{0, size.Height},
	}
	startCorner, endCorner := corners[0], corners[0]
	minDot, maxDot := math.Inf(1), math.Inf(-1)
	for _, c := range corners {
		d := c.sub(center).dot(g)
		if d < minDot-epsilon {
			minDot, startCorner = d, c
		}
		if d > maxDot+epsilon {
			maxDot, endCorner = d, c
		}
	}

	// The horizontal box edge through each corner, rotated about the center
	// by the gradient angle, is perpendicular to the gradient direction.
	edge := func(corner Point) Line {
		a := Rotate(Point{X: center.X - 1, Y: center.Y}, center, angle)
		b := Rotate(Point{X: center.X + 1, Y: center.Y}, center, angle)
		return Line{A: corner, B: corner.add(b.sub(a))}
	}

	// Any scale works for the handle line; stretch it so that it reads as a
	// line rather than a segment.
	span := dir.sub(pivot).scale(1000)
	handleLine := Line{A: pivot.sub(span), B: pivot.add(span)}

	start, err := Intersect(edge(startCorner), handleLine)
	if err != nil {
		return Point{}, Point{}, fmt.Errorf("gradient start line: %w", err)
	}
	end, err := Intersect(edge(endCorner), handleLine)
	if err != nil {
		return Point{}, Point{}, fmt.Errorf("gradient end line: %w", err)
	}
	return start, end, nil
}

// RadialGradientParams reads the ellipse of a radial gradient straight from
// the handles: the first is the center, the second ends the horizontal radius
// and the third ends the vertical radius.
func RadialGradientParams(handles []figma.Vector, stops []figma.ColorStop) (RadialGradient, error) {
	if len(handles) < 3 {
		return RadialGradient{}, ErrGradientHandles
	}

	center := Point{X: handles[0].X, Y: handles[0].Y}
	out := RadialGradient{
		Width:   round(Distance(center, Point{X: handles[1].X, Y: handles[1].Y})*100, 2),
		Height:  round(Distance(center, Point{X: handles[2].X, Y: handles[2].Y})*100, 2),
		CenterX: round(center.X*100, 2),
		CenterY: round(center.Y*100, 2),
	}
	for _, s := range stops {
		out.Stops = append(out.Stops, Stop{Color: s.Color, Position: round(s.Position*100, 2)})
	}
	return out, nil
}

// CSS renders the gradient as a linear-gradient() function.
func (g LinearGradient) CSS() string {
	return fmt.Sprintf("linear-gradient(%sdeg, %s)", num(g.Angle), stopsCSS(g.Stops))
}

// CSS renders the gradient as a radial-gradient() function.
func (g RadialGradient) CSS() string {
	return fmt.Sprintf("radial-gradient(%s%% %s%% at %s%% %s%%, %s)",
		num(g.Width), num(g.Height), num(g.CenterX), num(g.CenterY), stopsCSS(g.Stops))
}

func stopsCSS(stops []Stop) string {
	parts := make([]string, 0, len(stops))
	for _, s := range stops {
		parts = append(parts, fmt.Sprintf("%s %s%%", CSSColor(s.Color), num(s.Position)))
	}
	return strings.Join(parts, ", ")
}

// GradientCSS renders a gradient paint as CSS. The paint opacity is folded
// into every stop color.
func GradientCSS(p figma.Paint, size Size) (string, error) {
	stops := make([]figma.ColorStop, len(p.GradientStops))
	for i, s := range p.GradientStops {
		stops[i] = figma.ColorStop{Position: s.Position, Color: WithOpacity(s.Color, p.Alpha())}
	}

	switch p.Type {
	case figma.PaintGradientLinear:
		g, err := LinearGradientParams(p.GradientHandlePositions, stops, size)
		if err != nil {
			return "", err
		}
		return g.CSS(), nil
	case figma.PaintGradientRadial, figma.PaintGradientDiamond:
		g, err := RadialGradientParams(p.GradientHandlePositions, stops)
		if err != nil {
			return "", err
		}
		return g.CSS(), nil
	default:
		return "", fmt.Errorf("unsupported gradient type %q", p.Type)
	}
}
