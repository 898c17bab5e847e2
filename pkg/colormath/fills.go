package colormath

import (
	"fmt"
	"strings"

	"github.com/kataras/figma-tokens/pkg/figma"
)

// Fill is the CSS rendering of a paint stack.
type Fill struct {
	Color     string // CSS color, or comma separated layers
	BlendMode string // CSS mix-blend-mode, comma separated for layers
}

// CompositeFills renders a node's visible paints as CSS.
//
// With forceFlat set, the visible SOLID paints are alpha-composited bottom to
// top into one color, for targets that cannot express layered backgrounds.
// Gradients and images do not take part in the flat result.
//
// Otherwise every visible paint becomes its own layer. Figma lists paints
// bottom-up while CSS lists layers top-down, so the order is reversed. Solid
// layers in a multi-layer stack are written as flat gradients, since only
// images may appear below the top layer in CSS.
func CompositeFills(fills []figma.Paint, size Size, forceFlat bool) (Fill, error) {
	visible := make([]figma.Paint, 0, len(fills))
	for _, f := range fills {
		if f.IsVisible() {
			visible = append(visible, f)
		}
	}
	if len(visible) == 0 {
		return Fill{}, nil
	}

	if forceFlat {
		return compositeFlat(visible), nil
	}

	var colors, blends []string
	layered := len(visible) > 1
	for i := len(visible) - 1; i >= 0; i-- {
		p := visible[i]
		var css string
		switch p.Type {
		case figma.PaintSolid:
			if p.Color == nil {
				continue
			}
			c := CSSColor(WithOpacity(*p.Color, p.Alpha()))
			if layered {
				css = fmt.Sprintf("linear-gradient(%s, %s)", c, c)
			} else {
				css = c
			}
		case figma.PaintGradientLinear, figma.PaintGradientRadial, figma.PaintGradientDiamond:
			g, err := GradientCSS(p, size)
			if err != nil {
				return Fill{}, err
			}
			css = g
		default:
			continue
		}
		colors = append(colors, css)
		blends = append(blends, BlendMode(p.BlendMode))
	}

	return Fill{
		Color:     strings.Join(colors, ", "),
		BlendMode: strings.Join(blends, ", "),
	}, nil
}

func compositeFlat(paints []figma.Paint) Fill {
	c, ok := Flatten(paints)
	if !ok {
		return Fill{}
	}
	blend := ""
	for _, p := range paints {
		if p.Type == figma.PaintSolid && p.Color != nil {
			blend = BlendMode(p.BlendMode)
		}
	}
	return Fill{Color: CSSColor(c), BlendMode: blend}
}

// Flatten composites the visible SOLID paints bottom to top. It reports false
// when there is no such paint.
func Flatten(paints []figma.Paint) (figma.Color, bool) {
	var dst figma.Color
	found := false
	for _, p := range paints {
		if !p.IsVisible() || p.Type != figma.PaintSolid || p.Color == nil {
			continue
		}
		dst = Over(WithOpacity(*p.Color, p.Alpha()), dst)
		found = true
	}
	return dst, found
}

// Over composites src over dst:
//
//	outA = 1 - (1-srcA)(1-dstA)
//	outC = (srcC*srcA + dstC*dstA*(1-srcA)) / outA
func Over(src, dst figma.Color) figma.Color {
	outA := 1 - (1-src.A)*(1-dst.A)
	if outA < epsilon {
		return figma.Color{}
	}
	mix := func(s, d float64) float64 {
		return (s*src.A + d*dst.A*(1-src.A)) / outA
	}
	return figma.Color{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: outA,
	}
}

// BlendMode maps a Figma blend mode (e.g. COLOR_DODGE) to its CSS keyword (color-dodge).
// PASS_THROUGH and an empty mode map to normal.
func BlendMode(mode string) string {
	switch mode {
	case "", "PASS_THROUGH", "NORMAL":
		return "normal"
	case "LINEAR_BURN":
		return "plus-darker"
	case "LINEAR_DODGE":
		return "plus-lighter"
	}
	return strings.ReplaceAll(strings.ToLower(mode), "_", "-")
}
