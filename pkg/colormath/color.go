// Package colormath converts Figma colors and paints into web color values.
//
// Figma expresses channels as 0-1 floats; the web wants 0-255 integers, hex
// strings and CSS functions. Gradients are stored as three handle points in the
// node's unit square and have to be mapped back to CSS angle/stop semantics.
package colormath

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kataras/figma-tokens/pkg/figma"
)

// WebRGB scales each 0-1 channel to a rounded 0-255 value. A fourth alpha
// element, rounded to two decimals, is appended only when alpha is not 1.
//
//	WebRGB(figma.Color{R: 0, G: 0.1, B: 1, A: 1}) // [0 26 255]
func WebRGB(c figma.Color) []float64 {
	rgb := []float64{
		float64(channel(c.R)),
		float64(channel(c.G)),
		float64(channel(c.B)),
	}
	if c.A != 1 {
		rgb = append(rgb, round(clamp01(c.A), 2))
	}
	return rgb
}

// Hex renders the color as #rrggbb. When the color is not fully opaque the
// alpha byte is appended (#rrggbbaa), unless it would render as "ff".
func Hex(c figma.Color) string {
	v := channel(c.R)<<16 | channel(c.G)<<8 | channel(c.B)
	s := fmt.Sprintf("#%06x", v)
	if a := channel(c.A); a != 0xff {
		s += fmt.Sprintf("%02x", a)
	}
	return s
}

// ParseHex parses #rgb, #rgba, #rrggbb and #rrggbbaa (the leading # is optional)
// into a 0-1 color. A missing alpha component means fully opaque.
func ParseHex(s string) (figma.Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 || len(h) == 4 {
		var sb strings.Builder
		for _, r := range h {
			sb.WriteRune(r)
			sb.WriteRune(r)
		}
		h = sb.String()
	}
	if len(h) != 6 && len(h) != 8 {
		return figma.Color{}, fmt.Errorf("invalid hex color %q", s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return figma.Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}

	alpha := uint64(0xff)
	if len(h) == 8 {
		alpha = v & 0xff
		v >>= 8
	}

	return figma.Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: float64(alpha) / 255,
	}, nil
}

// CSSColor renders an opaque color as hex and a translucent one as rgba().
func CSSColor(c figma.Color) string {
	rgb := WebRGB(c)
	if len(rgb) == 3 || rgb[3] == 1 {
		return Hex(figma.Color{R: c.R, G: c.G, B: c.B, A: 1})
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", int(rgb[0]), int(rgb[1]), int(rgb[2]), num(rgb[3]))
}

// WithOpacity returns c with its alpha multiplied by opacity.
func WithOpacity(c figma.Color, opacity float64) figma.Color {
	c.A *= opacity
	return c
}

func channel(v float64) int {
	return int(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// num formats a float with at most two decimals and no trailing zeros.
func num(v float64) string {
	r := round(v, 2)
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
