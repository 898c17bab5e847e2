package extractor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kataras/figma-tokens/pkg/colormath"
	"github.com/kataras/figma-tokens/pkg/figma"
	"github.com/kataras/figma-tokens/pkg/nodepath"
	"github.com/kataras/figma-tokens/pkg/tokens"
	"github.com/kataras/figma-tokens/pkg/variant"
)

// DesignTokens holds the design tokens read from the published styles of a Figma file.
type DesignTokens struct {
	Colors     []ColorObject      `json:"colors"`
	Typography []TypographyObject `json:"typography"`
	Effects    []EffectObject     `json:"effects"`
}

// Meta names a published style. Name is the Figma style name ("Primary/500"),
// Group its first path segment and MachineName the normalized full path.
type Meta struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Group       string `json:"group"`
	MachineName string `json:"machineName"`
	Description string `json:"description,omitempty"`
}

// ColorObject is a FILL style.
type ColorObject struct {
	Meta
	// Color is the CSS value: a single color or comma separated layers.
	Color string `json:"color"`
	// Flat is the composited solid color, for targets without layered backgrounds.
	Flat      string    `json:"flat"`
	Hex       string    `json:"hex,omitempty"`
	RGB       []float64 `json:"rgb,omitempty"`
	BlendMode string    `json:"blendMode"`
}

// TypographyObject is a TEXT style.
type TypographyObject struct {
	Meta
	Style tokens.TypographyTokenSet `json:"style"`
}

// EffectObject is an EFFECT style.
type EffectObject struct {
	Meta
	Shadows []Shadow `json:"shadows"`
	// BoxShadow is the CSS box-shadow value of every visible shadow.
	BoxShadow string `json:"boxShadow"`
	// Blur is the largest visible layer blur radius, 0 when none.
	Blur float64 `json:"blur,omitempty"`
}

// Shadow represents a visual shadow effect with its positioning, blur, spread, and color properties.
// Supports both DROP_SHADOW and INNER_SHADOW types from Figma.
type Shadow struct {
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Blur   float64 `json:"blur"`
	Spread float64 `json:"spread"`
	Color  string  `json:"color"`
}

// CSS renders the shadow as one box-shadow entry.
func (s Shadow) CSS() string {
	inset := ""
	if s.Type == "INNER_SHADOW" {
		inset = "inset "
	}
	return fmt.Sprintf("%s%gpx %gpx %gpx %gpx %s", inset, s.X, s.Y, s.Blur, s.Spread, s.Color)
}

// Extract walks the document and reads every published style from the first
// node it is applied to. Styles of an unsupported type (GRID) and style
// references missing from the file's style table are skipped. The result is
// sorted by machine name.
func Extract(file *figma.FileResponse) (*DesignTokens, error) {
	out := &DesignTokens{
		Colors:     []ColorObject{},
		Typography: []TypographyObject{},
		Effects:    []EffectObject{},
	}

	seen := make(map[string]bool)
	nodes := nodepath.FindAll(&file.Document, func(n *figma.Node) bool {
		return len(n.Styles) > 0
	})

	for _, node := range nodes {
		for _, kind := range sortedKeys(node.Styles) {
			styleID := node.Styles[kind]
			if seen[styleID] {
				continue
			}
			style, ok := file.Styles[styleID]
			if !ok {
				continue
			}

			meta := newMeta(styleID, style)
			switch {
			case style.StyleType == "FILL" && (kind == "fill" || kind == "fills"):
				obj, err := colorObject(meta, node)
				if err != nil {
					return nil, fmt.Errorf("color style %q: %w", style.Name, err)
				}
				out.Colors = append(out.Colors, obj)
			case style.StyleType == "TEXT" && kind == "text":
				style := tokens.Extract(node, tokens.Typography).(tokens.TypographyTokenSet)
				style.Characters = nil // sample text, not part of the style
				out.Typography = append(out.Typography, TypographyObject{Meta: meta, Style: style})
			case style.StyleType == "EFFECT" && kind == "effect":
				out.Effects = append(out.Effects, effectObject(meta, node))
			default:
				continue
			}
			seen[styleID] = true
		}
	}

	sort.SliceStable(out.Colors, func(i, j int) bool { return out.Colors[i].MachineName < out.Colors[j].MachineName })
	sort.SliceStable(out.Typography, func(i, j int) bool { return out.Typography[i].MachineName < out.Typography[j].MachineName })
	sort.SliceStable(out.Effects, func(i, j int) bool { return out.Effects[i].MachineName < out.Effects[j].MachineName })

	return out, nil
}

func newMeta(styleID string, style figma.Style) Meta {
	id := style.Key
	if id == "" {
		id = styleID
	}
	group := style.Name
	if i := strings.Index(group, "/"); i >= 0 {
		group = group[:i]
	}
	return Meta{
		ID:          id,
		Name:        style.Name,
		Group:       variant.Normalize(group),
		MachineName: variant.Normalize(style.Name),
		Description: style.Description,
	}
}

func colorObject(meta Meta, node *figma.Node) (ColorObject, error) {
	size := colormath.SizeOf(node.AbsoluteBoundingBox)

	layered, err := colormath.CompositeFills(node.Fills, size, false)
	if err != nil {
		return ColorObject{}, err
	}
	flat, err := colormath.CompositeFills(node.Fills, size, true)
	if err != nil {
		return ColorObject{}, err
	}

	obj := ColorObject{
		Meta:      meta,
		Color:     layered.Color,
		Flat:      flat.Color,
		BlendMode: layered.BlendMode,
	}
	if c, ok := colormath.Flatten(node.Fills); ok {
		obj.RGB = colormath.WebRGB(c)
		obj.Hex = colormath.Hex(c)
	}
	return obj, nil
}

func effectObject(meta Meta, node *figma.Node) EffectObject {
	obj := EffectObject{Meta: meta, Shadows: []Shadow{}}
	var css []string
	for _, effect := range node.Effects {
		if !effect.Visible {
			continue
		}
		switch effect.Type {
		case "DROP_SHADOW", "INNER_SHADOW":
			s := Shadow{
				Type:   effect.Type,
				Blur:   effect.Radius,
				Spread: effect.Spread,
				Color:  "#000000",
			}
			if effect.Offset != nil {
				s.X, s.Y = effect.Offset.X, effect.Offset.Y
			}
			if effect.Color != nil {
				s.Color = colormath.CSSColor(*effect.Color)
			}
			obj.Shadows = append(obj.Shadows, s)
			css = append(css, s.CSS())
		case "LAYER_BLUR":
			if effect.Radius > obj.Blur {
				obj.Blur = effect.Radius
			}
		}
	}
	obj.BoxShadow = strings.Join(css, ", ")
	return obj
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
