package tokens

import (
	"errors"
	"fmt"

	"github.com/kataras/figma-tokens/pkg/figma"
	"github.com/kataras/figma-tokens/pkg/nodepath"
)

// ErrRequiredNode is returned by ExtractPart when a required path does not resolve.
var ErrRequiredNode = errors.New("required node not found")

// Definition selects a node by path and lists the categories to extract from it.
type Definition struct {
	From     string     `json:"from" yaml:"from"`
	Export   []Category `json:"export" yaml:"export"`
	Required bool       `json:"required,omitempty" yaml:"required,omitempty"`
}

// Extract maps node fields to the token set of category c, applying defaults
// for every absent field. It returns nil for an unknown category.
func Extract(node *figma.Node, c Category) TokenSet {
	switch c {
	case Background:
		return BackgroundTokenSet{Background: paints(node.Background)}
	case Fill:
		return FillTokenSet{Color: paints(node.Fills)}
	case Border:
		return BorderTokenSet{
			Weight:  deref(node.StrokeWeight, 0),
			Radius:  deref(node.CornerRadius, 0),
			Strokes: paints(node.Strokes),
		}
	case Spacing:
		return SpacingTokenSet{
			Padding: Padding{
				Top:    deref(node.PaddingTop, 0),
				Right:  deref(node.PaddingRight, 0),
				Bottom: deref(node.PaddingBottom, 0),
				Left:   deref(node.PaddingLeft, 0),
			},
			Spacing: deref(node.ItemSpacing, 0),
		}
	case Typography:
		return typography(node)
	case Effect:
		effects := node.Effects
		if effects == nil {
			effects = []figma.Effect{}
		}
		return EffectTokenSet{Effect: effects}
	case Opacity:
		return OpacityTokenSet{Opacity: deref(node.Opacity, 1)}
	case Size:
		var ts SizeTokenSet
		if box := node.AbsoluteBoundingBox; box != nil {
			ts.Width, ts.Height = box.Width, box.Height
		}
		return ts
	}
	return nil
}

func typography(node *figma.Node) TypographyTokenSet {
	ts := TypographyTokenSet{
		LineHeight:     1,
		TextDecoration: "NONE",
		TextCase:       "ORIGINAL",
		Characters:     node.Characters,
	}

	style := node.Style
	if style == nil {
		return ts
	}

	ts.FontFamily = style.FontFamily
	ts.FontSize = style.FontSize
	ts.FontWeight = style.FontWeight
	ts.LetterSpacing = style.LetterSpacing
	ts.TextAlignHorizontal = style.TextAlignHorizontal
	if style.LineHeightPercentFontSize != nil {
		ts.LineHeight = *style.LineHeightPercentFontSize / 100
	}
	ts.TextDecoration = deref(style.TextDecoration, "NONE")
	ts.TextCase = deref(style.TextCase, "ORIGINAL")
	return ts
}

// ExtractPart runs every definition of a part against anchor. Definitions
// whose path does not resolve are skipped, unless marked Required. A category
// produced by several definitions yields a single merged token set, in order
// of first appearance.
func ExtractPart(anchor *figma.Node, defs []Definition, subs map[string]string) ([]TokenSet, error) {
	out := []TokenSet{}
	index := make(map[Category]int)

	for _, def := range defs {
		node := nodepath.Resolve(anchor, def.From, subs)
		if node == nil {
			if def.Required {
				return nil, fmt.Errorf("%w: %q", ErrRequiredNode, def.From)
			}
			continue
		}

		for _, c := range def.Export {
			ts := Extract(node, c)
			if ts == nil {
				continue
			}
			if i, ok := index[c]; ok {
				out[i] = Merge(out[i], ts)
				continue
			}
			index[c] = len(out)
			out = append(out, ts)
		}
	}
	return out, nil
}

func paints(p []figma.Paint) []figma.Paint {
	if p == nil {
		return []figma.Paint{}
	}
	return p
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
