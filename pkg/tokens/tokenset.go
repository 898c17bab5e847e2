// Package tokens maps resolved Figma nodes to typed token sets.
//
// A TokenSet is a closed sum type: one struct per Category, all implementing
// the sealed TokenSet interface. Merge and Extract switch over every variant,
// so adding a category means adding a case in each of them.
package tokens

import (
	"fmt"
	"strings"

	"github.com/kataras/figma-tokens/pkg/figma"
)

// Category names a kind of token set.
type Category string

// Token categories.
const (
	Background Category = "BACKGROUND"
	Fill       Category = "FILL"
	Border     Category = "BORDER"
	Spacing    Category = "SPACING"
	Typography Category = "TYPOGRAPHY"
	Effect     Category = "EFFECT"
	Opacity    Category = "OPACITY"
	Size       Category = "SIZE"
)

// Categories lists every category in canonical order.
var Categories = []Category{Background, Fill, Border, Spacing, Typography, Effect, Opacity, Size}

// ParseCategory accepts a category name in any case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown token category %q", s)
}

// TokenSet is implemented by exactly the *TokenSet structs of this package.
type TokenSet interface {
	Category() Category
	tokenSet()
}

// BackgroundTokenSet carries a frame's background paints.
type BackgroundTokenSet struct {
	Background []figma.Paint `json:"background"`
}

// FillTokenSet carries a node's fill paints.
type FillTokenSet struct {
	Color []figma.Paint `json:"color"`
}

// BorderTokenSet carries stroke weight, corner radius and stroke paints.
type BorderTokenSet struct {
	Weight  float64       `json:"weight"`
	Radius  float64       `json:"radius"`
	Strokes []figma.Paint `json:"strokes"`
}

// Padding is the auto-layout padding of a frame.
type Padding struct {
	Top    float64 `json:"TOP"`
	Right  float64 `json:"RIGHT"`
	Bottom float64 `json:"BOTTOM"`
	Left   float64 `json:"LEFT"`
}

// SpacingTokenSet carries padding and the auto-layout gap.
type SpacingTokenSet struct {
	Padding Padding `json:"padding"`
	Spacing float64 `json:"spacing"`
}

// TypographyTokenSet carries a text node's style and content.
// Pointer fields are nil when the source node does not define them.
type TypographyTokenSet struct {
	FontFamily          *string  `json:"fontFamily"`
	FontSize            *float64 `json:"fontSize"`
	FontWeight          *float64 `json:"fontWeight"`
	LineHeight          float64  `json:"lineHeight"` // ratio of the font size, 1 = 100%
	LetterSpacing       *float64 `json:"letterSpacing"`
	TextAlignHorizontal *string  `json:"textAlignHorizontal"`
	TextDecoration      string   `json:"textDecoration"`
	TextCase            string   `json:"textCase"`
	Characters          *string  `json:"characters"`
}

// EffectTokenSet carries shadows and blurs.
type EffectTokenSet struct {
	Effect []figma.Effect `json:"effect"`
}

// OpacityTokenSet carries the node opacity.
type OpacityTokenSet struct {
	Opacity float64 `json:"opacity"`
}

// SizeTokenSet carries the node's bounding box dimensions.
type SizeTokenSet struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (BackgroundTokenSet) Category() Category { return Background }
func (FillTokenSet) Category() Category       { return Fill }
func (BorderTokenSet) Category() Category     { return Border }
func (SpacingTokenSet) Category() Category    { return Spacing }
func (TypographyTokenSet) Category() Category { return Typography }
func (EffectTokenSet) Category() Category     { return Effect }
func (OpacityTokenSet) Category() Category    { return Opacity }
func (SizeTokenSet) Category() Category       { return Size }

func (BackgroundTokenSet) tokenSet() {}
func (FillTokenSet) tokenSet()       {}
func (BorderTokenSet) tokenSet()     {}
func (SpacingTokenSet) tokenSet()    {}
func (TypographyTokenSet) tokenSet() {}
func (EffectTokenSet) tokenSet()     {}
func (OpacityTokenSet) tokenSet()    {}
func (SizeTokenSet) tokenSet()       {}
