package extractor

import (
	"testing"

	"github.com/kataras/figma-tokens/pkg/figma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func p[T any](v T) *T { return &v }

func styledFile() *figma.FileResponse {
	return &figma.FileResponse{
		Styles: map[string]figma.Style{
			"S:1": {Key: "k-brand", Name: "Brand/Primary 500", StyleType: "FILL", Description: "Main brand color"},
			"S:2": {Key: "k-heading", Name: "Heading/H1", StyleType: "TEXT"},
			"S:3": {Key: "k-card", Name: "Elevation/Card", StyleType: "EFFECT"},
			"S:4": {Key: "k-grid", Name: "Grid/12", StyleType: "GRID"},
			"S:5": {Name: "Brand/Overlay", StyleType: "FILL"},
		},
		Document: figma.Node{ID: "0:0", Type: figma.NodeDocument, Children: []figma.Node{
			{ID: "0:1", Type: figma.NodeCanvas, Children: []figma.Node{
				{
					ID: "1:1", Type: figma.NodeRectangle, Name: "swatch",
					Styles: map[string]string{"fill": "S:1", "effect": "S:3"},
					Fills:  []figma.Paint{{Type: figma.PaintSolid, Color: &figma.Color{R: 0, G: 0.1, B: 1, A: 1}}},
					Effects: []figma.Effect{
						{Type: "DROP_SHADOW", Visible: true, Radius: 8, Offset: &figma.Vector{Y: 2}, Color: &figma.Color{A: 0.25}},
						{Type: "INNER_SHADOW", Visible: true, Radius: 1, Color: &figma.Color{R: 1, G: 1, B: 1, A: 1}},
						{Type: "DROP_SHADOW", Visible: false, Radius: 30},
						{Type: "LAYER_BLUR", Visible: true, Radius: 4},
					},
				},
				{
					ID: "1:2", Type: figma.NodeRectangle, Name: "second use",
					Styles: map[string]string{"fill": "S:1"},
					Fills:  []figma.Paint{{Type: figma.PaintSolid, Color: &figma.Color{R: 1, A: 1}}},
				},
				{
					ID: "1:3", Type: figma.NodeText, Name: "title",
					Styles:     map[string]string{"text": "S:2", "fill": "S:404"},
					Characters: p("Title"),
					Style:      &figma.TypeStyle{FontFamily: p("Inter"), FontSize: p(32.0), LineHeightPercentFontSize: p(125.0)},
				},
				{
					ID: "1:4", Type: figma.NodeFrame, Name: "grid",
					Styles: map[string]string{"grid": "S:4"},
				},
				{
					ID: "1:5", Type: figma.NodeRectangle, Name: "overlay",
					Styles: map[string]string{"fill": "S:5"},
					Fills: []figma.Paint{
						{Type: figma.PaintSolid, Color: &figma.Color{R: 1, G: 1, B: 1, A: 1}},
						{Type: figma.PaintSolid, Color: &figma.Color{A: 1}, Opacity: p(0.5)},
					},
				},
			}},
		}},
	}
}

func TestExtract(t *testing.T) {
	got, err := Extract(styledFile())
	require.NoError(t, err)

	require.Len(t, got.Colors, 2)
	overlay, brand := got.Colors[0], got.Colors[1]
	assert.Equal(t, "k-brand", brand.ID)
	assert.Equal(t, "brand", brand.Group)
	assert.Equal(t, "brand-primary-500", brand.MachineName)
	assert.Equal(t, "Main brand color", brand.Description)
	assert.Equal(t, "#001aff", brand.Color, "first node using the style wins")
	assert.Equal(t, "#001aff", brand.Hex)
	assert.Equal(t, []float64{0, 26, 255}, brand.RGB)
	assert.Equal(t, "normal", brand.BlendMode)

	assert.Equal(t, "S:5", overlay.ID, "style id is used when the key is missing")
	assert.Equal(t, "linear-gradient(rgba(0, 0, 0, 0.5), rgba(0, 0, 0, 0.5)), linear-gradient(#ffffff, #ffffff)", overlay.Color)
	assert.Equal(t, "#808080", overlay.Flat)
	assert.Equal(t, "normal, normal", overlay.BlendMode)

	require.Len(t, got.Typography, 1)
	h1 := got.Typography[0]
	assert.Equal(t, "heading-h1", h1.MachineName)
	assert.Equal(t, "Inter", *h1.Style.FontFamily)
	assert.Equal(t, 1.25, h1.Style.LineHeight)

	require.Len(t, got.Effects, 1)
	card := got.Effects[0]
	assert.Equal(t, "elevation", card.Group)
	require.Len(t, card.Shadows, 2)
	assert.Equal(t, "0px 2px 8px 0px rgba(0, 0, 0, 0.25), inset 0px 0px 1px 0px #ffffff", card.BoxShadow)
	assert.Equal(t, 4.0, card.Blur)
}

func TestExtract_Empty(t *testing.T) {
	got, err := Extract(&figma.FileResponse{})
	require.NoError(t, err)
	assert.Empty(t, got.Colors)
	assert.NotNil(t, got.Colors)
	assert.Empty(t, got.Typography)
	assert.Empty(t, got.Effects)
}
