package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/kataras/figma-tokens/pkg/changelog"
	"github.com/kataras/figma-tokens/pkg/extractor"
	"github.com/kataras/figma-tokens/pkg/figma"
	"github.com/kataras/figma-tokens/pkg/imager"
	"github.com/kataras/figma-tokens/pkg/tokens"
	"github.com/kataras/figma-tokens/pkg/variant"
	"github.com/stretchr/testify/assert"
)

func p[T any](v T) *T { return &v }

func TestTokensMarkdown(t *testing.T) {
	design := &extractor.DesignTokens{
		Colors: []extractor.ColorObject{
			{Meta: extractor.Meta{Name: "Brand/Primary", Group: "brand", MachineName: "brand-primary"}, Color: "#001aff"},
			{Meta: extractor.Meta{Name: "Brand/Secondary", Group: "brand", MachineName: "brand-secondary"}, Color: "#ff0000"},
			{Meta: extractor.Meta{Name: "Neutral/100", Group: "neutral", MachineName: "neutral-100"}, Color: "#f5f5f5"},
		},
		Typography: []extractor.TypographyObject{
			{Meta: extractor.Meta{Name: "Heading/H1"}, Style: tokens.TypographyTokenSet{FontFamily: p("Inter"), FontSize: p(32.0), LineHeight: 1.25}},
		},
		Effects: []extractor.EffectObject{
			{Meta: extractor.Meta{MachineName: "elevation-card"}, BoxShadow: "0px 2px 8px 0px rgba(0, 0, 0, 0.25)"},
		},
	}
	families := map[string][]variant.Component{
		"button": {{
			ID:      "design-theme-light",
			Variant: variant.Variant{Kind: variant.Design, Theme: "light"},
			Parts: tokens.Parts{
				"label": nil,
				"container": {
					tokens.BackgroundTokenSet{Background: []figma.Paint{{Type: figma.PaintSolid, Color: &figma.Color{R: 1, A: 1}}}},
					tokens.FillTokenSet{Color: []figma.Paint{}},
				},
			},
		}, {
			ID:      "design-theme-dark",
			Variant: variant.Variant{Kind: variant.Design, Theme: "dark"},
			Parts:   tokens.Parts{"label": nil},
		}},
		"alert": nil,
	}

	got := TokensMarkdown("Design System", design, families)

	assert.Contains(t, got, "# Design Tokens - Design System\n")
	assert.Contains(t, got, "/* brand */\n--color-brand-primary: #001aff;\n--color-brand-secondary: #ff0000;\n\n/* neutral */\n")
	assert.Contains(t, got, "| Heading/H1 | Inter | 32px | - | 1.25 |\n")
	assert.Contains(t, got, "--shadow-elevation-card: 0px 2px 8px 0px rgba(0, 0, 0, 0.25);\n")
	assert.Contains(t, got, "| `design-theme-light` | design | container, label | container: `#ff0000` |\n")
	assert.Contains(t, got, "| `design-theme-dark` | design | label | - |\n")
	assert.Contains(t, got, "### alert\n\n_No variants found._")
	assert.Less(t, strings.Index(got, "### alert"), strings.Index(got, "### button"))
}

func TestChangelogMarkdown(t *testing.T) {
	assert.Equal(t, "# Changelog\n\nNo changes recorded.\n", ChangelogMarkdown(nil))

	prev := changelog.Snapshot{
		Design: changelog.DesignSnapshot{Colors: []extractor.ColorObject{
			{Meta: extractor.Meta{ID: "1", Name: "Red"}, Color: "#ff0000"},
			{Meta: extractor.Meta{ID: "2", Name: "Gray"}, Color: "#888888"},
		}},
	}
	next := changelog.Snapshot{
		Design: changelog.DesignSnapshot{Colors: []extractor.ColorObject{
			{Meta: extractor.Meta{ID: "1", Name: "Red"}, Color: "#ee0000"},
		}},
		Assets: changelog.AssetSnapshot{Exported: true, Icons: []imager.Asset{{Path: "icons/close.svg"}}},
	}
	r := changelog.BuildRecord(&prev, next, time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC))

	got := ChangelogMarkdown(changelog.History{}.Prepend(r))
	assert.Contains(t, got, "## 2026-10-18T09:30:00Z\n")
	assert.Contains(t, got, "### Colors\n\n- Removed Gray (`#888888`)\n- Changed Red (`#ff0000`) -> Red (`#ee0000`)\n")
	assert.Contains(t, got, "### Icons\n\n- Added `icons/close.svg`\n")
	assert.NotContains(t, got, "### Typography")
}
