package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kataras/figma-tokens/pkg/changelog"
	"github.com/kataras/figma-tokens/pkg/colormath"
	"github.com/kataras/figma-tokens/pkg/extractor"
	"github.com/kataras/figma-tokens/pkg/figma"
	"github.com/kataras/figma-tokens/pkg/imager"
	"github.com/kataras/figma-tokens/pkg/tokens"
	"github.com/kataras/figma-tokens/pkg/variant"
)

// TokensMarkdown renders the design tokens as CSS custom properties plus a
// table of the extracted components per family.
func TokensMarkdown(title string, design *extractor.DesignTokens, families map[string][]variant.Component) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Design Tokens - %s\n\n", title)

	if design != nil && len(design.Colors) > 0 {
		sb.WriteString("## Colors\n\n")
		sb.WriteString("```css\n")
		group := ""
		for i, c := range design.Colors {
			if c.Group != group {
				if i > 0 {
					sb.WriteString("\n")
				}
				group = c.Group
				fmt.Fprintf(&sb, "/* %s */\n", group)
			}
			fmt.Fprintf(&sb, "--color-%s: %s;\n", c.MachineName, c.Color)
		}
		sb.WriteString("```\n\n")
	}

	if design != nil && len(design.Typography) > 0 {
		sb.WriteString("## Typography\n\n")
		sb.WriteString("| Style | Family | Size | Weight | Line height |\n")
		sb.WriteString("|-------|--------|------|--------|-------------|\n")
		for _, t := range design.Typography {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %g |\n",
				t.Name, str(t.Style.FontFamily), px(t.Style.FontSize), num(t.Style.FontWeight), t.Style.LineHeight)
		}
		sb.WriteString("\n")
	}

	if design != nil && len(design.Effects) > 0 {
		sb.WriteString("## Effects\n\n")
		sb.WriteString("```css\n")
		for _, e := range design.Effects {
			if e.BoxShadow != "" {
				fmt.Fprintf(&sb, "--shadow-%s: %s;\n", e.MachineName, e.BoxShadow)
			}
			if e.Blur > 0 {
				fmt.Fprintf(&sb, "--blur-%s: %gpx;\n", e.MachineName, e.Blur)
			}
		}
		sb.WriteString("```\n\n")
	}

	if len(families) > 0 {
		sb.WriteString("## Components\n\n")
		ids := make([]string, 0, len(families))
		for id := range families {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			fmt.Fprintf(&sb, "### %s\n\n", id)
			components := families[id]
			if len(components) == 0 {
				sb.WriteString("_No variants found._\n\n")
				continue
			}
			sb.WriteString("| Variant | Kind | Parts | Colors |\n")
			sb.WriteString("|---------|------|-------|--------|\n")
			for _, c := range components {
				parts := make([]string, 0, len(c.Parts))
				for name := range c.Parts {
					parts = append(parts, name)
				}
				sort.Strings(parts)
				fmt.Fprintf(&sb, "| `%s` | %s | %s | %s |\n", c.ID, c.Kind, strings.Join(parts, ", "), partColors(parts, c.Parts))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// partColors lists the CSS background and fill of every part that has one.
func partColors(names []string, parts tokens.Parts) string {
	var out []string
	for _, name := range names {
		var size colormath.Size
		var layers [][]figma.Paint
		for _, ts := range parts[name] {
			switch ts := ts.(type) {
			case tokens.BackgroundTokenSet:
				layers = append(layers, ts.Background)
			case tokens.FillTokenSet:
				layers = append(layers, ts.Color)
			case tokens.SizeTokenSet:
				size = colormath.Size{Width: ts.Width, Height: ts.Height}
			}
		}
		for _, paints := range layers {
			fill, err := colormath.CompositeFills(paints, size, false)
			if err != nil || fill.Color == "" {
				continue
			}
			out = append(out, fmt.Sprintf("%s: `%s`", name, fill.Color))
		}
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, "<br>")
}

// ChangelogMarkdown renders the records of h, newest first.
func ChangelogMarkdown(h changelog.History) string {
	var sb strings.Builder
	sb.WriteString("# Changelog\n\n")
	if len(h) == 0 {
		sb.WriteString("No changes recorded.\n")
		return sb.String()
	}
	for _, r := range h {
		writeRecord(&sb, r)
	}
	return sb.String()
}

func writeRecord(sb *strings.Builder, r changelog.Record) {
	fmt.Fprintf(sb, "## %s\n\n", r.Timestamp.UTC().Format(time.RFC3339))

	if r.Design != nil {
		writeGroup(sb, "Colors", r.Design.Colors, func(c extractor.ColorObject) string {
			return fmt.Sprintf("%s (`%s`)", c.Name, c.Color)
		})
		writeGroup(sb, "Typography", r.Design.Typography, func(t extractor.TypographyObject) string {
			return fmt.Sprintf("%s (%s %s)", t.Name, str(t.Style.FontFamily), px(t.Style.FontSize))
		})
	}
	if r.Assets != nil {
		describe := func(a imager.Asset) string { return fmt.Sprintf("`%s`", a.Path) }
		writeGroup(sb, "Icons", r.Assets.Icons, describe)
		writeGroup(sb, "Logos", r.Assets.Logos, describe)
	}
}

func writeGroup[T any](sb *strings.Builder, title string, objects []changelog.Object[T], describe func(T) string) {
	if len(objects) == 0 {
		return
	}
	fmt.Fprintf(sb, "### %s\n\n", title)
	for _, o := range objects {
		switch o.Type {
		case changelog.Add:
			fmt.Fprintf(sb, "- Added %s\n", describe(*o.New))
		case changelog.Delete:
			fmt.Fprintf(sb, "- Removed %s\n", describe(*o.Old))
		case changelog.Change:
			fmt.Fprintf(sb, "- Changed %s -> %s\n", describe(*o.Old), describe(*o.New))
		}
	}
	sb.WriteString("\n")
}

func str(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func px(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%gpx", *v)
}

func num(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}
