package changelog

import (
	"time"

	"github.com/kataras/figma-tokens/pkg/extractor"
	"github.com/kataras/figma-tokens/pkg/imager"
)

// Snapshot is the part of an extraction run the changelog tracks.
type Snapshot struct {
	Design DesignSnapshot `json:"design"`
	Assets AssetSnapshot  `json:"assets"`
}

// DesignSnapshot holds the design token arrays of a snapshot.
type DesignSnapshot struct {
	Colors     []extractor.ColorObject      `json:"colors"`
	Typography []extractor.TypographyObject `json:"typography"`
}

// AssetSnapshot holds the exported assets of a snapshot. Exported is false
// when the run did not export assets; Icons and Logos are then meaningless.
type AssetSnapshot struct {
	Exported bool           `json:"exported"`
	Icons    []imager.Asset `json:"icons"`
	Logos    []imager.Asset `json:"logos"`
}

// Record is one changelog entry. Empty groups are left out.
type Record struct {
	Timestamp time.Time      `json:"timestamp"`
	Design    *DesignChanges `json:"design,omitempty"`
	Assets    *AssetChanges  `json:"assets,omitempty"`
}

// DesignChanges lists the design token differences.
type DesignChanges struct {
	Colors     []Object[extractor.ColorObject]      `json:"colors,omitempty"`
	Typography []Object[extractor.TypographyObject] `json:"typography,omitempty"`
}

// AssetChanges lists the asset differences.
type AssetChanges struct {
	Icons []Object[imager.Asset] `json:"icons,omitempty"`
	Logos []Object[imager.Asset] `json:"logos,omitempty"`
}

// Len returns the number of entries in r.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	n := 0
	if r.Design != nil {
		n += len(r.Design.Colors) + len(r.Design.Typography)
	}
	if r.Assets != nil {
		n += len(r.Assets.Icons) + len(r.Assets.Logos)
	}
	return n
}

// CarryAssets returns next with the assets of prev when next did not export
// any, so a stored snapshot keeps the last known assets.
func CarryAssets(prev *Snapshot, next Snapshot) Snapshot {
	if !next.Assets.Exported && prev != nil {
		next.Assets = prev.Assets
	}
	return next
}

// BuildRecord diffs next against prev. A nil prev counts as an empty
// snapshot. Assets are compared only when next exported them. It returns nil
// when nothing changed.
func BuildRecord(prev *Snapshot, next Snapshot, now time.Time) *Record {
	if prev == nil {
		prev = &Snapshot{}
	}

	colors := Diff(prev.Design.Colors, next.Design.Colors, func(c extractor.ColorObject) string { return c.ID })
	typography := Diff(prev.Design.Typography, next.Design.Typography, func(t extractor.TypographyObject) string { return t.Name })
	var icons, logos []Object[imager.Asset]
	if next.Assets.Exported {
		icons = Diff(prev.Assets.Icons, next.Assets.Icons, assetPath)
		logos = Diff(prev.Assets.Logos, next.Assets.Logos, assetPath)
	}

	r := &Record{Timestamp: now.UTC()}
	if len(colors) > 0 || len(typography) > 0 {
		r.Design = &DesignChanges{Colors: colors, Typography: typography}
	}
	if len(icons) > 0 || len(logos) > 0 {
		r.Assets = &AssetChanges{Icons: icons, Logos: logos}
	}
	if r.Design == nil && r.Assets == nil {
		return nil
	}
	return r
}

func assetPath(a imager.Asset) string { return a.Path }
