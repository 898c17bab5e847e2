package imager

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/kataras/figma-tokens/pkg/figma"
	"github.com/kataras/figma-tokens/pkg/nodepath"

	"golang.org/x/sync/errgroup"
)

// Kind is the asset family, also used as the output sub-directory.
type Kind string

// Asset kinds.
const (
	Icon Kind = "icons"
	Logo Kind = "logos"
)

// Target is a node to export.
type Target struct {
	NodeID string
	Name   string
	Kind   Kind
}

// Asset is an exported file. Path is slash separated and relative to the
// output directory, e.g. "icons/arrow-left.svg".
type Asset struct {
	Path   string `json:"path"`
	Name   string `json:"name"`
	Kind   Kind   `json:"kind"`
	NodeID string `json:"nodeId"`
	Format string `json:"format"`
	Hash   string `json:"hash"` // sha256 of the content
	Size   int64  `json:"size"`
	// Width and Height are the intrinsic size of SVG assets.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// ExportConfig holds configuration for image export.
type ExportConfig struct {
	Format    string  // "svg" (default), "png", "jpg", "pdf"
	Scale     float64 // raster only
	OutputDir string  // empty keeps the content in memory only
	Workers   int     // parallel downloads, default 5
}

// ExportResult holds the results of an image export operation.
type ExportResult struct {
	Icons  []Asset
	Logos  []Asset
	Errors []error // non-fatal per-image failures
}

// Renderer is the part of the Figma client the exporter needs.
type Renderer interface {
	GetImages(ctx context.Context, fileKey string, nodeIDs []string, format string, scale float64) (*figma.ImagesResponse, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

var _ Renderer = (*figma.Client)(nil)

const (
	maxNodesPerRequest   = 100
	maxParallelDownloads = 5
)

// Collect returns the COMPONENT nodes found under the first frame, section or
// page named frameName (case-insensitive), in document order. A missing
// frame yields no targets.
func Collect(root *figma.Node, frameName string, kind Kind) []Target {
	if frameName == "" {
		return nil
	}
	frame := nodepath.FindFirst(root, func(n *figma.Node) bool {
		switch n.Type {
		case figma.NodeCanvas, figma.NodeFrame, figma.NodeSection:
			return strings.EqualFold(strings.TrimSpace(n.Name), frameName)
		}
		return false
	})
	if frame == nil {
		return nil
	}

	var targets []Target
	for _, n := range nodepath.FindAll(frame, func(n *figma.Node) bool {
		return n.Type == figma.NodeComponent && n.IsVisible()
	}) {
		targets = append(targets, Target{NodeID: n.ID, Name: n.Name, Kind: kind})
	}
	return targets
}

// Export renders every target through the images endpoint in batches and
// downloads the results concurrently. Per-image failures are collected in
// ExportResult.Errors; an API failure aborts the export.
func Export(ctx context.Context, r Renderer, fileKey string, targets []Target, cfg ExportConfig) (*ExportResult, error) {
	if cfg.Format == "" {
		cfg.Format = "svg"
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.Workers <= 0 {
		cfg.Workers = maxParallelDownloads
	}

	result := &ExportResult{}
	if len(targets) == 0 {
		return result, nil
	}

	files := fileNames(targets, cfg.Format)
	urls := make(map[string]string, len(targets))
	for i := 0; i < len(targets); i += maxNodesPerRequest {
		end := min(i+maxNodesPerRequest, len(targets))
		ids := make([]string, 0, end-i)
		for _, t := range targets[i:end] {
			ids = append(ids, t.NodeID)
		}

		resp, err := r.GetImages(ctx, fileKey, ids, cfg.Format, cfg.Scale)
		if err != nil {
			return nil, fmt.Errorf("failed to get images from Figma API: %w", err)
		}
		if resp.Err != "" {
			return nil, fmt.Errorf("figma images endpoint: %s", resp.Err)
		}
		for id, u := range resp.Images {
			urls[id] = u
		}
	}

	assets := make([]*Asset, len(targets))
	errs := make([]error, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, t := range targets {
		i, t := i, t
		u := urls[t.NodeID]
		if u == "" {
			errs[i] = fmt.Errorf("no image URL returned for node %s (%s)", t.NodeID, t.Name)
			continue
		}
		g.Go(func() error {
			data, err := r.Download(gctx, u)
			if err != nil {
				errs[i] = fmt.Errorf("failed to download %s: %w", t.Name, err)
				return nil
			}
			a := newAsset(t, files[i], cfg.Format, data)
			if cfg.OutputDir != "" {
				if err := writeFile(filepath.Join(cfg.OutputDir, filepath.FromSlash(a.Path)), data); err != nil {
					return err
				}
			}
			assets[i] = &a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, a := range assets {
		if errs[i] != nil {
			result.Errors = append(result.Errors, errs[i])
		}
		if a == nil {
			continue
		}
		switch a.Kind {
		case Logo:
			result.Logos = append(result.Logos, *a)
		default:
			result.Icons = append(result.Icons, *a)
		}
	}
	return result, nil
}

func newAsset(t Target, file, format string, data []byte) Asset {
	sum := sha256.Sum256(data)
	a := Asset{
		Path:   path.Join(string(t.Kind), file),
		Name:   t.Name,
		Kind:   t.Kind,
		NodeID: t.NodeID,
		Format: format,
		Hash:   hex.EncodeToString(sum[:]),
		Size:   int64(len(data)),
	}
	if format == "svg" {
		a.Width, a.Height, _ = svgSize(data)
	}
	return a
}

func writeFile(dest string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", filepath.Dir(dest), err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %q: %w", dest, err)
	}
	return nil
}

// fileNames builds one unique file name per target, numbering collisions
// within the same kind: arrow.svg, arrow-2.svg. A numbered name never
// reuses one already issued, e.g. to a node literally named "Arrow 2".
func fileNames(targets []Target, format string) []string {
	names := make([]string, len(targets))
	issued := make(map[string]bool)
	next := make(map[string]int)
	for i, t := range targets {
		base := buildBaseName(t.Name, t.NodeID)
		key := string(t.Kind) + "/" + base
		name := base
		for issued[string(t.Kind)+"/"+name] {
			n := max(next[key], 1) + 1
			next[key] = n
			name = fmt.Sprintf("%s-%d", base, n)
		}
		issued[string(t.Kind)+"/"+name] = true
		names[i] = name + "." + format
	}
	return names
}

// buildBaseName creates a kebab-case file name from a node name. Variant
// names ("Name=Arrow, Size=24") keep their values only. Falls back to the
// sanitized node ID when the name is empty.
func buildBaseName(nodeName, nodeID string) string {
	name := nodeName
	if strings.Contains(name, "=") {
		var values []string
		for _, fragment := range strings.Split(name, ",") {
			if _, v, ok := strings.Cut(fragment, "="); ok {
				values = append(values, v)
			}
		}
		name = strings.Join(values, " ")
	}
	if name = toKebabCase(name); name == "" {
		name = toKebabCase(nodeID)
	}
	if name == "" {
		name = "asset"
	}
	return name
}

// toKebabCase converts a string to kebab-case format (lowercase with hyphens).
func toKebabCase(s string) string {
	var sb strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if hyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			hyphen = false
			sb.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '/', r == ':':
			hyphen = true
		}
	}
	return sb.String()
}
