package figmatokens

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/kataras/figma-tokens/pkg/changelog"
	"github.com/kataras/figma-tokens/pkg/config"
	"github.com/kataras/figma-tokens/pkg/extractor"
	"github.com/kataras/figma-tokens/pkg/figma"
	"github.com/kataras/figma-tokens/pkg/formatter"
	"github.com/kataras/figma-tokens/pkg/imager"
	"github.com/kataras/figma-tokens/pkg/nodepath"
	"github.com/kataras/figma-tokens/pkg/tokens"
	"github.com/kataras/figma-tokens/pkg/variant"

	"golang.org/x/sync/errgroup"
)

// Version is the release of the module and the CLI.
const Version = "0.3.0"

// Options configures the extraction.
type Options struct {
	AccessToken string
	FileURL     string // Figma file URL or bare file key
	BaseURL     string // API base URL, empty for the public Figma API
	Definitions []config.Definition
	Workers     int // component families extracted in parallel, default GOMAXPROCS

	ExportAssets bool
	IconsFrame   string // default "Icons"
	LogosFrame   string // default "Logos"
	AssetFormat  string // default "svg"
	AssetDir     string // empty keeps assets in memory (hashes only)

	Logger Logger // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Family is the extraction output of one component definition.
type Family struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Components []variant.Component `json:"components"`
}

// Result contains the extraction output.
type Result struct {
	FileKey  string                  `json:"fileKey,omitempty"`
	FileName string                  `json:"fileName"` // Figma file name
	Version  string                  `json:"version"`  // Figma file version
	Families map[string]Family       `json:"families"`
	Design   *extractor.DesignTokens `json:"design"`
	Icons    []imager.Asset          `json:"icons"`
	Logos    []imager.Asset          `json:"logos"`
	// AssetsExported is set when the run exported icons and logos.
	AssetsExported bool `json:"assetsExported"`
	// Errors holds the component instances that failed and were left out.
	Errors   []error `json:"-"`
	Markdown string  `json:"-"` // formatted markdown output
	Requests int64   `json:"-"` // Figma API requests made
}

// Snapshot returns the parts of r the changelog tracks.
func (r *Result) Snapshot() changelog.Snapshot {
	return changelog.Snapshot{
		Design: changelog.DesignSnapshot{
			Colors:     r.Design.Colors,
			Typography: r.Design.Typography,
		},
		Assets: changelog.AssetSnapshot{
			Exported: r.AssetsExported,
			Icons:    r.Icons,
			Logos:    r.Logos,
		},
	}
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

func (o *Options) logError(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Errorf(f, a...)
	}
}

func (o *Options) applyDefaults() {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.IconsFrame == "" {
		o.IconsFrame = "Icons"
	}
	if o.LogosFrame == "" {
		o.LogosFrame = "Logos"
	}
	if o.AssetFormat == "" {
		o.AssetFormat = "svg"
	}
}

// Run fetches the Figma file and executes the extraction pipeline.
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts.applyDefaults()

	opts.logInfo("Extracting file key from URL...")
	fileKey, err := figma.ExtractFileKey(opts.FileURL)
	if err != nil {
		return nil, fmt.Errorf("extract file key: %w", err)
	}
	opts.logInfo("File key: %s", fileKey)

	var clientOpts []figma.ClientOption
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, figma.WithBaseURL(opts.BaseURL))
	}
	client := figma.NewClient(opts.AccessToken, clientOpts...)

	opts.logInfo("Fetching file data from Figma...")
	file, err := client.GetFile(ctx, fileKey)
	if err != nil {
		return nil, fmt.Errorf("fetch file: %w", err)
	}
	opts.logInfo("File: %s", file.Name)

	result, err := Extract(ctx, file, opts)
	if err != nil {
		return nil, err
	}
	result.FileKey = fileKey

	if opts.ExportAssets {
		if err := exportAssets(ctx, &opts, client, fileKey, file, result); err != nil {
			return nil, err
		}
	}

	result.Requests = client.Requests()
	opts.logInfo("Figma API requests: %d", result.Requests)
	return result, nil
}

// Extract runs the extraction over an already fetched file: the style tokens
// and one Family per definition. Families are independent and extracted in
// parallel; the output does not depend on scheduling.
func Extract(ctx context.Context, file *figma.FileResponse, opts Options) (*Result, error) {
	opts.applyDefaults()

	opts.logInfo("Extracting style tokens...")
	design, err := extractor.Extract(file)
	if err != nil {
		return nil, fmt.Errorf("extract styles: %w", err)
	}
	opts.logInfo("Found %d color(s), %d text style(s), %d effect(s)",
		len(design.Colors), len(design.Typography), len(design.Effects))

	families := make([]Family, len(opts.Definitions))
	found := make([]bool, len(opts.Definitions))
	failures := make([][]error, len(opts.Definitions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, def := range opts.Definitions {
		i, def := i, def
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			families[i], found[i], failures[i] = extractFamily(file, def)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		FileName: file.Name,
		Version:  file.Version,
		Families: make(map[string]Family, len(families)),
		Design:   design,
		Icons:    []imager.Asset{},
		Logos:    []imager.Asset{},
	}

	total := 0
	for i, fam := range families {
		if !found[i] {
			opts.logWarn("No component set named %q for definition %q", opts.Definitions[i].Name, fam.ID)
		} else {
			total++
			opts.logInfo("%s: %d component(s)", fam.ID, len(fam.Components))
		}
		for _, err := range failures[i] {
			opts.logError("%v", err)
			result.Errors = append(result.Errors, err)
		}
		result.Families[fam.ID] = fam
	}
	if total == 0 && len(opts.Definitions) > 0 {
		opts.logWarn("No publishable component families found; only style tokens were extracted")
	}

	familyMap := make(map[string][]variant.Component, len(families))
	for _, fam := range families {
		familyMap[fam.ID] = fam.Components
	}
	result.Markdown = formatter.TokensMarkdown(file.Name, design, familyMap)
	return result, nil
}

// extractFamily extracts every variant of the COMPONENT_SET nodes named after
// def. It reports false when there is no such set. A component that fails is
// left out of the family and its error returned.
func extractFamily(file *figma.FileResponse, def config.Definition) (Family, bool, []error) {
	fam := Family{ID: def.ID, Name: def.Name, Components: []variant.Component{}}
	name := def.Name
	if name == "" {
		name = def.ID
	}

	sets := nodepath.FindAll(&file.Document, func(n *figma.Node) bool {
		return n.Type == figma.NodeComponentSet && strings.EqualFold(strings.TrimSpace(n.Name), name)
	})
	if len(sets) == 0 {
		return fam, false, nil
	}

	var errs []error
	schema := def.Schema()
	collector := variant.NewCollector(schema)
	for _, set := range sets {
		for i := range set.Children {
			node := &set.Children[i]
			if node.Type != figma.NodeComponent {
				continue
			}
			comp, err := extractComponent(file, def, schema, set, node)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", def.ID, err))
				continue
			}
			collector.Add(comp)
		}
	}

	fam.Components = collector.Components()
	return fam, true, errs
}

func extractComponent(file *figma.FileResponse, def config.Definition, schema variant.Schema, set, node *figma.Node) (variant.Component, error) {
	res := schema.Resolve(node.Name)

	anchor, err := variant.Anchor(node, res.Variant.Kind)
	if err != nil {
		return variant.Component{}, err
	}

	subs := res.Substitutions()
	parts := make(tokens.Parts, len(def.Parts))
	for _, part := range def.Parts {
		sets, err := tokens.ExtractPart(anchor, part.Tokens, subs)
		if err != nil {
			return variant.Component{}, fmt.Errorf("component %q: part %q: %w", node.Name, part.ID, err)
		}
		parts[part.ID] = sets
	}

	description := file.Components[node.ID].Description
	if description == "" {
		description = file.ComponentSets[set.ID].Description
	}

	return variant.Component{
		ID:          schema.ID(res.Variant),
		Name:        node.Name,
		Description: description,
		Variant:     res.Variant,
		Parts:       parts,
	}, nil
}

func exportAssets(ctx context.Context, opts *Options, client *figma.Client, fileKey string, file *figma.FileResponse, result *Result) error {
	result.AssetsExported = true
	targets := imager.Collect(&file.Document, opts.IconsFrame, imager.Icon)
	targets = append(targets, imager.Collect(&file.Document, opts.LogosFrame, imager.Logo)...)
	if len(targets) == 0 {
		opts.logWarn("No icons or logos found in frames %q and %q", opts.IconsFrame, opts.LogosFrame)
		return nil
	}

	opts.logInfo("Exporting %d asset(s)...", len(targets))
	exported, err := imager.Export(ctx, client, fileKey, targets, imager.ExportConfig{
		Format:    opts.AssetFormat,
		OutputDir: opts.AssetDir,
	})
	if err != nil {
		return fmt.Errorf("export assets: %w", err)
	}
	for _, dlErr := range exported.Errors {
		opts.logError("%v", dlErr)
	}
	opts.logInfo("Exported %d icon(s) and %d logo(s)", len(exported.Icons), len(exported.Logos))

	if exported.Icons != nil {
		result.Icons = exported.Icons
	}
	if exported.Logos != nil {
		result.Logos = exported.Logos
	}
	return nil
}
