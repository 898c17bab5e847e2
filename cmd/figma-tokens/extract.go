package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	figmatokens "github.com/kataras/figma-tokens"
	"github.com/kataras/figma-tokens/pkg/changelog"
	"github.com/kataras/figma-tokens/pkg/config"
	"github.com/kataras/figma-tokens/pkg/figma"
	"github.com/kataras/figma-tokens/pkg/formatter"
	"github.com/kataras/figma-tokens/pkg/store"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type extractFlags struct {
	configPath    string
	outputFile    string
	markdownFile  string
	changelogFile string
	exportAssets  bool
	assetDir      string
	assetFormat   string
	iconsFrame    string
	logosFrame    string
	workers       int
	noStore       bool
}

func newExtractCmd() *cobra.Command {
	var f extractFlags
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract tokens and record the changes since the previous run",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "components", "Component definition YAML file or directory")
	cmd.Flags().StringVarP(&f.outputFile, "output", "o", "tokens.json", "Output JSON file")
	cmd.Flags().StringVar(&f.markdownFile, "markdown", "DESIGN_TOKENS.md", "Output markdown file (empty to skip)")
	cmd.Flags().StringVar(&f.changelogFile, "changelog", "changelog.json", "Changelog JSON history file (empty to skip)")
	cmd.Flags().BoolVar(&f.exportAssets, "export-assets", false, "Export icons and logos")
	cmd.Flags().StringVar(&f.assetDir, "asset-dir", "figma-assets", "Output directory for exported assets")
	cmd.Flags().StringVar(&f.assetFormat, "asset-format", "svg", "Asset format: svg, png, jpg, pdf")
	cmd.Flags().StringVar(&f.iconsFrame, "icons-frame", "Icons", "Name of the frame holding icon components")
	cmd.Flags().StringVar(&f.logosFrame, "logos-frame", "Logos", "Name of the frame holding logo components")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Component families extracted in parallel (0 = number of CPUs)")
	cmd.Flags().BoolVar(&f.noStore, "no-store", false, "Do not read or write the snapshot database")
	return cmd
}

func runExtract(cmd *cobra.Command, f extractFlags) error {
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n🎨 Figma Design Tokens")
	cyan.Println("======================")
	cyan.Println()

	fileURL, err := resolveURL()
	if err != nil {
		return err
	}
	token, err := resolveToken()
	if err != nil {
		return err
	}

	var defs []config.Definition
	if _, statErr := os.Stat(f.configPath); statErr == nil {
		if defs, err = config.Load(f.configPath); err != nil {
			return fmt.Errorf("load component definitions: %w", err)
		}
	} else if cmd.Flags().Changed("config") {
		return statErr
	}

	switch f.assetFormat {
	case "svg", "png", "jpg", "pdf":
	default:
		return fmt.Errorf("invalid asset format %q (must be svg, png, jpg, or pdf)", f.assetFormat)
	}

	ctx := cmd.Context()
	result, err := figmatokens.Run(ctx, figmatokens.Options{
		AccessToken:  token,
		FileURL:      fileURL,
		Definitions:  defs,
		Workers:      f.workers,
		ExportAssets: f.exportAssets,
		IconsFrame:   f.iconsFrame,
		LogosFrame:   f.logosFrame,
		AssetFormat:  f.assetFormat,
		AssetDir:     f.assetDir,
		Logger:       &cliLogger{},
	})
	if err != nil {
		return err
	}

	cyan.Println("\n📊 Extraction Summary:")
	fmt.Printf("  • Colors: %d\n", len(result.Design.Colors))
	fmt.Printf("  • Text Styles: %d\n", len(result.Design.Typography))
	fmt.Printf("  • Effects: %d\n", len(result.Design.Effects))
	for _, def := range defs {
		fmt.Printf("  • %s: %d variant(s)\n", def.ID, len(result.Families[def.ID].Components))
	}
	if f.exportAssets {
		fmt.Printf("  • Icons: %d, Logos: %d\n", len(result.Icons), len(result.Logos))
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	if err := writeOutput(green, f.outputFile, data); err != nil {
		return err
	}
	if f.markdownFile != "" {
		if err := writeOutput(green, f.markdownFile, []byte(result.Markdown)); err != nil {
			return err
		}
	}

	if f.noStore {
		green.Printf("\n✨ Done\n\n")
		return componentErrors(result)
	}

	record, err := recordChanges(cmd, result, f.changelogFile)
	if err != nil {
		return err
	}
	if record == nil {
		green.Printf("\n✨ No changes since the previous snapshot\n\n")
		return componentErrors(result)
	}
	fmt.Println()
	fmt.Print(formatter.ChangelogMarkdown(changelog.History{*record}))
	green.Printf("\n✨ Recorded %d change(s)\n\n", record.Len())
	return componentErrors(result)
}

// componentErrors fails the command when component instances were skipped.
func componentErrors(result *figmatokens.Result) error {
	if n := len(result.Errors); n > 0 {
		return fmt.Errorf("%d component(s) failed to extract", n)
	}
	return nil
}

// recordChanges diffs the result against the latest stored snapshot, stores
// the new snapshot and appends the changelog record, if any.
func recordChanges(cmd *cobra.Command, result *figmatokens.Result, changelogFile string) (*changelog.Record, error) {
	ctx := cmd.Context()
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var prev *changelog.Snapshot
	latest, err := db.LatestSnapshot(ctx, result.FileKey)
	switch {
	case err == nil:
		prev = &latest.Data
	case !errors.Is(err, store.ErrNoSnapshot):
		return nil, err
	}

	next := changelog.CarryAssets(prev, result.Snapshot())
	record := changelog.BuildRecord(prev, next, time.Now())

	if _, err := db.Record(ctx, result.FileKey, result.Version, next, record, time.Now()); err != nil {
		return nil, err
	}
	if changelogFile != "" {
		if err := changelog.Append(changelogFile, record); err != nil {
			return nil, fmt.Errorf("write changelog: %w", err)
		}
	}
	return record, nil
}

func writeOutput(green *color.Color, path string, data []byte) error {
	green.Printf("💾 Writing to %s... ", path)
	if err := os.WriteFile(path, data, 0644); err != nil {
		color.New(color.FgRed).Println("✗")
		return err
	}
	green.Println("✓")
	return nil
}

// fileKeyFromFlags returns the file key of --url/FIGMA_URL.
func fileKeyFromFlags() (string, error) {
	u, err := resolveURL()
	if err != nil {
		return "", err
	}
	return figma.ExtractFileKey(u)
}
