// Package figmatokens derives a versioned design token model from a Figma
// file: typed token sets per component part and variant, the color,
// typography and effect styles, exported icons and logos, and a changelog
// between two runs.
//
// The CLI lives in cmd/figma-tokens; this root package exposes the same
// pipeline as a Go API.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named figmatokens:
//
//	import "github.com/kataras/figma-tokens" // package figmatokens
//
// # Quick start
//
//	defs, err := config.Load("components")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := figmatokens.Run(ctx, figmatokens.Options{
//	    AccessToken: os.Getenv("FIGMA_TOKEN"),
//	    FileURL:     "https://www.figma.com/design/ABC123/Design-System",
//	    Definitions: defs,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	record := changelog.BuildRecord(previous, result.Snapshot(), time.Now())
//
// # Component definitions
//
// A definition names a COMPONENT_SET, the variant dimensions it supports
// (THEME, TYPE, STATE, ACTIVITY for design components; LAYOUT, SIZE for
// layout components) and its parts. Each part lists path expressions such as
//
//	FRAME[name='Body'] > TEXT[name='$type']
//
// and the token categories to read from the node they resolve to. See
// package config for the YAML format.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
package figmatokens
