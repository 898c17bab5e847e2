// Package config loads component definitions from YAML files.
//
// A file holds either a single definition or a list under "definitions":
//
//	id: button
//	name: Button
//	dimensions: [THEME, TYPE, STATE]
//	defaults:
//	  THEME: Light
//	  STATE: Default
//	shared:
//	  states: [Disabled]
//	parts:
//	  - id: label
//	    tokens:
//	      - from: "TEXT"
//	        export: [TYPOGRAPHY, FILL]
//	        required: true
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kataras/figma-tokens/pkg/nodepath"
	"github.com/kataras/figma-tokens/pkg/tokens"
	"github.com/kataras/figma-tokens/pkg/variant"

	"gopkg.in/yaml.v3"
)

// Definition describes one component family.
type Definition struct {
	ID string `yaml:"id"`
	// Name is the COMPONENT_SET name to look for. Defaults to ID.
	Name       string            `yaml:"name"`
	Dimensions []string          `yaml:"dimensions"`
	Defaults   map[string]string `yaml:"defaults"`
	Shared     Shared            `yaml:"shared"`
	Parts      []Part            `yaml:"parts"`
}

// Shared lists the shared states of a definition.
type Shared struct {
	States        []string `yaml:"states"`
	FallbackTheme string   `yaml:"fallbackTheme"`
}

// Part is a named region of a component and its token definitions.
type Part struct {
	ID     string              `yaml:"id"`
	Tokens []tokens.Definition `yaml:"tokens"`
}

type file struct {
	Definitions []Definition `yaml:"definitions"`
}

// Parse decodes the definitions held in data. Unknown fields are rejected
// in both forms.
func Parse(data []byte) ([]Definition, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode definitions: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	if hasKey(doc.Content[0], "definitions") {
		var list file
		if err := decodeStrict(data, &list); err != nil {
			return nil, fmt.Errorf("decode definitions: %w", err)
		}
		return list.Definitions, nil
	}

	var single Definition
	if err := decodeStrict(data, &single); err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}
	return []Definition{single}, nil
}

func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func hasKey(n *yaml.Node, key string) bool {
	if n.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return true
		}
	}
	return false
}

// Load reads definitions from a YAML file or from every *.yaml and *.yml
// file of a directory, in lexical order. Every definition is validated.
func Load(path string) ([]Definition, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	files := []string{path}
	if info.IsDir() {
		files = files[:0]
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
				continue
			}
			files = append(files, filepath.Join(path, e.Name()))
		}
		sort.Strings(files)
	}

	var defs []Definition
	seen := make(map[string]string)
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		parsed, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		for i := range parsed {
			if err := parsed[i].Validate(); err != nil {
				return nil, fmt.Errorf("%s: %w", f, err)
			}
			if prev, ok := seen[parsed[i].ID]; ok {
				return nil, fmt.Errorf("%s: duplicate definition %q (first defined in %s)", f, parsed[i].ID, prev)
			}
			seen[parsed[i].ID] = f
		}
		defs = append(defs, parsed...)
	}
	return defs, nil
}

// Validate normalizes d in place and reports the first problem found:
// unknown dimensions or categories, malformed paths, or shared states
// declared without a STATE dimension and default.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return errors.New("definition without id")
	}
	if d.Name == "" {
		d.Name = d.ID
	}

	for i, s := range d.Dimensions {
		dim, err := variant.ParseDimension(s)
		if err != nil {
			return fmt.Errorf("definition %q: %w", d.ID, err)
		}
		d.Dimensions[i] = string(dim)
	}
	for k := range d.Defaults {
		if _, err := variant.ParseDimension(k); err != nil {
			return fmt.Errorf("definition %q: defaults: %w", d.ID, err)
		}
	}

	if len(d.Shared.States) > 0 {
		schema := d.Schema()
		if !schema.Supports(variant.State) || schema.Default(variant.State) == "" {
			return fmt.Errorf("definition %q: shared states need the STATE dimension and a default state", d.ID)
		}
	}

	for pi := range d.Parts {
		part := &d.Parts[pi]
		if part.ID == "" {
			return fmt.Errorf("definition %q: part %d without id", d.ID, pi)
		}
		for ti := range part.Tokens {
			def := &part.Tokens[ti]
			if _, err := nodepath.Parse(def.From); err != nil {
				return fmt.Errorf("definition %q: part %q: %w", d.ID, part.ID, err)
			}
			for ci, c := range def.Export {
				cat, err := tokens.ParseCategory(string(c))
				if err != nil {
					return fmt.Errorf("definition %q: part %q: %w", d.ID, part.ID, err)
				}
				def.Export[ci] = cat
			}
		}
	}
	return nil
}

// Schema returns the variant schema of d. Unknown dimension names are ignored.
func (d Definition) Schema() variant.Schema {
	s := variant.Schema{
		Defaults: make(map[variant.Dimension]string, len(d.Defaults)),
		Shared: variant.Shared{
			States:        d.Shared.States,
			FallbackTheme: d.Shared.FallbackTheme,
		},
	}
	for _, name := range d.Dimensions {
		if dim, err := variant.ParseDimension(name); err == nil {
			s.Dimensions = append(s.Dimensions, dim)
		}
	}
	for k, v := range d.Defaults {
		if dim, err := variant.ParseDimension(k); err == nil {
			s.Defaults[dim] = v
		}
	}
	return s
}
