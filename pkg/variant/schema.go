package variant

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kataras/figma-tokens/pkg/figma"
	"github.com/kataras/figma-tokens/pkg/nodepath"
)

// ErrMissingInstance is returned by Anchor when a design component wraps no INSTANCE node.
var ErrMissingInstance = errors.New("component has no instance node")

// Schema describes which dimensions a component family supports.
type Schema struct {
	// Dimensions lists the supported dimensions. Their order is the order of
	// the id suffixes.
	Dimensions []Dimension
	// Defaults applies when a variant name has no fragment for a dimension.
	Defaults map[Dimension]string
	Shared   Shared
}

// Shared configures shared-state broadcast: STATE values authored once per
// theme and copied onto every TYPE/ACTIVITY combination of the default state.
type Shared struct {
	States []string
	// FallbackTheme is used when a theme has no authored variant for a shared
	// state. Empty disables the fallback.
	FallbackTheme string
}

// Supports reports whether d is part of the schema.
func (s Schema) Supports(d Dimension) bool {
	for _, x := range s.Dimensions {
		if x == d {
			return true
		}
	}
	return false
}

// Default returns the normalized default of d.
func (s Schema) Default(d Dimension) string {
	return Normalize(s.Defaults[d])
}

// IsShared reports whether state is one of the shared states.
func (s Schema) IsShared(state string) bool {
	if state == "" {
		return false
	}
	for _, x := range s.Shared.States {
		if Normalize(x) == state {
			return true
		}
	}
	return false
}

// Resolution is the result of resolving a variant name.
type Resolution struct {
	Variant Variant
	// Raw holds the un-normalized values, used for path placeholders.
	Raw map[Dimension]string
}

// Substitutions returns the placeholder table for path resolution, e.g. "$state" -> "Hover".
func (r Resolution) Substitutions() map[string]string {
	subs := make(map[string]string, len(r.Raw))
	for d, v := range r.Raw {
		subs[d.Placeholder()] = v
	}
	return subs
}

// Resolve reads the supported dimensions out of a variant name. A schema
// with only LAYOUT/SIZE dimensions resolves layout components and one without
// them design components. A schema mixing both treats the name as a layout
// component when it carries a supported LAYOUT or SIZE fragment. Only the
// dimensions of the resolved kind are kept; missing ones take their default.
func (s Schema) Resolve(name string) Resolution {
	kind := s.kindOf(name)

	res := Resolution{
		Variant: Variant{Kind: kind},
		Raw:     make(map[Dimension]string),
	}
	for _, d := range s.Dimensions {
		if d.IsLayout() != (kind == LayoutKind) {
			continue
		}
		raw, ok := Property(name, d.Key())
		if !ok || Normalize(raw) == "" {
			raw = s.Defaults[d]
		}
		if v := Normalize(raw); v != "" {
			res.Variant.Set(d, v)
			res.Raw[d] = raw
		}
	}
	return res
}

func (s Schema) kindOf(name string) Kind {
	var design, layout bool
	for _, d := range s.Dimensions {
		if d.IsLayout() {
			layout = true
		} else {
			design = true
		}
	}
	switch {
	case layout && !design:
		return LayoutKind
	case !layout:
		return Design
	}

	for _, d := range s.Dimensions {
		if !d.IsLayout() {
			continue
		}
		if _, ok := Property(name, d.Key()); ok {
			return LayoutKind
		}
	}
	return Design
}

// ID builds the canonical identity of v:
//
//	design[-theme-{theme}][-type-{type}][-state-{state}][-activity-{activity}]
//	layout-{layout}[-size-{size}]
//
// Suffixes follow the schema's dimension order; dimensions outside the schema
// or without a value are left out.
func (s Schema) ID(v Variant) string {
	var parts []string
	if v.Kind != LayoutKind {
		parts = append(parts, string(Design))
	}
	for _, d := range s.Dimensions {
		if d.IsLayout() != (v.Kind == LayoutKind) {
			continue
		}
		if val := v.Get(d); val != "" {
			parts = append(parts, strings.ToLower(string(d)), val)
		}
	}
	if len(parts) == 0 {
		return string(LayoutKind)
	}
	return strings.Join(parts, "-")
}

// Anchor returns the node parts are resolved from. Layout components are
// their own anchor; design components anchor on the first INSTANCE inside.
func Anchor(component *figma.Node, kind Kind) (*figma.Node, error) {
	if kind == LayoutKind {
		return component, nil
	}
	inst := nodepath.FindFirst(component, func(n *figma.Node) bool {
		return n.Type == figma.NodeInstance
	})
	if inst == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingInstance, component.Name)
	}
	return inst, nil
}
