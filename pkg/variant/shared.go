package variant

import "github.com/kataras/figma-tokens/pkg/tokens"

// Component is one extracted variant of a component family.
type Component struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Variant
	Parts tokens.Parts `json:"parts"`
}

// Clone returns a deep copy of c.
func (c Component) Clone() Component {
	c.Parts = c.Parts.Clone()
	return c
}

// SharedKey addresses an authored shared-state component.
type SharedKey struct {
	State string
	Theme string
}

// Collector gathers the components of one family and applies shared-state
// broadcast and de-duplication. It is not safe for concurrent use.
type Collector struct {
	schema     Schema
	components []Component
	shared     map[SharedKey]Component
}

// NewCollector returns an empty Collector for schema.
func NewCollector(schema Schema) *Collector {
	return &Collector{
		schema: schema,
		shared: make(map[SharedKey]Component),
	}
}

// Add records a component. Design components in a shared state are held
// back in the side table, the last one per (state, theme) winning.
func (c *Collector) Add(comp Component) {
	if comp.Kind == Design && c.schema.IsShared(comp.State) {
		c.shared[SharedKey{State: comp.State, Theme: comp.Theme}] = comp
		return
	}
	c.components = append(c.components, comp)
}

// Shared returns the authored variant for key, falling back to the
// configured fallback theme.
func (c *Collector) Shared(key SharedKey) (Component, bool) {
	if comp, ok := c.shared[key]; ok {
		return comp, true
	}
	if fb := Normalize(c.schema.Shared.FallbackTheme); fb != "" {
		comp, ok := c.shared[SharedKey{State: key.State, Theme: fb}]
		return comp, ok
	}
	return Component{}, false
}

// Components returns the collected components followed by the broadcast
// shared-state copies, de-duplicated by id.
//
// Every design component in the default state is paired with each shared
// state: the authored variant for (state, theme) is cloned and stamped with
// the pair's theme, type and activity.
func (c *Collector) Components() []Component {
	out := make([]Component, 0, len(c.components))
	out = append(out, c.components...)

	defaultState := c.schema.Default(State)
	if defaultState != "" && len(c.shared) > 0 {
		for _, comp := range c.components {
			if comp.Kind != Design || comp.State != defaultState {
				continue
			}
			for _, state := range c.schema.Shared.States {
				state = Normalize(state)
				src, ok := c.Shared(SharedKey{State: state, Theme: comp.Theme})
				if !ok {
					continue
				}
				clone := src.Clone()
				clone.Theme = comp.Theme
				clone.Type = comp.Type
				clone.Activity = comp.Activity
				clone.State = state
				clone.ID = c.schema.ID(clone.Variant)
				out = append(out, clone)
			}
		}
	}

	return Dedupe(out)
}

// Dedupe keeps one component per id: the last one written, placed where the id first appeared.
func Dedupe(components []Component) []Component {
	index := make(map[string]int, len(components))
	out := make([]Component, 0, len(components))
	for _, comp := range components {
		if i, ok := index[comp.ID]; ok {
			out[i] = comp
			continue
		}
		index[comp.ID] = len(out)
		out = append(out, comp)
	}
	return out
}
