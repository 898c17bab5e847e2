// Package variant turns component variant names such as
// "Theme=Dark, Type=Primary, State=Hover" into canonical component identities.
package variant

import (
	"fmt"
	"strings"
)

// Dimension is a named axis of variation.
type Dimension string

// Variant dimensions. THEME, TYPE, STATE and ACTIVITY describe design
// components; LAYOUT and SIZE describe layout components.
const (
	Theme    Dimension = "THEME"
	Type     Dimension = "TYPE"
	State    Dimension = "STATE"
	Activity Dimension = "ACTIVITY"
	Layout   Dimension = "LAYOUT"
	Size     Dimension = "SIZE"
)

// Dimensions lists every dimension in canonical order.
var Dimensions = []Dimension{Theme, Type, State, Activity, Layout, Size}

// ParseDimension accepts a dimension name in any case.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Dimensions {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown variant dimension %q", s)
}

// IsLayout reports whether d belongs to layout components.
func (d Dimension) IsLayout() bool {
	return d == Layout || d == Size
}

// Key is the property name used in Figma variant names, e.g. "Theme".
func (d Dimension) Key() string {
	s := strings.ToLower(string(d))
	return strings.ToUpper(s[:1]) + s[1:]
}

// Placeholder is the token substituted in path name selectors, e.g. "$theme".
func (d Dimension) Placeholder() string {
	return "$" + strings.ToLower(string(d))
}

// Kind tells design components from layout components.
type Kind string

// Component kinds.
const (
	Design     Kind = "design"
	LayoutKind Kind = "layout"
)

// Variant holds the normalized dimension values of one component.
// An empty value means the dimension is not part of the identity.
type Variant struct {
	Kind     Kind   `json:"kind"`
	Theme    string `json:"theme,omitempty"`
	Type     string `json:"type,omitempty"`
	State    string `json:"state,omitempty"`
	Activity string `json:"activity,omitempty"`
	Layout   string `json:"layout,omitempty"`
	Size     string `json:"size,omitempty"`
}

// Get returns the value of dimension d.
func (v Variant) Get(d Dimension) string {
	switch d {
	case Theme:
		return v.Theme
	case Type:
		return v.Type
	case State:
		return v.State
	case Activity:
		return v.Activity
	case Layout:
		return v.Layout
	case Size:
		return v.Size
	}
	return ""
}

// Set assigns the value of dimension d.
func (v *Variant) Set(d Dimension, value string) {
	switch d {
	case Theme:
		v.Theme = value
	case Type:
		v.Type = value
	case State:
		v.State = value
	case Activity:
		v.Activity = value
	case Layout:
		v.Layout = value
	case Size:
		v.Size = value
	}
}

// Normalize lower-cases s, collapses every run of characters other than a-z
// and 0-9 into a single hyphen and trims hyphens at both ends.
func Normalize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			if pendingHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingHyphen = false
			sb.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return sb.String()
}

// Property returns the raw value of key in a comma separated "Key=Value"
// variant name, and whether the fragment exists. Key matching ignores case.
func Property(name, key string) (string, bool) {
	prefix := key + "="
	for _, fragment := range strings.Split(name, ",") {
		fragment = strings.TrimSpace(fragment)
		if len(fragment) >= len(prefix) && strings.EqualFold(fragment[:len(prefix)], prefix) {
			return strings.TrimSpace(fragment[len(prefix):]), true
		}
	}
	return "", false
}
