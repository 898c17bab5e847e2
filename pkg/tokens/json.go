package tokens

import (
	"encoding/json"
	"fmt"
)

// Every token set is encoded with its category under "name", the key the
// CSS/SCSS/Tailwind generators switch on.

func (t BackgroundTokenSet) MarshalJSON() ([]byte, error) {
	type alias BackgroundTokenSet
	return marshalNamed(Background, alias(t))
}

func (t FillTokenSet) MarshalJSON() ([]byte, error) {
	type alias FillTokenSet
	return marshalNamed(Fill, alias(t))
}

func (t BorderTokenSet) MarshalJSON() ([]byte, error) {
	type alias BorderTokenSet
	return marshalNamed(Border, alias(t))
}

func (t SpacingTokenSet) MarshalJSON() ([]byte, error) {
	type alias SpacingTokenSet
	return marshalNamed(Spacing, alias(t))
}

func (t TypographyTokenSet) MarshalJSON() ([]byte, error) {
	type alias TypographyTokenSet
	return marshalNamed(Typography, alias(t))
}

func (t EffectTokenSet) MarshalJSON() ([]byte, error) {
	type alias EffectTokenSet
	return marshalNamed(Effect, alias(t))
}

func (t OpacityTokenSet) MarshalJSON() ([]byte, error) {
	type alias OpacityTokenSet
	return marshalNamed(Opacity, alias(t))
}

func (t SizeTokenSet) MarshalJSON() ([]byte, error) {
	type alias SizeTokenSet
	return marshalNamed(Size, alias(t))
}

// marshalNamed encodes v (a struct without MarshalJSON) and prepends the name key.
func marshalNamed(c Category, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	name, _ := json.Marshal(c)

	out := make([]byte, 0, len(body)+len(name)+10)
	out = append(out, `{"name":`...)
	out = append(out, name...)
	if len(body) > 2 {
		out = append(out, ',')
	}
	out = append(out, body[1:]...)
	return out, nil
}

// Decode reads a token set encoded by MarshalJSON.
func Decode(data []byte) (TokenSet, error) {
	var head struct {
		Name Category `json:"name"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode token set: %w", err)
	}

	var (
		ts  TokenSet
		err error
	)
	switch head.Name {
	case Background:
		ts, err = decodeAs[BackgroundTokenSet](data)
	case Fill:
		ts, err = decodeAs[FillTokenSet](data)
	case Border:
		ts, err = decodeAs[BorderTokenSet](data)
	case Spacing:
		ts, err = decodeAs[SpacingTokenSet](data)
	case Typography:
		ts, err = decodeAs[TypographyTokenSet](data)
	case Effect:
		ts, err = decodeAs[EffectTokenSet](data)
	case Opacity:
		ts, err = decodeAs[OpacityTokenSet](data)
	case Size:
		ts, err = decodeAs[SizeTokenSet](data)
	default:
		return nil, fmt.Errorf("decode token set: unknown category %q", head.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s token set: %w", head.Name, err)
	}
	return ts, nil
}

func decodeAs[T TokenSet](data []byte) (TokenSet, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Parts maps part names to their token sets.
type Parts map[string][]TokenSet

// UnmarshalJSON decodes each token set by its "name" key.
func (p *Parts) UnmarshalJSON(data []byte) error {
	var raw map[string][]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Parts, len(raw))
	for part, items := range raw {
		sets := make([]TokenSet, 0, len(items))
		for _, item := range items {
			ts, err := Decode(item)
			if err != nil {
				return fmt.Errorf("part %q: %w", part, err)
			}
			sets = append(sets, ts)
		}
		out[part] = sets
	}
	*p = out
	return nil
}

// Clone returns a copy of p whose map and slices can be modified independently.
func (p Parts) Clone() Parts {
	if p == nil {
		return nil
	}
	out := make(Parts, len(p))
	for k, v := range p {
		out[k] = append([]TokenSet(nil), v...)
	}
	return out
}
