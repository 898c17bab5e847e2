package tokens

// Merge combines two token sets of the same category field by field. A field
// the later set leaves unset (nil pointer, empty slice) keeps the earlier
// value; every other field takes the later value. Sets of different
// categories are not merged: later is returned as is.
func Merge(earlier, later TokenSet) TokenSet {
	if earlier == nil {
		return later
	}
	if later == nil {
		return earlier
	}
	if earlier.Category() != later.Category() {
		return later
	}

	switch e := earlier.(type) {
	case BackgroundTokenSet:
		l := later.(BackgroundTokenSet)
		return BackgroundTokenSet{Background: slice(e.Background, l.Background)}
	case FillTokenSet:
		l := later.(FillTokenSet)
		return FillTokenSet{Color: slice(e.Color, l.Color)}
	case BorderTokenSet:
		l := later.(BorderTokenSet)
		return BorderTokenSet{
			Weight:  l.Weight,
			Radius:  l.Radius,
			Strokes: slice(e.Strokes, l.Strokes),
		}
	case SpacingTokenSet:
		return later
	case TypographyTokenSet:
		l := later.(TypographyTokenSet)
		return TypographyTokenSet{
			FontFamily:          ptr(e.FontFamily, l.FontFamily),
			FontSize:            ptr(e.FontSize, l.FontSize),
			FontWeight:          ptr(e.FontWeight, l.FontWeight),
			LineHeight:          l.LineHeight,
			LetterSpacing:       ptr(e.LetterSpacing, l.LetterSpacing),
			TextAlignHorizontal: ptr(e.TextAlignHorizontal, l.TextAlignHorizontal),
			TextDecoration:      str(e.TextDecoration, l.TextDecoration),
			TextCase:            str(e.TextCase, l.TextCase),
			Characters:          ptr(e.Characters, l.Characters),
		}
	case EffectTokenSet:
		l := later.(EffectTokenSet)
		return EffectTokenSet{Effect: slice(e.Effect, l.Effect)}
	case OpacityTokenSet:
		return later
	case SizeTokenSet:
		return later
	}
	return later
}

func ptr[T any](earlier, later *T) *T {
	if later == nil {
		return earlier
	}
	return later
}

func slice[T any](earlier, later []T) []T {
	if len(later) == 0 {
		return earlier
	}
	return later
}

func str(earlier, later string) string {
	if later == "" {
		return earlier
	}
	return later
}
