package imager

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// svgSize reads the intrinsic size of an SVG document from the width and
// height attributes of its root element, falling back to the viewBox.
func svgSize(data []byte) (width, height float64, ok bool) {
	z := html.NewTokenizer(bytes.NewReader(data))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return 0, 0, false
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data != "svg" {
				return 0, 0, false
			}
			return rootSize(tok.Attr)
		}
	}
}

func rootSize(attrs []html.Attribute) (float64, float64, bool) {
	var (
		w, h     float64
		wOK, hOK bool
		viewBox  string
	)
	for _, a := range attrs {
		switch strings.ToLower(a.Key) {
		case "width":
			w, wOK = length(a.Val)
		case "height":
			h, hOK = length(a.Val)
		case "viewbox":
			viewBox = a.Val
		}
	}
	if wOK && hOK {
		return w, h, true
	}

	f := strings.FieldsFunc(viewBox, func(r rune) bool { return r == ' ' || r == ',' })
	if len(f) != 4 {
		return 0, 0, false
	}
	vw, err1 := strconv.ParseFloat(f[2], 64)
	vh, err2 := strconv.ParseFloat(f[3], 64)
	if err1 != nil || err2 != nil || vw <= 0 || vh <= 0 {
		return 0, 0, false
	}
	return vw, vh, true
}

// length parses a user-unit or px length. Relative units are not sizes.
func length(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
