package transcode

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Font is the content of an SVG font document.
type Font struct {
	Family     string
	UnitsPerEm int
	Ascent     int
	// Descent is the depth below the baseline, as a non-negative number.
	Descent int
	Glyphs  []Glyph
}

// Glyph is one glyph element of an SVG font.
type Glyph struct {
	Name      string
	CodePoint rune
	Advance   float64
	Path      []Segment
}

// ParseSVGFont reads the first font element of an SVG document.
func ParseSVGFont(doc []byte) (*Font, error) {
	z := html.NewTokenizer(bytes.NewReader(doc))

	var (
		font       *Font
		defaultAdv float64
		inFont     bool
		done       bool
	)
	for !done {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				done = true
				break
			}
			return nil, fmt.Errorf("tokenize font document: %w", z.Err())

		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "font" && inFont {
				done = true
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			attrs := readAttrs(z, hasAttr)

			switch string(name) {
			case "font":
				if font != nil {
					continue
				}
				font = &Font{}
				inFont = true
				if v, ok := attrs["horiz-adv-x"]; ok {
					adv, err := parseNumber("horiz-adv-x", v)
					if err != nil {
						return nil, err
					}
					defaultAdv = adv
				}
			case "font-face":
				if !inFont {
					continue
				}
				if err := font.readFace(attrs); err != nil {
					return nil, err
				}
			case "glyph":
				if !inFont {
					continue
				}
				g, err := readGlyph(attrs, defaultAdv)
				if err != nil {
					return nil, err
				}
				font.Glyphs = append(font.Glyphs, *g)
			}
		}
	}

	if font == nil {
		return nil, fmt.Errorf("document has no font element")
	}
	if font.UnitsPerEm <= 0 {
		font.UnitsPerEm = 1000
	}
	if font.Ascent == 0 {
		font.Ascent = font.UnitsPerEm - font.Descent
	}
	for i := range font.Glyphs {
		if font.Glyphs[i].Advance < 0 {
			font.Glyphs[i].Advance = float64(font.UnitsPerEm)
		}
	}
	return font, nil
}

func readAttrs(z *html.Tokenizer, more bool) map[string]string {
	attrs := make(map[string]string)
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		attrs[string(key)] = string(val)
	}
	return attrs
}

func (f *Font) readFace(attrs map[string]string) error {
	f.Family = attrs["font-family"]

	for _, m := range []struct {
		attr string
		dst  *int
	}{
		{"units-per-em", &f.UnitsPerEm},
		{"ascent", &f.Ascent},
		{"descent", &f.Descent},
	} {
		v, ok := attrs[m.attr]
		if !ok {
			continue
		}
		n, err := parseNumber(m.attr, v)
		if err != nil {
			return err
		}
		*m.dst = int(math.Round(n))
	}

	// written as a negative coordinate by most producers
	if f.Descent < 0 {
		f.Descent = -f.Descent
	}
	return nil
}

// readGlyph converts a glyph element. A negative advance means "use the
// em size" and is resolved once the font face is known.
func readGlyph(attrs map[string]string, defaultAdv float64) (*Glyph, error) {
	g := &Glyph{Name: attrs["glyph-name"], Advance: -1}

	u := attrs["unicode"]
	r, size := utf8.DecodeRuneInString(u)
	if u == "" || size != len(u) || r == utf8.RuneError {
		return nil, fmt.Errorf("glyph %q: unicode %q is not a single code point", g.Name, u)
	}
	g.CodePoint = r

	if v, ok := attrs["horiz-adv-x"]; ok {
		adv, err := parseNumber("horiz-adv-x", v)
		if err != nil {
			return nil, fmt.Errorf("glyph %q: %w", g.Name, err)
		}
		g.Advance = adv
	} else if defaultAdv > 0 {
		g.Advance = defaultAdv
	}

	path, err := ParsePath(attrs["d"])
	if err != nil {
		return nil, fmt.Errorf("glyph %q: %w", g.Name, err)
	}
	g.Path = path
	return g, nil
}

func parseNumber(attr, v string) (float64, error) {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("attribute %s: %w", attr, err)
	}
	return n, nil
}
