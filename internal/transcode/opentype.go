package transcode

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/postscript/type1"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/os2"
)

// timestamp is stored as creation and modification time so that equal
// input always gives equal output.
var timestamp = time.Unix(0, 0).UTC()

// ToOpenType converts an SVG font document to a CFF-flavoured OpenType font.
func ToOpenType(doc []byte) ([]byte, error) {
	f, err := ParseSVGFont(doc)
	if err != nil {
		return nil, err
	}
	return EncodeOpenType(f)
}

// EncodeOpenType writes f as an OpenType font with CFF outlines. Glyph 0
// is an empty .notdef, followed by the glyphs of f in order.
func EncodeOpenType(f *Font) ([]byte, error) {
	if f.Family == "" {
		return nil, fmt.Errorf("font has no family name")
	}
	if f.UnitsPerEm < 16 || f.UnitsPerEm > 16384 {
		return nil, fmt.Errorf("units per em %d out of range", f.UnitsPerEm)
	}

	glyphs := make([]*cff.Glyph, 0, len(f.Glyphs)+1)
	glyphs = append(glyphs, cff.NewGlyph(".notdef", 0))

	subtable := cmap.Format4{}
	for i, g := range f.Glyphs {
		if g.CodePoint > 0xFFFF {
			return nil, fmt.Errorf("glyph %q: code point U+%X outside the BMP", g.Name, g.CodePoint)
		}
		code := uint16(g.CodePoint)
		if _, dup := subtable[code]; dup {
			return nil, fmt.Errorf("glyph %q: code point U+%04X assigned twice", g.Name, g.CodePoint)
		}

		cg := cff.NewGlyph(postScriptName(g.CodePoint), math.Round(g.Advance))
		drawOutline(cg, g.Path)
		glyphs = append(glyphs, cg)
		subtable[code] = glyph.ID(i + 1)
	}

	outlines := &cff.Outlines{
		Glyphs: glyphs,
		Private: []*type1.PrivateDict{
			{
				BlueScale: 0.039625,
				BlueShift: 7,
				BlueFuzz:  1,
			},
		},
		FDSelect: func(glyph.ID) int { return 0 },
		Encoding: cff.StandardEncoding(glyphs),
	}

	encoded := subtable.Encode(0)
	q := 1 / float64(f.UnitsPerEm)
	info := &sfnt.Font{
		FamilyName: displayName(f.Family),
		Width:      os2.WidthNormal,
		Weight:     os2.WeightNormal,
		IsRegular:  true,

		Version:          0x00010000,
		CreationTime:     timestamp,
		ModificationTime: timestamp,
		PermUse:          os2.PermInstall,

		UnitsPerEm: uint16(f.UnitsPerEm),
		FontMatrix: matrix.Matrix{q, 0, 0, q, 0, 0},

		Ascent:    funit.Int16(f.Ascent),
		Descent:   funit.Int16(-f.Descent),
		CapHeight: funit.Int16(f.Ascent),

		Outlines: outlines,
		CMapTable: cmap.Table{
			{PlatformID: 3, EncodingID: 1}: encoded,
			{PlatformID: 0, EncodingID: 3}: encoded,
		},
	}

	var buf bytes.Buffer
	if _, err := info.Write(&buf); err != nil {
		return nil, fmt.Errorf("write OpenType font: %w", err)
	}
	return buf.Bytes(), nil
}

// drawOutline appends path to g, rounding to integer font units. CFF
// contours close implicitly and have no quadratic segments.
func drawOutline(g *cff.Glyph, path []Segment) {
	var cur, start Point
	for _, seg := range path {
		switch seg.Op {
		case OpMove:
			cur = round(seg.Pts[0])
			start = cur
			g.MoveTo(cur.X, cur.Y)
		case OpLine:
			cur = round(seg.Pts[0])
			g.LineTo(cur.X, cur.Y)
		case OpQuad:
			ctrl, end := seg.Pts[0], seg.Pts[1]
			c1 := round(Point{cur.X + 2*(ctrl.X-cur.X)/3, cur.Y + 2*(ctrl.Y-cur.Y)/3})
			c2 := round(Point{end.X + 2*(ctrl.X-end.X)/3, end.Y + 2*(ctrl.Y-end.Y)/3})
			cur = round(end)
			g.CurveTo(c1.X, c1.Y, c2.X, c2.Y, cur.X, cur.Y)
		case OpCube:
			c1, c2 := round(seg.Pts[0]), round(seg.Pts[1])
			cur = round(seg.Pts[2])
			g.CurveTo(c1.X, c1.Y, c2.X, c2.Y, cur.X, cur.Y)
		case OpClose:
			cur = start
		}
	}
}

func round(p Point) Point {
	return Point{X: math.Round(p.X), Y: math.Round(p.Y)}
}

// postScriptName returns the AGL name for a BMP code point, e.g. "uniE000".
func postScriptName(r rune) string {
	hex := strings.ToUpper(strconv.FormatInt(int64(r), 16))
	return "uni" + strings.Repeat("0", 4-len(hex)) + hex
}

// displayName turns a file-style font name such as "brand-icons" into the
// family name stored in the font, "Brand Icons".
func displayName(name string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(words)
}
