package transcode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	xsfnt "golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/sfnt"
)

func TestToOpenType(t *testing.T) {
	otf, err := ToOpenType([]byte(sampleDoc))
	require.NoError(t, err)
	assert.Equal(t, []byte("OTTO"), otf[:4])

	f, err := xsfnt.Parse(otf)
	require.NoError(t, err)
	assert.Equal(t, 4, f.NumGlyphs())
	assert.Equal(t, xsfnt.Units(1000), f.UnitsPerEm())

	var b xsfnt.Buffer
	for i, r := range []rune{0xE000, 0xE001, 0xE002} {
		gid, err := f.GlyphIndex(&b, r)
		require.NoError(t, err)
		assert.Equal(t, xsfnt.GlyphIndex(i+1), gid, "code point %x", r)
	}

	gid, err := f.GlyphIndex(&b, 0xE003)
	require.NoError(t, err)
	assert.Zero(t, gid)

	adv, err := f.GlyphAdvance(&b, 2, fixed.I(1000), font.HintingNone)
	require.NoError(t, err)
	assert.Equal(t, fixed.I(500), adv)

	segs, err := f.LoadGlyph(&b, 1, fixed.I(1000), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, segs)

	family, err := f.Name(&b, xsfnt.NameIDFamily)
	require.NoError(t, err)
	assert.Equal(t, "Icons", family)
}

func TestToOpenTypeDeterministic(t *testing.T) {
	first, err := ToOpenType([]byte(sampleDoc))
	require.NoError(t, err)
	second, err := ToOpenType([]byte(sampleDoc))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestToOpenTypeReadBack(t *testing.T) {
	otf, err := ToOpenType([]byte(sampleDoc))
	require.NoError(t, err)

	info, err := sfnt.Read(bytes.NewReader(otf))
	require.NoError(t, err)
	assert.True(t, info.IsCFF())
	assert.Equal(t, "Icons", info.FamilyName)
	assert.Equal(t, 4, info.NumGlyphs())
	assert.Equal(t, uint16(1000), info.UnitsPerEm)
}

func TestEncodeOpenTypeErrors(t *testing.T) {
	testCases := []struct {
		name string
		font *Font
	}{
		{"no family", &Font{UnitsPerEm: 1000}},
		{"bad em", &Font{Family: "x", UnitsPerEm: 1}},
		{"outside BMP", &Font{Family: "x", UnitsPerEm: 1000, Glyphs: []Glyph{{CodePoint: 0x1F600}}}},
		{"duplicate code point", &Font{Family: "x", UnitsPerEm: 1000, Glyphs: []Glyph{{CodePoint: 0xE000}, {CodePoint: 0xE000}}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EncodeOpenType(tc.font)
			assert.Error(t, err)
		})
	}
}

func TestPostScriptName(t *testing.T) {
	assert.Equal(t, "uniE000", postScriptName(0xE000))
	assert.Equal(t, "uni0041", postScriptName('A'))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Icons", displayName("icons"))
	assert.Equal(t, "Brand Icons", displayName("brand-icons"))
	assert.Equal(t, "My Set", displayName("my_set"))
}
