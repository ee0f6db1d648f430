package stylesheet

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/iconfont/internal/glyph"
)

func sampleGlyphs(names ...string) []glyph.Glyph {
	glyphs := make([]glyph.Glyph, len(names))
	for i, name := range names {
		glyphs[i] = glyph.Glyph{Name: name, CodePoint: glyph.CodePoint(i)}
	}
	return glyphs
}

func TestRender(t *testing.T) {
	css, err := Render(Options{FontFamily: "icons", FontFile: "icons.woff2"}, sampleGlyphs("a", "b", "c-1"))
	require.NoError(t, err)

	assert.Contains(t, css, `font-family: "icons";`)
	assert.Contains(t, css, `src: url("icons.woff2") format("woff2");`)
	assert.Contains(t, css, `[class^="icon-"]:before, [class*=" icon-"]:before {`)
	assert.Contains(t, css, `font-family: "icons" !important;`)
	assert.Contains(t, css, `-moz-osx-font-smoothing: grayscale;`)

	assert.Contains(t, css, `.icon-a:before { content: "\e000"; }`)
	assert.Contains(t, css, `.icon-b:before { content: "\e001"; }`)
	assert.Contains(t, css, `.icon-c-1:before { content: "\e002"; }`)
	assert.True(t, strings.HasSuffix(css, "}\n"))
}

func TestRuleCountAndOrder(t *testing.T) {
	names := []string{"zeta", "alpha", "mid", "alpha-2"}
	css, err := Render(Options{FontFamily: "icons", FontFile: "icons.woff2", Prefix: "ic"}, sampleGlyphs(names...))
	require.NoError(t, err)

	rule := regexp.MustCompile(`(?m)^\.ic-([A-Za-z0-9-]+):before \{ content: "\\([0-9a-f]+)"; \}$`)
	matches := rule.FindAllStringSubmatch(css, -1)
	require.Len(t, matches, len(names))
	for i, m := range matches {
		assert.Equal(t, names[i], m[1])
		assert.Equal(t, glyph.CodePoint(i), rune(mustHex(t, m[2])))
	}
}

func TestRenderEmpty(t *testing.T) {
	css, err := Render(Options{FontFamily: "icons", FontFile: "icons.woff2"}, nil)
	require.NoError(t, err)
	assert.Contains(t, css, "@font-face")
	assert.NotContains(t, css, "content:")
}

func TestRenderEscapesStrings(t *testing.T) {
	css, err := Render(Options{FontFamily: `my "icons"`, FontFile: `a\b.woff2`}, nil)
	require.NoError(t, err)
	assert.Contains(t, css, `font-family: "my \"icons\"";`)
	assert.Contains(t, css, `url("a\\b.woff2")`)
}

func TestRenderRequiresFont(t *testing.T) {
	_, err := Render(Options{FontFile: "icons.woff2"}, nil)
	assert.Error(t, err)

	_, err = Render(Options{FontFamily: "icons"}, nil)
	assert.Error(t, err)
}

func mustHex(t *testing.T, s string) int64 {
	t.Helper()
	v, err := strconv.ParseInt(s, 16, 32)
	require.NoError(t, err)
	return v
}
