package svgfont

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/iconfont/internal/collector"
	"github.com/conneroisu/iconfont/internal/errors"
	"github.com/conneroisu/iconfont/internal/glyph"
)

const triangle = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><path d="M0 0L10 0L10 10Z"/></svg>`

func makeGlyphs(t *testing.T, contents ...string) []glyph.Glyph {
	t.Helper()

	icons := make([]*collector.SourceIcon, len(contents))
	for i, c := range contents {
		icons[i] = &collector.SourceIcon{
			Path:    string(rune('a'+i)) + ".svg",
			Size:    int64(len(c)),
			Content: []byte(c),
		}
	}
	glyphs, err := glyph.Assign(icons, glyph.CollisionSuffix)
	require.NoError(t, err)
	return glyphs
}

func TestAssemble(t *testing.T) {
	glyphs := makeGlyphs(t, triangle, triangle)

	doc, err := NewAssembler("icons", nil).Assemble(context.Background(), glyphs)
	require.NoError(t, err)

	out := string(doc)
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `<font id="icons" horiz-adv-x="1000">`)
	assert.Contains(t, out, `<font-face font-family="icons" units-per-em="1000" ascent="1000" descent="0" />`)
	assert.Contains(t, out, `<missing-glyph horiz-adv-x="0" />`)
	assert.Contains(t, out, `<glyph glyph-name="a" unicode="&#xe000;" horiz-adv-x="1000" d="M0 1000L1000 1000L1000 0Z" />`)
	assert.Contains(t, out, `<glyph glyph-name="b" unicode="&#xe001;"`)
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
	assert.Less(t, strings.Index(out, `glyph-name="a"`), strings.Index(out, `glyph-name="b"`))
}

func TestAssembleDescentAndAspect(t *testing.T) {
	wide := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 10"><path d="M0 10L20 10L20 0Z"/></svg>`

	a := &Assembler{FontName: "icons", EmHeight: 1000, Descent: 200}
	doc, err := a.Assemble(context.Background(), makeGlyphs(t, wide))
	require.NoError(t, err)

	out := string(doc)
	assert.Contains(t, out, `ascent="800" descent="-200"`)
	assert.Contains(t, out, `horiz-adv-x="2000" d="M0 -200L2000 -200L2000 800Z"`)
}

func TestAssembleViewBoxOffset(t *testing.T) {
	shifted := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="5 5 10 10"><path d="M5 15L15 15L15 5Z"/></svg>`

	doc, err := NewAssembler("icons", nil).Assemble(context.Background(), makeGlyphs(t, shifted))
	require.NoError(t, err)
	assert.Contains(t, string(doc), `d="M0 0L1000 0L1000 1000Z"`)
}

func TestAssembleParseFailure(t *testing.T) {
	glyphs := makeGlyphs(t, triangle, `<svg><path d="M0 0`)

	doc, err := NewAssembler("icons", nil).Assemble(context.Background(), glyphs)
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.True(t, errors.IsAssemblyError(err))
}

func TestAssembleInvalidDescent(t *testing.T) {
	a := &Assembler{FontName: "icons", EmHeight: 1000, Descent: 1000}
	_, err := a.Assemble(context.Background(), makeGlyphs(t, triangle))
	assert.True(t, errors.IsAssemblyError(err))
}

func TestStreamEndsWithSingleDone(t *testing.T) {
	events := NewAssembler("icons", nil).Stream(context.Background(), makeGlyphs(t, triangle, triangle, triangle))

	var chunks, done int
	for ev := range events {
		require.NoError(t, ev.Err)
		if ev.Done {
			done++
			continue
		}
		assert.Zero(t, done, "data after completion")
		chunks++
	}
	assert.Equal(t, 1, done)
	// prologue, header, three glyphs, closing tags
	assert.Equal(t, 6, chunks)
}

func TestStreamCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	events := NewAssembler("icons", nil).Stream(ctx, makeGlyphs(t, triangle))
	<-events
	cancel()

	_, err := Collect(events)
	assert.Error(t, err)
}

func TestCollect(t *testing.T) {
	t.Run("completed", func(t *testing.T) {
		events := make(chan Event, 3)
		events <- Event{Data: []byte("ab")}
		events <- Event{Data: []byte("c")}
		events <- Event{Done: true}
		close(events)

		doc, err := Collect(events)
		require.NoError(t, err)
		assert.Equal(t, "abc", string(doc))
	})

	t.Run("closed without completion", func(t *testing.T) {
		events := make(chan Event, 1)
		events <- Event{Data: []byte("ab")}
		close(events)

		doc, err := Collect(events)
		assert.Nil(t, doc)
		assert.True(t, errors.IsAssemblyError(err))
	})

	t.Run("error event", func(t *testing.T) {
		events := make(chan Event, 2)
		events <- Event{Data: []byte("ab")}
		events <- Event{Err: errors.NewAssemblyError("", "boom", nil)}
		close(events)

		doc, err := Collect(events)
		assert.Nil(t, doc)
		assert.Error(t, err)
	})
}
