// Package svgfont merges a set of glyphs into one SVG font document.
//
// The document is produced incrementally: Stream emits it as an ordered
// sequence of byte chunks followed by a single completion event, and
// Collect hands out the complete buffer only once completion was signalled.
package svgfont

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"golang.org/x/net/html"

	"github.com/conneroisu/iconfont/internal/errors"
	"github.com/conneroisu/iconfont/internal/glyph"
	"github.com/conneroisu/iconfont/internal/logging"
)

// DefaultEmHeight is the em square size in font units.
const DefaultEmHeight = 1000

// Event is one step of a document stream. Exactly one of Data, Done and
// Err is meaningful.
type Event struct {
	Data []byte
	Done bool
	Err  error
}

// Assembler builds SVG font documents.
type Assembler struct {
	FontName string
	EmHeight int
	Descent  int
	Logger   logging.Logger
}

// NewAssembler returns an assembler with the default em metrics.
func NewAssembler(fontName string, logger logging.Logger) *Assembler {
	return &Assembler{
		FontName: fontName,
		EmHeight: DefaultEmHeight,
		Logger:   logger,
	}
}

func (a *Assembler) emHeight() int {
	if a.EmHeight <= 0 {
		return DefaultEmHeight
	}
	return a.EmHeight
}

func (a *Assembler) logger() logging.Logger {
	if a.Logger == nil {
		return logging.NewNopLogger()
	}
	return a.Logger
}

// Assemble builds the whole document for glyphs.
func (a *Assembler) Assemble(ctx context.Context, glyphs []glyph.Glyph) ([]byte, error) {
	return Collect(a.Stream(ctx, glyphs))
}

// Stream starts producing the document for glyphs in a new goroutine.
//
// The returned channel yields data chunks in document order and then
// exactly one terminal event, Done or Err, before it is closed. If ctx is
// canceled the channel is closed without a terminal event.
func (a *Assembler) Stream(ctx context.Context, glyphs []glyph.Glyph) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)

		send := func(ev Event) bool {
			select {
			case events <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}

		err := a.produce(ctx, glyphs, func(chunk []byte) bool {
			return send(Event{Data: chunk})
		})
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			send(Event{Err: err})
			return
		}
		send(Event{Done: true})
	}()

	return events
}

// produce writes the document chunk by chunk. emit returns false when the
// consumer went away.
func (a *Assembler) produce(ctx context.Context, glyphs []glyph.Glyph, emit func([]byte) bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewAssemblyError("", "internal failure while assembling font", fmt.Errorf("%v", r))
		}
	}()

	em := a.emHeight()
	if a.Descent < 0 || a.Descent >= em {
		return errors.NewAssemblyError("", fmt.Sprintf("descent %d outside [0, %d)", a.Descent, em), nil)
	}
	family := html.EscapeString(a.FontName)

	if !emit([]byte(`<?xml version="1.0" standalone="no"?>` + "\n" +
		`<svg xmlns="http://www.w3.org/2000/svg">` + "\n<defs>\n")) {
		return nil
	}

	var head bytes.Buffer
	fmt.Fprintf(&head, "<font id=\"%s\" horiz-adv-x=\"%d\">\n", family, em)
	fmt.Fprintf(&head, "<font-face font-family=\"%s\" units-per-em=\"%d\" ascent=\"%d\" descent=\"%d\" />\n",
		family, em, em-a.Descent, -a.Descent)
	head.WriteString("<missing-glyph horiz-adv-x=\"0\" />\n")
	if !emit(head.Bytes()) {
		return nil
	}

	log := a.logger()
	for _, g := range glyphs {
		if ctx.Err() != nil {
			return nil
		}

		chunk, err := a.glyphElement(g, em)
		if err != nil {
			return err
		}
		log.Debug(ctx, "Glyph assembled", "glyph", g.Name, "codepoint", g.Hex())
		if !emit(chunk) {
			return nil
		}
	}

	emit([]byte("</font>\n</defs>\n</svg>\n"))
	return nil
}

func (a *Assembler) glyphElement(g glyph.Glyph, em int) ([]byte, error) {
	if g.Source == nil {
		return nil, errors.NewAssemblyError("", fmt.Sprintf("glyph %q has no source icon", g.Name), nil)
	}

	outline, err := parseOutline(g.Source.Content, em, a.Descent)
	if err != nil {
		return nil, errors.NewAssemblyError("", "failed to parse icon", err).
			WithFile(g.Source.Path).
			WithContext("glyph", g.Name)
	}

	var buf bytes.Buffer
	buf.WriteString(`<glyph glyph-name="`)
	buf.WriteString(html.EscapeString(g.Name))
	buf.WriteString(`" unicode="&#x`)
	buf.WriteString(strconv.FormatInt(int64(g.CodePoint), 16))
	buf.WriteString(`;" horiz-adv-x="`)
	buf.WriteString(strconv.Itoa(outline.Advance))
	buf.WriteString(`" d="`)
	buf.WriteString(outline.Path)
	buf.WriteString("\" />\n")
	return buf.Bytes(), nil
}

// Collect drains events and returns the document once the completion
// event arrived. An error event, or a channel that closes before
// completion, yields an assembly error and no document.
func Collect(events <-chan Event) ([]byte, error) {
	var buf bytes.Buffer
	for ev := range events {
		switch {
		case ev.Err != nil:
			for range events {
			}
			return nil, ev.Err
		case ev.Done:
			return buf.Bytes(), nil
		default:
			buf.Write(ev.Data)
		}
	}
	return nil, errors.NewAssemblyError("", "font stream ended before completion", nil)
}
