// Package stylesheet renders the CSS that maps class names onto the glyphs
// of an icon font.
package stylesheet

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/conneroisu/iconfont/internal/glyph"
)

// Options describe the font the stylesheet refers to.
type Options struct {
	// FontFamily is the CSS family name declared by @font-face.
	FontFamily string
	// FontFile is the URL of the font, relative to the stylesheet.
	FontFile string
	// Format is the src format hint, "woff2" by default.
	Format string
	// Prefix starts every class name, "icon" by default.
	Prefix string
}

const cssTemplate = `@font-face {
	font-family: "{{css .FontFamily}}";
	src: url("{{css .FontFile}}") format("{{css .Format}}");
	font-weight: normal;
	font-style: normal;
}

[class^="{{.Prefix}}-"]:before, [class*=" {{.Prefix}}-"]:before {
	font-family: "{{css .FontFamily}}" !important;
	font-style: normal;
	font-weight: normal !important;
	font-variant: normal;
	text-transform: none;
	line-height: 1;
	-webkit-font-smoothing: antialiased;
	-moz-osx-font-smoothing: grayscale;
}
{{range .Glyphs}}
.{{$.Prefix}}-{{.Name}}:before { content: "\{{.Hex}}"; }
{{- end}}
`

var tmpl = template.Must(template.New("css").Funcs(template.FuncMap{
	"css": escapeString,
}).Parse(cssTemplate))

var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\a `)

// escapeString makes s safe inside a double quoted CSS string.
func escapeString(s string) string {
	return stringEscaper.Replace(s)
}

func (o Options) withDefaults() Options {
	if o.Format == "" {
		o.Format = "woff2"
	}
	if o.Prefix == "" {
		o.Prefix = "icon"
	}
	return o
}

// Emit writes the stylesheet for glyphs to w: an @font-face rule, a base
// rule shared by every icon class, and one rule per glyph in glyph order.
func Emit(w io.Writer, opts Options, glyphs []glyph.Glyph) error {
	opts = opts.withDefaults()
	if opts.FontFamily == "" {
		return fmt.Errorf("stylesheet: font family is required")
	}
	if opts.FontFile == "" {
		return fmt.Errorf("stylesheet: font file is required")
	}

	data := struct {
		Options
		Glyphs []glyph.Glyph
	}{opts, glyphs}

	return tmpl.Execute(w, data)
}

// Render returns the stylesheet as a string.
func Render(opts Options, glyphs []glyph.Glyph) (string, error) {
	var buf bytes.Buffer
	if err := Emit(&buf, opts, glyphs); err != nil {
		return "", err
	}
	return buf.String(), nil
}
