package svgfont

import (
	"bytes"
	"math"
	"strconv"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Outline is a single glyph outline in font units.
type Outline struct {
	// Path is SVG path data using absolute M, L, Q, C and Z commands only.
	Path string
	// Advance is the horizontal advance width.
	Advance int
}

// box is the user space area of an icon that is mapped onto the em square.
type box struct {
	X, Y, W, H float64
}

// parseOutline reads an SVG icon and converts every path it contains to
// font coordinates: scaled so that the box height is emHeight, y pointing
// up and the bottom edge of the box at -descent.
func parseOutline(content []byte, emHeight, descent int) (*Outline, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(content), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}

	vb := box{X: icon.ViewBox.X, Y: icon.ViewBox.Y, W: icon.ViewBox.W, H: icon.ViewBox.H}
	if vb.W <= 0 || vb.H <= 0 {
		vb = box{W: float64(emHeight), H: float64(emHeight)}
	}

	pen := &pathWriter{
		box:     vb,
		scale:   float64(emHeight) / vb.H,
		descent: float64(descent),
	}
	for i := range icon.SVGPaths {
		p := &icon.SVGPaths[i]
		m, filled := fillTransform(p)
		if !filled {
			// fill="none" boxes and stroke-only paths paint no glyph area
			continue
		}
		p.Path.AddTo(&rasterx.MatrixAdder{Adder: pen, M: m})
	}

	return &Outline{
		Path:    pen.buf.String(),
		Advance: int(math.Round(vb.W * pen.scale)),
	}, nil
}

// pathWriter implements rasterx.Adder and writes normalized path data.
type pathWriter struct {
	box     box
	scale   float64
	descent float64

	buf      bytes.Buffer
	open     bool
	hasStart bool
	start    fixed.Point26_6
}

func (w *pathWriter) Start(a fixed.Point26_6) {
	w.start = a
	w.hasStart = true
	w.open = true
	w.cmd('M', a)
}

func (w *pathWriter) Line(b fixed.Point26_6) {
	w.reopen()
	w.cmd('L', b)
}

func (w *pathWriter) QuadBezier(b, c fixed.Point26_6) {
	w.reopen()
	w.cmd('Q', b, c)
}

func (w *pathWriter) CubeBezier(b, c, d fixed.Point26_6) {
	w.reopen()
	w.cmd('C', b, c, d)
}

// Stop closes the current subpath. Font contours are always closed, so an
// open subpath is closed as well.
func (w *pathWriter) Stop(closeLoop bool) {
	if !w.open {
		return
	}
	w.buf.WriteByte('Z')
	w.open = false
}

// reopen starts a new subpath at the start of the previous one when drawing
// continues after a close without a move.
func (w *pathWriter) reopen() {
	if w.open || !w.hasStart {
		return
	}
	w.open = true
	w.cmd('M', w.start)
}

func (w *pathWriter) cmd(c byte, pts ...fixed.Point26_6) {
	w.buf.WriteByte(c)
	for i, p := range pts {
		if i > 0 {
			w.buf.WriteByte(' ')
		}
		x, y := w.transform(p)
		w.buf.WriteString(formatCoord(x))
		w.buf.WriteByte(' ')
		w.buf.WriteString(formatCoord(y))
	}
}

func (w *pathWriter) transform(p fixed.Point26_6) (float64, float64) {
	x := float64(p.X) / 64
	y := float64(p.Y) / 64
	return (x - w.box.X) * w.scale, (w.box.Y+w.box.H-y)*w.scale - w.descent
}

// formatCoord rounds to two decimals and drops trailing zeros.
func formatCoord(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // no "-0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
