package svgfont

import (
	"image"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// refUnit is the length, in user units, of the reference vectors drawn to
// read back a path transform.
const refUnit = 1024

// fillTransform reports whether p is painted with a fill and returns the
// transform from the path's coordinates to icon user space, composed from
// the transform attributes of the path and every enclosing element.
//
// oksvg keeps that matrix private and applies it only while drawing, so a
// copy of p restricted to its fill draws the reference points (0,0), (u,0)
// and (0,u) into a recorder and the matrix is solved from where they land.
// No points are recorded when the fill is none.
func fillTransform(p *oksvg.SvgPath) (rasterx.Matrix2D, bool) {
	if p.FillOpacity <= 0 {
		return rasterx.Identity, false
	}

	ref := *p
	ref.SetLineColor(nil)
	ref.Path = nil
	ref.Path.Start(fixed.Point26_6{})
	ref.Path.Line(fixed.Point26_6{X: refUnit * 64})
	ref.Path.Line(fixed.Point26_6{Y: refUnit * 64})

	rec := &recorder{}
	ref.DrawTransformed(rasterx.NewDasher(0, 0, rec), 1, rasterx.Identity)
	if len(rec.pts) < 3 {
		return rasterx.Identity, false
	}

	o, x, y := rec.pts[0], rec.pts[1], rec.pts[2]
	const u = refUnit * 64
	return rasterx.Matrix2D{
		A: float64(x.X-o.X) / u,
		B: float64(x.Y-o.Y) / u,
		C: float64(y.X-o.X) / u,
		D: float64(y.Y-o.Y) / u,
		E: float64(o.X) / 64,
		F: float64(o.Y) / 64,
	}, true
}

// recorder is a rasterx.Scanner that keeps the points it is given and
// rasterizes nothing.
type recorder struct {
	pts []fixed.Point26_6
}

func (r *recorder) Start(a fixed.Point26_6) { r.pts = append(r.pts, a) }
func (r *recorder) Line(b fixed.Point26_6) { r.pts = append(r.pts, b) }
func (r *recorder) Clear() { r.pts = r.pts[:0] }

func (r *recorder) Draw() {}
func (r *recorder) SetBounds(w, h int) {}
func (r *recorder) SetColor(interface{}) {}
func (r *recorder) SetWinding(bool) {}
func (r *recorder) SetClip(image.Rectangle) {}

func (r *recorder) GetPathExtent() fixed.Rectangle26_6 {
	return fixed.Rectangle26_6{}
}
