package renderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	svg "github.com/lafriks/go-svg"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"cogentcore.org/mousegen/internal/config"
	"cogentcore.org/mousegen/internal/svgdom"
)

// SVGBackend is a deterministic Backend implementation grounded on
// github.com/lafriks/go-svg's path/style model. It fills flattened
// path geometry with a scanline even-odd rasterizer instead of
// delegating to a GPU or platform rendering engine, which keeps the
// pipeline runnable and byte-stable without an external renderer
// dependency. It does not evaluate SMIL/CSS animation; RenderAnimation
// falls back to a single t=0 sample as spec §4.9 requires for backends
// without animation support.
type SVGBackend struct {
	docBytes []byte
}

// NewSVGBackend returns an empty backend; call SetDocument before
// rendering.
func NewSVGBackend() *SVGBackend {
	return &SVGBackend{}
}

// SetDocument serializes dom so later render calls re-parse a fresh,
// independent copy; the backend never retains dom itself. A document
// that fails to serialize leaves the backend empty, so the next render
// call returns an error.
func (b *SVGBackend) SetDocument(dom *svgdom.Document) {
	data, err := dom.Bytes()
	if err != nil {
		b.docBytes = nil
		return
	}
	b.docBytes = data
}

// ResetView clears the stored document.
func (b *SVGBackend) ResetView() {
	b.docBytes = nil
}

// RenderStatic parses the current document and fills every path into
// a width x height canvas, scaling from the parsed viewBox to the
// target pixel size.
func (b *SVGBackend) RenderStatic(width, height int) (*image.RGBA, error) {
	if b.docBytes == nil {
		return nil, fmt.Errorf("renderer: SetDocument not called")
	}
	parsed, err := svg.Parse(bytes.NewReader(b.docBytes), svg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("renderer: parse: %w", err)
	}
	return rasterize(parsed, width, height), nil
}

// RenderAnimation always falls back to a single static sample, since
// the scanline test double has no SMIL/CSS animation clock.
func (b *SVGBackend) RenderAnimation(width, height int, anim config.Animation, onFrame func(int, *image.RGBA) error) error {
	warnSingleFrameFallback(anim)
	raster, err := b.RenderStatic(width, height)
	if err != nil {
		return err
	}
	return onFrame(1, raster)
}

func rasterize(parsed *svg.Svg, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	vb := parsed.ViewBox
	vw, vh := vb.W, vb.H
	if vw <= 0 {
		vw = float64(width)
	}
	if vh <= 0 {
		vh = float64(height)
	}
	sx, sy := float64(width)/vw, float64(height)/vh

	for _, p := range parsed.SvgPaths {
		col, opacity, ok := fillColor(p)
		if !ok {
			continue
		}
		poly := flatten(p, sx, sy, -vb.X*sx, -vb.Y*sy)
		fillPolygon(img, poly, col, opacity)
	}
	return img
}

// fillColor extracts the plain fill color and opacity of a path, or
// ok=false if it has no solid fill (e.g. gradients, which this test
// double does not evaluate).
func fillColor(p svg.SvgPath) (color.NRGBA, float64, bool) {
	if p.Style.FillerColor == nil || p.Style.FillOpacity == 0 {
		return color.NRGBA{}, 0, false
	}
	pc, ok := p.Style.FillerColor.(svg.PlainColor)
	if !ok {
		return color.NRGBA{}, 0, false
	}
	return color.NRGBA{R: pc.R, G: pc.G, B: pc.B, A: pc.A}, p.Style.FillOpacity, true
}

type point struct{ X, Y float64 }

// flatten converts a path's operations into one or more closed
// polygons in target-pixel space, subdividing curves into line
// segments. Subpaths are concatenated with a sentinel NaN point so
// fillPolygon can treat them as a single even-odd ruleset.
func flatten(p svg.SvgPath, sx, sy, ox, oy float64) []point {
	tr := p.Style.Transform
	apply := func(x, y float64) point {
		tx := tr.A*x + tr.C*y + tr.E
		ty := tr.B*x + tr.D*y + tr.F
		return point{tx*sx + ox, ty*sy + oy}
	}

	var pts []point
	var cur point
	const curveSteps = 12
	for _, op := range p.Path {
		switch v := op.(type) {
		case svg.OpMoveTo:
			cur = apply(f26(v.X), f26(v.Y))
			pts = append(pts, cur)
		case svg.OpLineTo:
			cur = apply(f26(v.X), f26(v.Y))
			pts = append(pts, cur)
		case svg.OpQuadTo:
			p0, p1, p2 := cur, apply(f26(v[0].X), f26(v[0].Y)), apply(f26(v[1].X), f26(v[1].Y))
			for i := 1; i <= curveSteps; i++ {
				t := float64(i) / curveSteps
				pts = append(pts, quadAt(p0, p1, p2, t))
			}
			cur = p2
		case svg.OpCubicTo:
			p0 := cur
			p1, p2, p3 := apply(f26(v[0].X), f26(v[0].Y)), apply(f26(v[1].X), f26(v[1].Y)), apply(f26(v[2].X), f26(v[2].Y))
			for i := 1; i <= curveSteps; i++ {
				t := float64(i) / curveSteps
				pts = append(pts, cubicAt(p0, p1, p2, p3, t))
			}
			cur = p3
		case svg.OpClose:
			pts = append(pts, point{math.NaN(), math.NaN()})
		}
	}
	return pts
}

func f26(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func quadAt(p0, p1, p2 point, t float64) point {
	u := 1 - t
	x := u*u*p0.X + 2*u*t*p1.X + t*t*p2.X
	y := u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y
	return point{x, y}
}

func cubicAt(p0, p1, p2, p3 point, t float64) point {
	u := 1 - t
	x := u*u*u*p0.X + 3*u*u*t*p1.X + 3*u*t*t*p2.X + t*t*t*p3.X
	y := u*u*u*p0.Y + 3*u*u*t*p1.Y + 3*u*t*t*p2.Y + t*t*t*p3.Y
	return point{x, y}
}

// fillPolygon fills pts (subpaths separated by NaN sentinels) into
// dst using an even-odd scanline rule, alpha-compositing col·opacity
// on top of the existing (already premultiplied) contents.
func fillPolygon(dst *image.RGBA, pts []point, col color.NRGBA, opacity float64) {
	if len(pts) == 0 {
		return
	}
	bounds := dst.Bounds()
	src := image.NewUniform(color.NRGBA{R: col.R, G: col.G, B: col.B, A: uint8(float64(col.A) * opacity)})

	var subpaths [][]point
	var cur []point
	for _, p := range pts {
		if math.IsNaN(p.X) {
			if len(cur) > 1 {
				subpaths = append(subpaths, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, p)
	}
	if len(cur) > 1 {
		subpaths = append(subpaths, cur)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		yf := float64(y) + 0.5
		var xs []float64
		for _, sp := range subpaths {
			n := len(sp)
			for i := 0; i < n; i++ {
				a, b := sp[i], sp[(i+1)%n]
				if (a.Y <= yf && b.Y > yf) || (b.Y <= yf && a.Y > yf) {
					t := (yf - a.Y) / (b.Y - a.Y)
					xs = append(xs, a.X+t*(b.X-a.X))
				}
			}
		}
		if len(xs) < 2 {
			continue
		}
		sortFloats(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0, x1 := int(math.Round(xs[i])), int(math.Round(xs[i+1]))
			if x0 < bounds.Min.X {
				x0 = bounds.Min.X
			}
			if x1 > bounds.Max.X {
				x1 = bounds.Max.X
			}
			if x0 >= x1 {
				continue
			}
			row := image.Rect(x0, y, x1, y+1)
			draw.Draw(dst, row, src, image.Point{}, draw.Over)
		}
	}
}

func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
