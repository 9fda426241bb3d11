// Package svgxform implements SVGTransform (spec §4.2): color
// substitution, stroke-width adjustment with fill compensation, and
// optional drop-shadow wrapping, applied to a cloned working copy of
// the source SVG DOM for one (theme, resolution) combination.
package svgxform

import (
	"fmt"
	"math"
	"strconv"

	"cogentcore.org/mousegen/internal/svgdom"
)

// Shadow configures a drop shadow (spec §4.2 "Drop shadow").
type Shadow struct {
	Blur, DX, DY, Opacity float64
	Color                 string
}

// Config is one variant's transform configuration.
type Config struct {
	// Palette maps match hex literals to replacement hex literals
	// (spec's ThemeConfig color palette).
	Palette map[string]string

	// StrokeWidth is the configured w. Zero means "not configured":
	// stroke-width adjustment is skipped entirely.
	StrokeWidth float64
	// BaseStrokeWidth is B, the stroke width the source art was drawn
	// at.
	BaseStrokeWidth float64
	// ExpandFillLimit is L: when > 0 and w < B, thinning is converted
	// to fill expansion up to this visual limit instead.
	ExpandFillLimit float64
	// MinStrokeWidthRatio is m: if > 0, bumps the rendered stroke up
	// to sourceCanvas*m/targetSize pixels when it would render
	// thinner than that.
	MinStrokeWidthRatio float64
	// WholePixelStroke rounds the effective pixel stroke to the
	// nearest integer with a 0.25 bias before converting back to
	// source units.
	WholePixelStroke bool

	Shadow *Shadow
	// ShadowAsFilter selects the SVG-native filter path. When false
	// and Shadow is set, the caller is expected to apply the shadow
	// post-raster instead (spec §4.9); Apply does nothing for the
	// shadow in that case.
	ShadowAsFilter bool
}

// StrokeAdjustment is the result of §4.2's stroke-width computation.
type StrokeAdjustment struct {
	StrokeDiff float64
	FillOffset float64
}

// ComputeStrokeAdjustment implements the strokeDiff/fillOffset formula
// of spec §4.2.
func ComputeStrokeAdjustment(w, baseStrokeWidth, expandFillLimit float64) StrokeAdjustment {
	diff := w - baseStrokeWidth
	if expandFillLimit > 0 && w < baseStrokeWidth {
		over := baseStrokeWidth - w
		fillOffset := math.Min(over, expandFillLimit)
		strokeDiff := 0.0
		if over > expandFillLimit {
			strokeDiff = expandFillLimit - over
		}
		return StrokeAdjustment{StrokeDiff: strokeDiff, FillOffset: fillOffset}
	}
	return StrokeAdjustment{StrokeDiff: diff}
}

// MinPixelStroke returns the minimum rendered stroke width, in target
// pixels, for the given source canvas size, target size, and ratio m.
func MinPixelStroke(sourceCanvas, targetSize, m float64) float64 {
	return sourceCanvas * m / targetSize
}

// RoundWholePixel rounds a pixel stroke width to the nearest integer
// using a 0.25 bias, so 0.75 rounds up to 1 but 0.5 rounds down to 0.
func RoundWholePixel(pixels float64) float64 {
	return math.Floor(pixels + 0.25)
}

// Apply mutates doc in place: substituting palette colors, adjusting
// marked elements' stroke widths (and compensating via fill-expansion
// where configured), and wrapping the document in a drop-shadow filter
// when Shadow is set and ShadowAsFilter is true. sourceCanvas and
// targetSize are the current viewBox side length and the pixel
// resolution being prepared for, needed by the minimum-stroke and
// whole-pixel-stroke rules, which depend on the target resolution.
func Apply(doc *svgdom.Document, cfg Config, sourceCanvas, targetSize float64) {
	if len(cfg.Palette) > 0 {
		svgdom.ApplyPalette(doc.Root, cfg.Palette)
	}

	if cfg.StrokeWidth > 0 && cfg.BaseStrokeWidth > 0 {
		adj := ComputeStrokeAdjustment(cfg.StrokeWidth, cfg.BaseStrokeWidth, cfg.ExpandFillLimit)
		applyStrokeAdjustment(doc, cfg, adj, sourceCanvas, targetSize)
	}

	if cfg.Shadow != nil && cfg.ShadowAsFilter {
		wrapDropShadowFilter(doc, *cfg.Shadow)
	}
}

// strokeEligible reports whether n is one of the "marked elements"
// whose stroke width participates in the adjustment: any element that
// already declares a stroke-width, which is how the source art marks
// strokes meant to scale with the cursor's configured stroke setting
// (as opposed to decorative strokes with a fixed width baked into a
// "style" attribute, which are left untouched).
func strokeEligible(n *svgdom.Node) bool {
	_, ok := n.Get("stroke-width")
	return ok
}

func applyStrokeAdjustment(doc *svgdom.Document, cfg Config, adj StrokeAdjustment, sourceCanvas, targetSize float64) {
	scale := targetSize / sourceCanvas
	doc.Root.Walk(func(n *svgdom.Node) bool {
		if !strokeEligible(n) {
			return true
		}
		sw, _ := n.Get("stroke-width")
		base, err := strconv.ParseFloat(sw, 64)
		if err != nil {
			return true
		}
		effective := base + adj.StrokeDiff
		if effective < 0 {
			effective = 0
		}
		if cfg.MinStrokeWidthRatio > 0 {
			minPixels := MinPixelStroke(sourceCanvas, targetSize, cfg.MinStrokeWidthRatio)
			if effective*scale < minPixels {
				effective = minPixels / scale
			}
		}
		if cfg.WholePixelStroke {
			pixels := effective * scale
			effective = RoundWholePixel(pixels) / scale
		}
		n.Set("stroke-width", formatFloat(effective))
		if adj.FillOffset > 0 {
			// Approximate fill expansion by widening the element's own
			// stroke using its fill color, growing the silhouette
			// without thinning the configured pointer stroke.
			if fill, ok := n.Get("fill"); ok && fill != "none" {
				n.Set("paint-order", "stroke")
				existing, hasStroke := n.Get("stroke")
				if !hasStroke || existing == "none" {
					n.Set("stroke", fill)
				}
				n.Set("stroke-width", formatFloat(effective+2*adj.FillOffset))
			}
		}
		return true
	})
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// wrapDropShadowFilter adds an SVG filter definition implementing a
// Gaussian-blur drop shadow and references it from the root element,
// the SVG-native counterpart to the post-raster path of spec §4.9.
func wrapDropShadowFilter(doc *svgdom.Document, s Shadow) {
	defs := &svgdom.Node{Tag: "defs", Parent: doc.Root}
	filterID := "mousegen-drop-shadow"
	filter := &svgdom.Node{Tag: "filter", Parent: defs}
	filter.Set("id", filterID)
	filter.Set("x", "-50%")
	filter.Set("y", "-50%")
	filter.Set("width", "200%")
	filter.Set("height", "200%")

	blur := &svgdom.Node{Tag: "feGaussianBlur", Parent: filter}
	blur.Set("in", "SourceAlpha")
	blur.Set("stdDeviation", formatFloat(s.Blur))
	blur.Set("result", "blur")

	offset := &svgdom.Node{Tag: "feOffset", Parent: filter}
	offset.Set("in", "blur")
	offset.Set("dx", formatFloat(s.DX))
	offset.Set("dy", formatFloat(s.DY))
	offset.Set("result", "offsetBlur")

	flood := &svgdom.Node{Tag: "feFlood", Parent: filter}
	flood.Set("flood-color", s.Color)
	flood.Set("flood-opacity", formatFloat(s.Opacity))
	flood.Set("result", "color")

	composite := &svgdom.Node{Tag: "feComposite", Parent: filter}
	composite.Set("in", "color")
	composite.Set("in2", "offsetBlur")
	composite.Set("operator", "in")
	composite.Set("result", "shadow")

	merge := &svgdom.Node{Tag: "feMerge", Parent: filter}
	mergeShadow := &svgdom.Node{Tag: "feMergeNode", Parent: merge}
	mergeShadow.Set("in", "shadow")
	mergeSource := &svgdom.Node{Tag: "feMergeNode", Parent: merge}
	mergeSource.Set("in", "SourceGraphic")
	merge.Children = []*svgdom.Node{mergeShadow, mergeSource}

	filter.Children = []*svgdom.Node{blur, offset, flood, composite, merge}
	defs.Children = []*svgdom.Node{filter}

	doc.Root.Children = append([]*svgdom.Node{defs}, doc.Root.Children...)
	doc.Root.Set("filter", fmt.Sprintf("url(#%s)", filterID))
}
