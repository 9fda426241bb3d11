// Package gridalign implements GridAligner (spec §4.3): shifting a
// cursor SVG's viewBox origin and per-group child translations so that
// hinted graphical elements land on whole pixel centers at a given
// target resolution, and computing the resulting integer hotspot.
package gridalign

import (
	"image"
	"math"
)

// Vec2 is a 2D offset in source (user) units.
type Vec2 struct{ X, Y float64 }

// Result is everything GridAligner computes for one target resolution.
type Result struct {
	// ViewBoxOrigin is the new (possibly fractional) viewBox x/y.
	ViewBoxOrigin Vec2
	// ChildTranslations maps a child anchor's key (its parent group's
	// svgdom.ElementPath.Key()) to the translate(dx dy) that lands
	// that anchor on the pixel grid, applied after the viewBox origin
	// shift.
	ChildTranslations map[string]Vec2
	// Hotspot is the aligned hotspot in target pixels.
	Hotspot image.Point
	// Scale is targetSize / viewBoxSize, the uniform (non-anisotropic)
	// scale factor applied on both axes.
	Scale float64
}

// Input bundles everything Align needs for one (cursor, resolution)
// pair.
type Input struct {
	TargetSize   float64
	ViewBoxSize  float64 // side length of the square source viewBox
	Origin       Vec2    // original viewBox x/y
	RootAnchor   Vec2
	ChildAnchors map[string]Vec2 // key -> source-space anchor point
	Hotspot      Vec2
}

// residue returns the fractional part, in target-pixel space, of
// mapping p through origin/scale: (p-origin)*scale -
// round((p-origin)*scale). It lies in [-0.5, 0.5].
func residue(p, origin, scale float64) float64 {
	mapped := (p - origin) * scale
	return mapped - math.Round(mapped)
}

// shiftToGrid returns the viewBox-space shift that, added to p's
// coordinate space origin, would make p land exactly on the pixel
// grid at the given scale.
func shiftToGrid(p, origin, scale float64) float64 {
	return residue(p, origin, scale) / scale
}

// Align computes the viewBox origin shift, per-child translations, and
// aligned hotspot for one target resolution.
func Align(in Input) Result {
	scale := in.TargetSize / in.ViewBoxSize

	newOriginX := in.Origin.X + shiftToGrid(in.RootAnchor.X, in.Origin.X, scale)
	newOriginY := in.Origin.Y + shiftToGrid(in.RootAnchor.Y, in.Origin.Y, scale)
	newOrigin := Vec2{X: newOriginX, Y: newOriginY}

	children := make(map[string]Vec2, len(in.ChildAnchors))
	for key, anchor := range in.ChildAnchors {
		dx := -shiftToGrid(anchor.X, newOrigin.X, scale)
		dy := -shiftToGrid(anchor.Y, newOrigin.Y, scale)
		children[key] = Vec2{X: dx, Y: dy}
	}

	hotspot := image.Point{
		X: mapHotspotComponent(in.Hotspot.X, newOrigin.X, scale),
		Y: mapHotspotComponent(in.Hotspot.Y, newOrigin.Y, scale),
	}

	return Result{
		ViewBoxOrigin:     newOrigin,
		ChildTranslations: children,
		Hotspot:           hotspot,
		Scale:             scale,
	}
}

// mapHotspotComponent maps one hotspot coordinate from source space to
// a target pixel, per the edge rule of spec §4.3 step 5 / testable
// property 7: components greater than 120 or negative are truncated
// toward zero (the literal 120 threshold is called out in spec §9 as
// an open question to preserve, not re-derive); all others round to
// nearest.
func mapHotspotComponent(source, origin, scale float64) int {
	mapped := (source - origin) * scale
	if source > 120 || source < 0 {
		return int(mapped) // truncate toward zero
	}
	return int(math.Round(mapped))
}
