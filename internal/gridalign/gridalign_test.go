package gridalign

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAlignS1 reproduces spec scenario S1.
func TestAlignS1(t *testing.T) {
	res := Align(Input{
		TargetSize:  32,
		ViewBoxSize: 256,
		Origin:      Vec2{X: 0, Y: 0},
		RootAnchor:  Vec2{X: 0.4, Y: 0.7},
		Hotspot:     Vec2{X: 4, Y: 4},
	})
	assert.InDelta(t, 0.4, res.ViewBoxOrigin.X, 1e-9)
	assert.InDelta(t, 0.7, res.ViewBoxOrigin.Y, 1e-9)
	assert.Equal(t, image.Pt(0, 0), res.Hotspot)
}

// TestRootAnchorAlignment checks testable property 6: the updated
// viewBox places the root anchor on an integer pixel, for a spread of
// anchors/sizes/viewBoxes.
func TestRootAnchorAlignment(t *testing.T) {
	cases := []struct {
		target, vb  float64
		anchorX, aY float64
	}{
		{32, 256, 0.4, 0.7},
		{48, 256, 13.25, 201.9},
		{64, 128, -3.3, 5.5},
		{16, 256, 255.9, 0.01},
	}
	for _, c := range cases {
		res := Align(Input{TargetSize: c.target, ViewBoxSize: c.vb, RootAnchor: Vec2{X: c.anchorX, Y: c.aY}})
		scale := c.target / c.vb
		mx := (c.anchorX - res.ViewBoxOrigin.X) * scale
		my := (c.aY - res.ViewBoxOrigin.Y) * scale
		assert.InDelta(t, math.Round(mx), mx, 1e-6)
		assert.InDelta(t, math.Round(my), my, 1e-6)
	}
}

// TestHotspotEdgeRule checks testable property 7.
func TestHotspotEdgeRule(t *testing.T) {
	res := Align(Input{TargetSize: 32, ViewBoxSize: 256, Hotspot: Vec2{X: 130, Y: 5}})
	scale := 32.0 / 256.0
	mx := (130.0 - res.ViewBoxOrigin.X) * scale
	my := (5.0 - res.ViewBoxOrigin.Y) * scale
	assert.Equal(t, int(mx), res.Hotspot.X, "component > 120 truncates toward zero")
	assert.Equal(t, int(math.Round(my)), res.Hotspot.Y, "component in range rounds")

	res2 := Align(Input{TargetSize: 32, ViewBoxSize: 256, Hotspot: Vec2{X: -10, Y: 5}})
	mx2 := (-10.0 - res2.ViewBoxOrigin.X) * scale
	assert.Equal(t, int(mx2), res2.Hotspot.X, "negative component truncates toward zero")
}

// TestChildTranslationSnapsToGrid checks that after applying a child's
// translate on top of the new viewBox origin, its anchor lands on the
// pixel grid too.
func TestChildTranslationSnapsToGrid(t *testing.T) {
	res := Align(Input{
		TargetSize:   32,
		ViewBoxSize:  256,
		RootAnchor:   Vec2{X: 0.4, Y: 0.7},
		ChildAnchors: map[string]Vec2{"g[0]": {X: 10.3, Y: 20.8}},
	})
	scale := 32.0 / 256.0
	tr := res.ChildTranslations["g[0]"]
	fx := (10.3+tr.X-res.ViewBoxOrigin.X)*scale
	fy := (20.8+tr.Y-res.ViewBoxOrigin.Y)*scale
	assert.InDelta(t, math.Round(fx), fx, 1e-6)
	assert.InDelta(t, math.Round(fy), fy, 1e-6)
}
