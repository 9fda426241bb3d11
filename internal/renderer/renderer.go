// Package renderer implements RendererBackend (spec §4.9): the
// interface abstracting an SVG-to-ARGB raster adapter, plus a
// deterministic test-double implementation for environments without a
// full SVG rendering engine available.
package renderer

import (
	"image"
	"log/slog"

	"cogentcore.org/mousegen/internal/config"
	"cogentcore.org/mousegen/internal/svgdom"
)

// Backend abstracts the capability set of spec §4.9: setDocument,
// renderStatic, renderAnimation, resetView. A post-raster drop shadow
// is not part of the interface, and no backend in this module applies
// one.
type Backend interface {
	// SetDocument installs dom as the document subsequent render calls
	// operate on. The backend must not retain dom past ResetView.
	SetDocument(dom *svgdom.Document)

	// RenderStatic rasterizes the current document at (width, height)
	// pixels, returning an alpha-premultiplied ARGB image.
	RenderStatic(width, height int) (*image.RGBA, error)

	// RenderAnimation samples the animation clock at t_i=(i-1)/frameRate
	// for i=1..anim.FrameCount(), invoking onFrame once per sample in
	// order. Backends without real SVG-animation support must emit a
	// single raster at t=0 and log a warning, per spec §4.9.
	RenderAnimation(width, height int, anim config.Animation, onFrame func(frameIndex int, raster *image.RGBA) error) error

	// ResetView clears any imperative width/height/viewBox overrides
	// applied by the previous render call.
	ResetView()
}

// DropShadow holds the parameters of a Gaussian-blur drop shadow
// (blur, dx, -dy, opacity, color), scaled by
// targetSize/sourceViewBoxWidth. No code in this module builds or
// applies one.
type DropShadow struct {
	BlurPixels float64
	DX, DY     float64
	Opacity    float64
	Color      image.Image // 1x1 uniform color image, or nil for none
}

// warnSingleFrameFallback is called by backends that can't sample an
// SVG animation clock, matching spec §4.9's required warning.
func warnSingleFrameFallback(anim config.Animation) {
	slog.Warn("renderer: backend lacks SVG animation support, emitting single frame at t=0", "animation", anim.Name, "frameCount", anim.FrameCount())
}
