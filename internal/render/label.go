// Package render provides a deterministic font-labeled RendererBackend
// for fixtures and tests that need a stable raster without depending
// on actual SVG geometry, following the font.Drawer usage pattern of
// golang-exp's shiny/widget.Label.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"cogentcore.org/mousegen/internal/config"
	"cogentcore.org/mousegen/internal/renderer"
	"cogentcore.org/mousegen/internal/svgdom"
)

var _ renderer.Backend = (*LabelBackend)(nil)

var (
	labelFont     *opentype.Font
	labelFontOnce sync.Once
	labelFontErr  error
)

func loadLabelFont() (*opentype.Font, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = opentype.Parse(lmroman10regular.TTF)
	})
	return labelFont, labelFontErr
}

// LabelBackend renders a flat-colored square stamped with "WxH", used
// by tests that need a RendererBackend producing visibly distinct,
// deterministic output per requested size without parsing real SVG
// geometry.
type LabelBackend struct {
	Background color.NRGBA
	Foreground color.NRGBA
}

// NewLabelBackend returns a backend with a light background and dark
// text, the conventional debug-overlay palette.
func NewLabelBackend() *LabelBackend {
	return &LabelBackend{
		Background: color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff},
		Foreground: color.NRGBA{A: 0xff},
	}
}

// SetDocument is a no-op: the label backend ignores SVG content
// entirely, since its only job is to mark a raster with its
// dimensions for test fixtures.
func (l *LabelBackend) SetDocument(*svgdom.Document) {}

// ResetView is a no-op for the same reason.
func (l *LabelBackend) ResetView() {}

// RenderStatic fills a width x height raster with Background and
// stamps "WxH" near the top-left corner in Foreground.
func (l *LabelBackend) RenderStatic(width, height int) (*image.RGBA, error) {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(l.Background), image.Point{}, draw.Src)
	if err := l.drawLabel(dst, fmt.Sprintf("%dx%d", width, height)); err != nil {
		return nil, err
	}
	return dst, nil
}

// RenderAnimation samples one label raster per frame with the frame
// index appended, mirroring RenderStatic for each of anim.FrameCount
// frames.
func (l *LabelBackend) RenderAnimation(width, height int, anim config.Animation, onFrame func(int, *image.RGBA) error) error {
	n := anim.FrameCount()
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(dst, dst.Bounds(), image.NewUniform(l.Background), image.Point{}, draw.Src)
		if err := l.drawLabel(dst, fmt.Sprintf("%dx%d#%d", width, height, i+1)); err != nil {
			return err
		}
		if err := onFrame(i+1, dst); err != nil {
			return err
		}
	}
	return nil
}

func (l *LabelBackend) drawLabel(dst *image.RGBA, text string) error {
	f, err := loadLabelFont()
	if err != nil {
		return fmt.Errorf("render: load label font: %w", err)
	}
	size := float64(dst.Bounds().Dy()) / 4
	if size < 6 {
		size = 6
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return fmt.Errorf("render: build label face: %w", err)
	}
	defer face.Close()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(l.Foreground),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(2),
			Y: fixed.I(int(size)),
		},
	}
	d.DrawString(text)
	return nil
}
