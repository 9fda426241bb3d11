package renderer

import (
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/mousegen/internal/config"
	"cogentcore.org/mousegen/internal/svgdom"
)

const redSquareSVG = `<svg viewBox="0 0 10 10"><rect x="0" y="0" width="10" height="10" fill="#ff0000"/></svg>`

func parseDoc(t *testing.T, content string) *svgdom.Document {
	t.Helper()
	doc, err := svgdom.Parse(strings.NewReader(content))
	require.NoError(t, err)
	return doc
}

func TestRenderStaticFillsSolidColor(t *testing.T) {
	b := NewSVGBackend()
	b.SetDocument(parseDoc(t, redSquareSVG))

	img, err := b.RenderStatic(8, 8)
	require.NoError(t, err)
	require.Equal(t, 8, img.Bounds().Dx())

	r, g, bch, a := img.At(4, 4).RGBA()
	assert.Greater(t, r, uint32(0))
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0), bch)
	assert.Greater(t, a, uint32(0))
}

func TestRenderStaticWithoutDocumentErrors(t *testing.T) {
	b := NewSVGBackend()
	_, err := b.RenderStatic(8, 8)
	assert.Error(t, err)
}

func TestRenderAnimationFallsBackToSingleFrame(t *testing.T) {
	b := NewSVGBackend()
	b.SetDocument(parseDoc(t, redSquareSVG))

	var calls int
	err := b.RenderAnimation(8, 8, config.Animation{Name: "wait", DurationSeconds: 1, FrameRate: 24}, func(i int, img *image.RGBA) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestResetViewClearsDocument(t *testing.T) {
	b := NewSVGBackend()
	b.SetDocument(parseDoc(t, redSquareSVG))
	b.ResetView()
	_, err := b.RenderStatic(4, 4)
	assert.Error(t, err)
}
