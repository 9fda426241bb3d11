package render

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/mousegen/internal/config"
)

func TestRenderStaticFillsBackground(t *testing.T) {
	b := NewLabelBackend()
	img, err := b.RenderStatic(32, 32)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	wantR, wantG, wantB, wantA := b.Background.RGBA()
	gotR, gotG, gotB, gotA := img.At(31, 31).RGBA()
	assert.Equal(t, [4]uint32{wantR, wantG, wantB, wantA}, [4]uint32{gotR, gotG, gotB, gotA})
}

func TestRenderAnimationProducesFrameCountSamples(t *testing.T) {
	b := NewLabelBackend()
	anim := config.Animation{DurationSeconds: 1, FrameRate: 3}
	var count int
	err := b.RenderAnimation(16, 16, anim, func(i int, raster *image.RGBA) error {
		count++
		assert.Equal(t, 16, raster.Bounds().Dy())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
