package icnsenc

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeProducesICNSMagic(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 256, 256))
	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			img.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img))
	assert.Equal(t, "icns", buf.String()[:4])
}
