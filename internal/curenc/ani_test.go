package curenc

import (
	"encoding/binary"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frameCUR(t *testing.T) []byte {
	t.Helper()
	b, err := EncodeCUR([]Frame{{Image: solidImage(16, 16), Hotspot: image.Pt(1, 1)}})
	require.NoError(t, err)
	return b
}

// TestEncodeANILayout reproduces spec scenario S3: 18 frames at 3Hz,
// duration 6s -> jiffies = round(60/3) = 20.
func TestEncodeANILayout(t *testing.T) {
	const nFrames = 18
	frames := make([][]byte, nFrames)
	one := frameCUR(t)
	for i := range frames {
		frames[i] = one
	}

	out, err := EncodeANI(frames, 20, nil)
	require.NoError(t, err)

	require.Equal(t, "RIFF", string(out[0:4]))
	require.Equal(t, "ACON", string(out[8:12]))

	anihIdx := strings.Index(string(out), "anih")
	require.GreaterOrEqual(t, anihIdx, 0)
	size := binary.LittleEndian.Uint32(out[anihIdx+4 : anihIdx+8])
	assert.Equal(t, uint32(36), size)
	header := out[anihIdx+8 : anihIdx+8+36]
	assert.Equal(t, uint32(36), binary.LittleEndian.Uint32(header[0:4]))
	assert.Equal(t, uint32(nFrames), binary.LittleEndian.Uint32(header[4:8]))
	assert.Equal(t, uint32(nFrames), binary.LittleEndian.Uint32(header[8:12]))
	assert.Equal(t, uint32(20), binary.LittleEndian.Uint32(header[28:32]))
	flags := binary.LittleEndian.Uint32(header[32:36])
	assert.Equal(t, uint32(1), flags&1, "bit 0 (icon format) must be set")
	assert.Equal(t, uint32(0), flags&2, "bit 1 (seq chunk) must be clear")

	assert.Equal(t, nFrames, strings.Count(string(out), "icon"))
}

func TestEncodeANIRejectsEmpty(t *testing.T) {
	_, err := EncodeANI(nil, 20, nil)
	assert.Error(t, err)
}

func TestEncodeANIWithInfo(t *testing.T) {
	out, err := EncodeANI([][]byte{frameCUR(t)}, 10, &ANIInfo{Title: "Bibata"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "LIST")
	assert.Contains(t, string(out), "INFO")
	assert.Contains(t, string(out), "INAM")
	assert.Contains(t, string(out), "Bibata")
}
