package xcurenc

import (
	"encoding/binary"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, alpha uint32) Image {
	pixels := make([]uint32, w*h)
	for i := range pixels {
		pixels[i] = alpha<<24 | 0x00112233
	}
	return Image{Width: w, Height: h, Hotspot: image.Pt(w/2, h/2), Pixels: pixels}
}

func TestNominalSize(t *testing.T) {
	assert.Equal(t, uint32(32), NominalSize(32, 32, 1.0))
	// odd average rounds up to the next even integer
	assert.Equal(t, uint32(24), NominalSize(23, 23, 1.0))
}

// TestTOCOrdering reproduces spec scenario S4: nominalSizes inserted
// [32, 32, 48, 24] end up ordered [24, 32, 32, 48] in the file, with
// the two size-32 entries retaining their original relative order.
func TestTOCOrdering(t *testing.T) {
	mk := func(size uint32) Image {
		im := solid(4, 4, 255)
		im.NominalSize = size
		return im
	}
	images := []Image{mk(32), mk(32), mk(48), mk(24)}
	images[0].Pixels[0] = 0xFF0000AA // distinguish the two size-32 entries
	images[1].Pixels[0] = 0xFF0000BB

	out, err := Encode(images)
	require.NoError(t, err)

	count := binary.LittleEndian.Uint32(out[12:16])
	require.Equal(t, uint32(4), count)

	var subtypes []uint32
	var offsets []uint32
	for i := 0; i < int(count); i++ {
		start := fileHeaderLen + i*tocEntryLen
		subtypes = append(subtypes, binary.LittleEndian.Uint32(out[start+4:start+8]))
		offsets = append(offsets, binary.LittleEndian.Uint32(out[start+8:start+12]))
	}
	assert.Equal(t, []uint32{24, 32, 32, 48}, subtypes)

	// first 32-entry's image chunk must contain 0xAA, second 0xBB
	firstPixel := func(off uint32) uint32 {
		return binary.LittleEndian.Uint32(out[off+imageChunkLen : off+imageChunkLen+4])
	}
	assert.Equal(t, uint32(0xFF0000AA), firstPixel(offsets[1]))
	assert.Equal(t, uint32(0xFF0000BB), firstPixel(offsets[2]))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	images := []Image{solid(8, 8, 255), solid(16, 16, 128)}
	images[0].NominalSize = NominalSize(8, 8, 1.0)
	images[1].NominalSize = NominalSize(16, 16, 1.0)
	images[0].DelayMillis = 42
	images[1].DelayMillis = 42

	data, err := Encode(images)
	require.NoError(t, err)

	decoded, err := Decode(data, nil)
	require.NoError(t, err)
	require.Len(t, decoded, 2)

	// decode sorts by file offset, which for this input is already
	// ascending nominal size, so order matches input order here.
	assert.Equal(t, images[0].Width, decoded[0].Width)
	assert.Equal(t, images[0].Pixels, decoded[0].Pixels)
	assert.Equal(t, images[1].Width, decoded[1].Width)
	assert.Equal(t, images[1].Pixels, decoded[1].Pixels)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	data := make([]byte, 16)
	copy(data, "NOPE")
	_, err := Decode(data, nil)
	assert.Error(t, err)
}

func TestDecodeRejectsTruncated(t *testing.T) {
	_, err := Decode([]byte("Xcu"), nil)
	assert.Error(t, err)
}

func TestDecodeReportsUnknownChunkWithoutAborting(t *testing.T) {
	img := solid(4, 4, 255)
	img.NominalSize = 24
	data, err := Encode([]Image{img})
	require.NoError(t, err)

	var seen []uint32
	_, err = Decode(data, func(chunkType uint32, offset int64) {
		seen = append(seen, chunkType)
	})
	require.NoError(t, err)
	assert.Empty(t, seen, "no unknown chunks in a pure image file")
}

func TestGroupByNominalSize(t *testing.T) {
	a := solid(4, 4, 255)
	a.NominalSize = 24
	b := solid(4, 4, 255)
	b.NominalSize = 24
	groups := GroupByNominalSize([]Image{a, b})
	assert.Len(t, groups[24], 2)
}

func TestCropToContentCropsOpaqueBounds(t *testing.T) {
	im := solid(8, 8, 0)
	// mark a 2x2 opaque block at (3,3)-(5,5)
	for y := 3; y < 5; y++ {
		for x := 3; x < 5; x++ {
			im.Pixels[y*8+x] = 0xFFFFFFFF
		}
	}
	im.Hotspot = image.Pt(4, 4)
	out := CropToContent(im, true)
	assert.Equal(t, 2, out.Width)
	assert.Equal(t, 2, out.Height)
	assert.Equal(t, image.Pt(1, 1), out.Hotspot)
}

func TestCropToContentDisabledCentersSquare(t *testing.T) {
	im := solid(4, 8, 255)
	out := CropToContent(im, false)
	assert.Equal(t, 8, out.Width)
	assert.Equal(t, 8, out.Height)
}
