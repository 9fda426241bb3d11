package bitmapwriter

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(n int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			img.Set(x, y, color.NRGBA{R: 10, A: 255})
		}
	}
	return img
}

func TestWriteStaticSmallSizePrefixesZero(t *testing.T) {
	dir := t.TempDir()
	w := New(dir)
	require.NoError(t, w.Write(Frame{CursorName: "default", Size: 32, Image: solid(32)}))
	_, err := os.Stat(filepath.Join(dir, "default-032.png"))
	assert.NoError(t, err)
}

func TestWriteStaticLargeSizeNoPrefix(t *testing.T) {
	dir := t.TempDir()
	w := New(dir)
	require.NoError(t, w.Write(Frame{CursorName: "default", Size: 128, Image: solid(128)}))
	_, err := os.Stat(filepath.Join(dir, "default-128.png"))
	assert.NoError(t, err)
}

func TestWriteAnimatedGoesIntoSubdirWithFrameNo(t *testing.T) {
	dir := t.TempDir()
	w := New(dir)
	require.NoError(t, w.Write(Frame{CursorName: "wait", Size: 32, FrameNo: 3, Animated: true, Image: solid(32)}))
	_, err := os.Stat(filepath.Join(dir, "wait", "wait-032-3.png"))
	assert.NoError(t, err)
}

func TestWriteAllStopsOnFirstError(t *testing.T) {
	w := New(string([]byte{0}))
	err := w.WriteAll([]Frame{{CursorName: "x", Size: 32, Image: solid(32)}})
	assert.Error(t, err)
}
