// Package bitmapwriter implements BitmapWriter (spec §4.7): emitting
// per-frame PNG files into a directory tree for BITMAPS output mode.
package bitmapwriter

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"cogentcore.org/mousegen/internal/mgerr"
)

// Frame is one raster to write, carrying enough naming context to
// derive its output filename.
type Frame struct {
	CursorName string
	Size       int // nominal pixel size, e.g. 32
	FrameNo    int // 0 for static cursors
	Animated   bool
	Image      image.Image
}

// Writer emits PNGs under outDir, one subdirectory per animated
// cursor; static cursors write directly into outDir.
type Writer struct {
	OutDir string
}

// New returns a Writer rooted at outDir.
func New(outDir string) *Writer {
	return &Writer{OutDir: outDir}
}

// Write encodes f as a PNG and places it at the path dictated by spec
// §4.7's naming convention: "<cursorName>[-0]<size>[-<frameNo>].png",
// where "-0" prefixes sizes under 100 so names sort lexically by size,
// and "-<frameNo>" is present only for animated frames. Static cursors
// land in outDir itself; animated cursors get their own subdirectory
// named after the cursor.
func (w *Writer) Write(f Frame) error {
	dir := w.OutDir
	if f.Animated {
		dir = filepath.Join(w.OutDir, f.CursorName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("bitmapwriter: %w", err)
	}

	name := f.CursorName
	if f.Size < 100 {
		name += fmt.Sprintf("-0%d", f.Size)
	} else {
		name += fmt.Sprintf("-%d", f.Size)
	}
	if f.Animated {
		name += fmt.Sprintf("-%d", f.FrameNo)
	}
	name += ".png"

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bitmapwriter: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, f.Image); err != nil {
		return &mgerr.MalformedBitmap{Cursor: f.CursorName, Err: err}
	}
	return nil
}

// WriteAll writes every frame in order, stopping at the first error.
func (w *Writer) WriteAll(frames []Frame) error {
	for _, f := range frames {
		if err := w.Write(f); err != nil {
			return err
		}
	}
	return nil
}
