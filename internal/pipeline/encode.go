package pipeline

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"cogentcore.org/mousegen/internal/bitmapwriter"
	"cogentcore.org/mousegen/internal/curenc"
	"cogentcore.org/mousegen/internal/errorsx"
	"cogentcore.org/mousegen/internal/hotspotstore"
	"cogentcore.org/mousegen/internal/icnsenc"
	"cogentcore.org/mousegen/internal/xcurenc"
)

// finishBuilder marks b finished, validates it, then emits every
// requested output format for it, per the encoders named in spec
// §4.5/§4.6/§4.7.
func (p *RenderPipeline) finishBuilder(b *builder, spec VariantSpec, modes Modes, store *hotspotstore.Store) error {
	if err := b.markFinished(); err != nil {
		return err
	}
	if err := b.validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(spec.OutDir, 0o755); err != nil {
		return errorsx.Log(fmt.Errorf("pipeline: mkdir %s: %w", spec.OutDir, err))
	}

	submit := func(label string, task func() error) error {
		if p.Scheduler == nil {
			return task()
		}
		return p.Scheduler.Submit(spec.OutDir+"/"+b.targetName+"/"+label, task)
	}

	if modes.Windows {
		if err := submit("windows", func() error { return writeWindows(b, spec) }); err != nil {
			return err
		}
	}
	if modes.Xcursor {
		if err := submit("xcursor", func() error { return writeXcursor(b, spec) }); err != nil {
			return err
		}
	}
	if modes.Bitmaps {
		if err := submit("bitmaps", func() error { return writeBitmaps(b, spec) }); err != nil {
			return err
		}
	}
	if modes.Mac {
		if err := submit("mac", func() error { return writeMacIcon(b, spec) }); err != nil {
			return err
		}
	}
	return nil
}

func largestRaster(b *builder) (image.Image, bool) {
	frames := b.frames[b.sortedFrameNumbers()[0]]
	if len(frames) == 0 {
		return nil, false
	}
	best := frames[0]
	for _, rf := range frames[1:] {
		if rf.resolution > best.resolution {
			best = rf
		}
	}
	return best.raster, true
}

// writeWindows emits a .cur for a static cursor, or a .ani assembled
// from per-frame .cur payloads for an animated one. Each .cur, and each
// .ani frame, holds one directory entry per rendered resolution.
func writeWindows(b *builder, spec VariantSpec) error {
	frameNums := b.sortedFrameNumbers()

	if !b.animated {
		frames := b.frames[frameNums[0]]
		curFrames := make([]curenc.Frame, 0, len(frames))
		for _, rf := range frames {
			curFrames = append(curFrames, curenc.Frame{Image: rf.raster, Hotspot: rf.hotspot})
		}
		data, err := curenc.EncodeCUR(curFrames)
		if err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(spec.OutDir, b.targetName+".cur"), data, 0o644)
	}

	perFrameCUR := make([][]byte, 0, len(frameNums))
	var jiffies uint32 = 6
	if anim, ok := spec.Animations[b.animationKey()]; ok {
		jiffies = anim.Jiffies()
	}
	for _, fn := range frameNums {
		frames := b.frames[fn]
		curFrames := make([]curenc.Frame, 0, len(frames))
		for _, rf := range frames {
			curFrames = append(curFrames, curenc.Frame{Image: rf.raster, Hotspot: rf.hotspot})
		}
		data, err := curenc.EncodeCUR(curFrames)
		if err != nil {
			return err
		}
		perFrameCUR = append(perFrameCUR, data)
	}
	data, err := curenc.EncodeANI(perFrameCUR, jiffies, &curenc.ANIInfo{Title: b.targetName})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(spec.OutDir, b.targetName+".ani"), data, 0o644)
}

// writeXcursor assembles one Xcursor file per cursor, grouping every
// (resolution, frame) raster by nominal size so animated groups become
// the TOC's repeated-subtype runs Decode/GroupByNominalSize expect.
func writeXcursor(b *builder, spec VariantSpec) error {
	var delayMillis uint32
	if anim, ok := spec.Animations[b.animationKey()]; ok {
		delayMillis = anim.DelayMillis()
	}

	var images []xcurenc.Image
	for _, fn := range b.sortedFrameNumbers() {
		for _, rf := range b.frames[fn] {
			nrgba := toNRGBA(rf.raster)
			images = append(images, xcurenc.Image{
				Width:       nrgba.Bounds().Dx(),
				Height:      nrgba.Bounds().Dy(),
				Hotspot:     rf.hotspot,
				DelayMillis: delayMillis,
				NominalSize: xcurenc.NominalSize(nrgba.Bounds().Dx(), nrgba.Bounds().Dy(), spec.Scheme.NominalFactor),
				Pixels:      packARGBPremultiplied(nrgba),
			})
			if spec.CropToContent {
				images[len(images)-1] = xcurenc.CropToContent(images[len(images)-1], true)
			}
		}
	}
	data, err := xcurenc.Encode(images)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(spec.OutDir, b.targetName), data, 0o644)
}

func writeBitmaps(b *builder, spec VariantSpec) error {
	w := bitmapwriter.New(spec.OutDir)
	for _, fn := range b.sortedFrameNumbers() {
		for _, rf := range b.frames[fn] {
			if err := w.Write(bitmapwriter.Frame{
				CursorName: b.targetName,
				Size:       rf.resolution,
				FrameNo:    fn,
				Animated:   b.animated,
				Image:      rf.raster,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeMacIcon(b *builder, spec VariantSpec) error {
	raster, ok := largestRaster(b)
	if !ok {
		return nil
	}
	dir := filepath.Join(spec.OutDir, "mac")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := icnsenc.Encode(&buf, raster); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, b.targetName+".icns"), buf.Bytes(), 0o644)
}

// animationKey returns the lookup key for this builder's animation
// definition: its cursor name, which splitAnimationFrame already
// canonicalized against animations.json.
func (b *builder) animationKey() string { return b.cursorName }

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}

// packARGBPremultiplied converts an NRGBA raster into Xcursor's
// row-major 0xAARRGGBB premultiplied pixel array.
func packARGBPremultiplied(img *image.NRGBA) []uint32 {
	b := img.Bounds()
	out := make([]uint32, b.Dx()*b.Dy())
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, a := img.At(x, y).RGBA()
			ab, rb, gb, bbb := uint32(a>>8), uint32(r>>8), uint32(g>>8), uint32(bb>>8)
			out[i] = ab<<24 | rb<<16 | gb<<8 | bbb
			i++
		}
	}
	return out
}
