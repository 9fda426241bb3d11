package xcurenc

import "image"

// CropToContent optionally crops im to the axis-aligned bounding box
// of its opaque pixels, then pads that box to a square (expanding the
// deficient axis equally, clamped to the original bounds), per spec
// §4.6. When crop is false, or the image is fully transparent, the
// image is instead padded (without cropping) to a square of side
// max(width, height), centering the existing content. The hotspot is
// translated to match in both cases.
func CropToContent(im Image, crop bool) Image {
	if crop {
		if x0, y0, x1, y1, ok := opaqueBounds(im); ok {
			x0, y0, x1, y1 = padSquareClamped(x0, y0, x1, y1, im.Width, im.Height)
			return cropRect(im, x0, y0, x1, y1)
		}
	}
	return centerPad(im)
}

// opaqueBounds returns the bounding box [x0,y0,x1,y1) of pixels with
// nonzero alpha, or ok=false if every pixel is fully transparent.
func opaqueBounds(im Image) (x0, y0, x1, y1 int, ok bool) {
	x0, y0 = im.Width, im.Height
	x1, y1 = -1, -1
	for y := 0; y < im.Height; y++ {
		for x := 0; x < im.Width; x++ {
			px := im.Pixels[y*im.Width+x]
			alpha := px >> 24
			if alpha != 0 {
				if x < x0 {
					x0 = x
				}
				if y < y0 {
					y0 = y
				}
				if x+1 > x1 {
					x1 = x + 1
				}
				if y+1 > y1 {
					y1 = y + 1
				}
			}
		}
	}
	if x1 < 0 {
		return 0, 0, 0, 0, false
	}
	return x0, y0, x1, y1, true
}

// padSquareClamped expands the smaller axis of [x0,y0,x1,y1) equally
// on both sides to make it square with the larger axis, clamping to
// [0,w)/[0,h).
func padSquareClamped(x0, y0, x1, y1, w, h int) (int, int, int, int) {
	bw, bh := x1-x0, y1-y0
	side := bw
	if bh > side {
		side = bh
	}
	if bw < side {
		deficit := side - bw
		left := deficit / 2
		right := deficit - left
		x0 -= left
		x1 += right
		if x0 < 0 {
			x1 -= x0
			x0 = 0
		}
		if x1 > w {
			x0 -= x1 - w
			if x0 < 0 {
				x0 = 0
			}
			x1 = w
		}
	}
	if bh < side {
		deficit := side - bh
		top := deficit / 2
		bottom := deficit - top
		y0 -= top
		y1 += bottom
		if y0 < 0 {
			y1 -= y0
			y0 = 0
		}
		if y1 > h {
			y0 -= y1 - h
			if y0 < 0 {
				y0 = 0
			}
			y1 = h
		}
	}
	return x0, y0, x1, y1
}

// cropRect extracts the [x0,y0,x1,y1) sub-rectangle of im, translating
// the hotspot by the crop offset.
func cropRect(im Image, x0, y0, x1, y1 int) Image {
	w, h := x1-x0, y1-y0
	pixels := make([]uint32, w*h)
	for y := 0; y < h; y++ {
		copy(pixels[y*w:(y+1)*w], im.Pixels[(y0+y)*im.Width+x0:(y0+y)*im.Width+x0+w])
	}
	return Image{
		Width:       w,
		Height:      h,
		Hotspot:     image.Pt(im.Hotspot.X-x0, im.Hotspot.Y-y0),
		DelayMillis: im.DelayMillis,
		NominalSize: im.NominalSize,
		Pixels:      pixels,
	}
}

// centerPad pads im to a square canvas of side max(width,height),
// centering the original content, used when content cropping is
// disabled.
func centerPad(im Image) Image {
	side := im.Width
	if im.Height > side {
		side = im.Height
	}
	if side == im.Width && side == im.Height {
		return im
	}
	offX := (side - im.Width) / 2
	offY := (side - im.Height) / 2
	pixels := make([]uint32, side*side)
	for y := 0; y < im.Height; y++ {
		copy(pixels[(y+offY)*side+offX:(y+offY)*side+offX+im.Width], im.Pixels[y*im.Width:(y+1)*im.Width])
	}
	return Image{
		Width:       side,
		Height:      side,
		Hotspot:     image.Pt(im.Hotspot.X+offX, im.Hotspot.Y+offY),
		DelayMillis: im.DelayMillis,
		NominalSize: im.NominalSize,
		Pixels:      pixels,
	}
}
