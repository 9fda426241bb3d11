// Package curenc implements CurEncoder (spec §4.5): the Windows CUR
// (static) and ANI (animated) container writers.
package curenc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"sort"
)

// Frame is one bitmap to encode into a CUR directory entry.
type Frame struct {
	Image   image.Image
	Hotspot image.Point
}

// pngMagic is the 8-byte signature CUR directory entries are scanned
// for to decide whether a payload is already a PNG (spec §4.5).
var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// EncodeCUR writes a static CUR container for frames, one ICONDIRENTRY
// per frame, sorted by width ascending (ties preserve insertion
// order), as required by spec §4.5 and testable property 4.
func EncodeCUR(frames []Frame) ([]byte, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("curenc: EncodeCUR: no frames")
	}
	payloads := make([][]byte, len(frames))
	for i, f := range frames {
		p, err := encodePayload(f.Image)
		if err != nil {
			return nil, err
		}
		if err := validateDims(f.Image.Bounds()); err != nil {
			return nil, err
		}
		payloads[i] = p
	}

	order := stableOrderByWidth(frames)

	var buf bytes.Buffer
	// ICONDIR
	writeU16(&buf, 0)                // reserved
	writeU16(&buf, 2)                // type = cursor
	writeU16(&buf, uint16(len(order))) // count

	headerSize := 6 + 16*len(order)
	offset := uint32(headerSize)
	entries := make([]byte, 0, 16*len(order))
	for _, idx := range order {
		f := frames[idx]
		b := f.Image.Bounds()
		w, h := dimByte(b.Dx()), dimByte(b.Dy())
		e := make([]byte, 16)
		e[0] = w
		e[1] = h
		e[2] = 0 // colorCount
		e[3] = 0 // reserved
		binary.LittleEndian.PutUint16(e[4:6], uint16(f.Hotspot.X))
		binary.LittleEndian.PutUint16(e[6:8], uint16(f.Hotspot.Y))
		binary.LittleEndian.PutUint32(e[8:12], uint32(len(payloads[idx])))
		binary.LittleEndian.PutUint32(e[12:16], offset)
		offset += uint32(len(payloads[idx]))
		entries = append(entries, e...)
	}
	buf.Write(entries)
	for _, idx := range order {
		buf.Write(payloads[idx])
	}
	return buf.Bytes(), nil
}

// stableOrderByWidth returns frame indices sorted by image width
// ascending, using a stable sort so equal widths keep insertion order.
func stableOrderByWidth(frames []Frame) []int {
	order := make([]int, len(frames))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return frames[order[i]].Image.Bounds().Dx() < frames[order[j]].Image.Bounds().Dx()
	})
	return order
}

func validateDims(b image.Rectangle) error {
	w, h := b.Dx(), b.Dy()
	if w <= 0 || w > 256 || h <= 0 || h > 256 {
		return fmt.Errorf("curenc: MalformedBitmap: dimensions %dx%d out of range (0,256]", w, h)
	}
	return nil
}

// dimByte encodes a dimension as the ICONDIRENTRY width/height byte:
// 256 stores as 0, otherwise the literal value.
func dimByte(d int) byte {
	if d == 256 {
		return 0
	}
	return byte(d)
}

// encodePayload emits a PNG payload for 32-bit ARGB input, matching
// spec §9's note that implementations may prefer PNG unconditionally.
// image/png is the out-of-scope "PNG encoding" external collaborator
// named in spec §1; curenc only decides *that* a payload is PNG, not
// how PNG bytes are produced.
func encodePayload(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("curenc: encode payload: %w", err)
	}
	return buf.Bytes(), nil
}

// IsPNGPayload reports whether a CUR/ANI image payload is a PNG
// (recognized by the 8-byte signature) rather than a BMP DIB.
func IsPNGPayload(b []byte) bool {
	return len(b) >= len(pngMagic) && bytes.Equal(b[:len(pngMagic)], pngMagic)
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
