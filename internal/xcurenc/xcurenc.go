// Package xcurenc implements XcurEncoder (spec §4.6): encoding and
// decoding X11 Xcursor files, including table-of-contents ordering,
// content cropping, and nominal-size computation.
package xcurenc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"log/slog"
	"math"
	"sort"

	"cogentcore.org/mousegen/internal/mgerr"
)

const (
	magic         = "Xcur"
	fileHeaderLen = 16
	tocEntryLen   = 12
	chunkHeaderLen = 16
	imageChunkLen  = 36 // chunkHeaderLen + 5*4

	chunkTypeImage   uint32 = 0xFFFD0002
	chunkVersionImage uint32 = 1
	fileVersion      uint32 = 0x00010000

	maxDim = 0x7FFF
)

// Image is one decoded or to-be-encoded Xcursor image chunk.
type Image struct {
	Width, Height int
	Hotspot       image.Point
	DelayMillis   uint32
	NominalSize   uint32
	// Pixels is row-major ARGB-premultiplied, little-endian on the
	// wire; in memory each entry is 0xAARRGGBB.
	Pixels []uint32
}

// NominalSize computes the Xcursor subtype for a raster of size (w,h)
// at the given nominalFactor: ((round((w+h)/2*nominalFactor))+1)&^1,
// i.e. rounded up to the next even integer (spec §4.6).
func NominalSize(w, h int, nominalFactor float64) uint32 {
	avg := float64(w+h) / 2 * nominalFactor
	n := int64(math.Round(avg)) + 1
	return uint32(n) &^ 1
}

// validate checks the per-image constraints of spec §4.6.
func (im Image) validate() error {
	if im.Width < 1 || im.Width > maxDim || im.Height < 1 || im.Height > maxDim {
		return fmt.Errorf("xcurenc: MalformedBitmap: dimensions %dx%d out of [1,%d]", im.Width, im.Height, maxDim)
	}
	if im.Hotspot.X < 0 || im.Hotspot.X >= im.Width {
		return fmt.Errorf("xcurenc: MalformedBitmap: xhot %d out of [0,%d)", im.Hotspot.X, im.Width)
	}
	if im.Hotspot.Y < 0 || im.Hotspot.Y >= im.Height {
		return fmt.Errorf("xcurenc: MalformedBitmap: yhot %d out of [0,%d)", im.Hotspot.Y, im.Height)
	}
	if len(im.Pixels) != im.Width*im.Height {
		return fmt.Errorf("xcurenc: MalformedBitmap: got %d pixels, want %d", len(im.Pixels), im.Width*im.Height)
	}
	return nil
}

// Encode assembles an Xcursor file from images, in the given order.
// TOC entries are sorted by nominalSize (subType) ascending with a
// stable sort, so equal-size entries keep insertion order (testable
// property 3 / scenario S4); image chunk bytes are written physically
// in that same sorted order.
func Encode(images []Image) ([]byte, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("xcurenc: Encode: no images")
	}
	for _, im := range images {
		if err := im.validate(); err != nil {
			return nil, err
		}
	}

	order := make([]int, len(images))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return images[order[a]].NominalSize < images[order[b]].NominalSize
	})

	tocCount := len(order)
	base := uint32(fileHeaderLen + tocEntryLen*tocCount)
	chunkBytes := make([][]byte, tocCount)
	offset := base
	toc := make([]byte, 0, tocEntryLen*tocCount)
	for _, idx := range order {
		im := images[idx]
		cb := encodeImageChunk(im)
		chunkBytes[idx] = cb
		entry := make([]byte, tocEntryLen)
		binary.LittleEndian.PutUint32(entry[0:4], chunkTypeImage)
		binary.LittleEndian.PutUint32(entry[4:8], im.NominalSize)
		binary.LittleEndian.PutUint32(entry[8:12], offset)
		toc = append(toc, entry...)
		offset += uint32(len(cb))
	}

	var out bytes.Buffer
	out.WriteString(magic)
	writeU32(&out, fileHeaderLen)
	writeU32(&out, fileVersion)
	writeU32(&out, uint32(tocCount))
	out.Write(toc)
	for _, idx := range order {
		out.Write(chunkBytes[idx])
	}
	return out.Bytes(), nil
}

func encodeImageChunk(im Image) []byte {
	buf := make([]byte, imageChunkLen+4*len(im.Pixels))
	binary.LittleEndian.PutUint32(buf[0:4], imageChunkLen)
	binary.LittleEndian.PutUint32(buf[4:8], chunkTypeImage)
	binary.LittleEndian.PutUint32(buf[8:12], im.NominalSize)
	binary.LittleEndian.PutUint32(buf[12:16], chunkVersionImage)
	binary.LittleEndian.PutUint32(buf[16:20], uint32(im.Width))
	binary.LittleEndian.PutUint32(buf[20:24], uint32(im.Height))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(im.Hotspot.X))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(im.Hotspot.Y))
	binary.LittleEndian.PutUint32(buf[32:36], im.DelayMillis)
	for i, px := range im.Pixels {
		binary.LittleEndian.PutUint32(buf[imageChunkLen+4*i:imageChunkLen+4*i+4], px)
	}
	return buf
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

// tocEntry is a parsed table-of-contents row.
type tocEntry struct {
	chunkType, subtype uint32
	offset             uint32
}

// Decode parses an Xcursor file. It reads the TOC, sorts entries by
// file offset, and emits image chunks in that file order, per spec
// §4.6's decoder description. onUnknownChunk, if non-nil, is invoked
// for every non-image chunk type encountered, without aborting the
// parse.
func Decode(data []byte, onUnknownChunk func(chunkType uint32, offset int64)) ([]Image, error) {
	if len(data) < fileHeaderLen {
		return nil, &mgerr.MalformedContainer{Offset: 0, Err: fmt.Errorf("file too short for header")}
	}
	if string(data[0:4]) != magic {
		return nil, &mgerr.MalformedContainer{Offset: 0, Err: fmt.Errorf("bad magic %q, not a cursor file", data[0:4])}
	}
	headerSize := binary.LittleEndian.Uint32(data[4:8])
	if headerSize != fileHeaderLen {
		return nil, &mgerr.MalformedContainer{Offset: 4, Err: fmt.Errorf("unsupported header size %d", headerSize)}
	}
	tocCount := binary.LittleEndian.Uint32(data[12:16])

	entries := make([]tocEntry, 0, tocCount)
	for i := uint32(0); i < tocCount; i++ {
		start := fileHeaderLen + int(i)*tocEntryLen
		if start+tocEntryLen > len(data) {
			return nil, &mgerr.MalformedContainer{Offset: int64(start), Err: fmt.Errorf("truncated TOC entry %d", i)}
		}
		e := tocEntry{
			chunkType: binary.LittleEndian.Uint32(data[start : start+4]),
			subtype:   binary.LittleEndian.Uint32(data[start+4 : start+8]),
			offset:    binary.LittleEndian.Uint32(data[start+8 : start+12]),
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].offset < entries[j].offset })

	var images []Image
	var prevEnd int64 = fileHeaderLen + int64(tocCount)*tocEntryLen
	for _, e := range entries {
		off := int64(e.offset)
		if off < prevEnd {
			return nil, &mgerr.MalformedContainer{Offset: off, Err: fmt.Errorf("overlapping or backward chunk offset")}
		}
		if off+chunkHeaderLen > int64(len(data)) {
			return nil, &mgerr.MalformedContainer{Offset: off, Err: fmt.Errorf("truncated chunk header")}
		}
		chHeaderSize := binary.LittleEndian.Uint32(data[off : off+4])
		chType := binary.LittleEndian.Uint32(data[off+4 : off+8])
		chSubtype := binary.LittleEndian.Uint32(data[off+8 : off+12])

		if chType != chunkTypeImage {
			if onUnknownChunk != nil {
				onUnknownChunk(chType, off)
			}
			// Without a type-specific length table we cannot safely
			// skip past an unknown chunk's body; stop tracking
			// overlap from here, matching "unknown chunk types are
			// reported but do not abort parsing."
			prevEnd = off + chunkHeaderLen
			continue
		}
		if chHeaderSize != imageChunkLen {
			return nil, &mgerr.MalformedContainer{Offset: off, Err: fmt.Errorf("unsupported image chunk header size %d", chHeaderSize)}
		}
		if off+imageChunkLen > int64(len(data)) {
			return nil, &mgerr.MalformedContainer{Offset: off, Err: fmt.Errorf("truncated image chunk header")}
		}
		width := binary.LittleEndian.Uint32(data[off+16 : off+20])
		height := binary.LittleEndian.Uint32(data[off+20 : off+24])
		xhot := binary.LittleEndian.Uint32(data[off+24 : off+28])
		yhot := binary.LittleEndian.Uint32(data[off+28 : off+32])
		delay := binary.LittleEndian.Uint32(data[off+32 : off+36])

		pixelsStart := off + imageChunkLen
		pixelsLen := int64(width) * int64(height)
		pixelsEnd := pixelsStart + pixelsLen*4
		if pixelsEnd > int64(len(data)) {
			return nil, &mgerr.MalformedContainer{Offset: off, Err: fmt.Errorf("truncated pixel data")}
		}
		pixels := make([]uint32, pixelsLen)
		for i := int64(0); i < pixelsLen; i++ {
			pixels[i] = binary.LittleEndian.Uint32(data[pixelsStart+4*i : pixelsStart+4*i+4])
		}

		images = append(images, Image{
			Width:       int(width),
			Height:      int(height),
			Hotspot:     image.Pt(int(xhot), int(yhot)),
			DelayMillis: delay,
			NominalSize: chSubtype,
			Pixels:      pixels,
		})
		prevEnd = pixelsEnd
	}
	return images, nil
}

// GroupByNominalSize groups a decoded image list (already in file
// order) into per-resolution animation frame sequences: images
// sharing a nominalSize are consecutive frames 1..N of that
// resolution, since Encode's stable sort preserves insertion order
// within equal subtypes.
func GroupByNominalSize(images []Image) map[uint32][]Image {
	groups := map[uint32][]Image{}
	for _, im := range images {
		groups[im.NominalSize] = append(groups[im.NominalSize], im)
	}
	for size, frames := range groups {
		if len(frames) > 1 {
			allZero := true
			for _, f := range frames {
				if f.DelayMillis != 0 {
					allZero = false
					break
				}
			}
			if allZero {
				slog.Warn("xcurenc: animated group has zero delay on every frame", "nominalSize", size, "frames", len(frames))
			}
		}
	}
	return groups
}
