package pipeline

import (
	"image"
	"sort"

	"cogentcore.org/mousegen/internal/errorsx"
	"cogentcore.org/mousegen/internal/mgerr"
)

// resFrame is one rasterized image for one resolution within one
// animation frame (or the sole frame of a static cursor).
type resFrame struct {
	resolution int
	raster     image.Image
	hotspot    image.Point
}

// builder accumulates the rasters for one cursor build (spec §4.8's
// lifecycle: setFile -> renderTargetSize* -> saveCurrent). Frames are
// appended in ascending frame-number order by the caller; within a
// frame, resolutions are appended in request order, matching the
// assembly-ordering guarantee of spec §4.8.
type builder struct {
	cursorName string
	targetName string
	animated   bool
	finished   bool // set by markFinished; blocks further addFrame calls
	frames     map[int][]resFrame // frame number (0 for static) -> per-resolution images, in append order
	order      []int              // frame numbers in first-seen order
}

func newBuilder(cursorName, targetName string, animated bool) *builder {
	return &builder{cursorName: cursorName, targetName: targetName, animated: animated, frames: map[int][]resFrame{}}
}

// addFrame records one rasterized resolution for frameNum. Calling it
// after the builder has been finished is programmer error (spec
// §4.8's setFile -> renderTargetSize* -> saveCurrent lifecycle), so it
// panics rather than silently corrupting already-encoded output.
func (b *builder) addFrame(frameNum, resolution int, raster image.Image, hotspot image.Point) {
	if b.finished {
		errorsx.Must(&mgerr.InvalidState{Msg: errRenderAfterFinalize.Error()})
	}
	if _, ok := b.frames[frameNum]; !ok {
		b.order = append(b.order, frameNum)
	}
	b.frames[frameNum] = append(b.frames[frameNum], resFrame{resolution: resolution, raster: raster, hotspot: hotspot})
}

// markFinished enforces the single-finalization half of spec §4.8's
// lifecycle: a builder may be finished (saveCurrent) exactly once.
func (b *builder) markFinished() error {
	if b.finished {
		return &mgerr.InvalidState{Msg: errFinalizedTwice.Error()}
	}
	b.finished = true
	return nil
}

// resolutionSet reports every distinct resolution recorded in
// frameNum, used by validate to check the "identical resolution set
// across frames" invariant.
func (b *builder) resolutionSet(frameNum int) map[int]bool {
	set := map[int]bool{}
	for _, rf := range b.frames[frameNum] {
		set[rf.resolution] = true
	}
	return set
}

// validate enforces spec §3's animated-cursor invariant: the set of
// resolutions present must be identical across every frame number.
func (b *builder) validate() error {
	if len(b.order) == 0 {
		return &mgerr.MalformedBitmap{Cursor: b.cursorName, Err: errNoFrames}
	}
	if !b.animated {
		return nil
	}
	want := b.resolutionSet(b.order[0])
	for _, fn := range b.order[1:] {
		got := b.resolutionSet(fn)
		if len(got) != len(want) {
			return &mgerr.MalformedBitmap{Cursor: b.cursorName, Err: errResolutionMismatch}
		}
		for r := range want {
			if !got[r] {
				return &mgerr.MalformedBitmap{Cursor: b.cursorName, Err: errResolutionMismatch}
			}
		}
	}
	return nil
}

// sortedFrameNumbers returns the recorded frame numbers in ascending
// order.
func (b *builder) sortedFrameNumbers() []int {
	out := append([]int(nil), b.order...)
	sort.Ints(out)
	return out
}

// byResolution returns every recorded image grouped by resolution (an
// unordered map), each group in ascending frame-number order.
func (b *builder) byResolution() map[int][]resFrame {
	out := map[int][]resFrame{}
	for _, fn := range b.sortedFrameNumbers() {
		for _, rf := range b.frames[fn] {
			out[rf.resolution] = append(out[rf.resolution], rf)
		}
	}
	return out
}
