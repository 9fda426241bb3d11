package pipeline

import "errors"

var (
	errNoFrames            = errors.New("no frames recorded")
	errResolutionMismatch  = errors.New("resolution set differs across animation frames")
	errFinalizedTwice      = errors.New("builder already finalized")
	errRenderAfterFinalize = errors.New("renderTargetSize called after saveCurrent")
)
