package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// frameSuffixRe matches a 2-3 digit animation frame suffix preceded by
// a hyphen, at the end of a cursor's base file name, per spec §4.8
// step 3.
var frameSuffixRe = regexp.MustCompile(`^(.*)-(\d{2,3})$`)

// splitAnimationFrame checks whether base (the file name with ".svg"
// already stripped) matches "<animationName>-<frameNum>" for one of
// the known animation names (animationNames maps lowercased name to
// its canonical casing). If so it returns the canonical animation
// name and the parsed frame number; otherwise ok is false and base is
// returned unchanged as the cursor name.
func splitAnimationFrame(base string, animationNames map[string]string) (cursorName string, frameNum int, ok bool) {
	m := frameSuffixRe.FindStringSubmatch(base)
	if m == nil {
		return base, 0, false
	}
	canonical, known := animationNames[strings.ToLower(m[1])]
	if !known {
		return base, 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return base, 0, false
	}
	return canonical, n, true
}
