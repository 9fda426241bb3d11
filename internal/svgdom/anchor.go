package svgdom

import (
	"fmt"
	"regexp"
	"strconv"
)

// anchorRe matches the initial move command of an align-anchor path's
// "d" attribute: optional whitespace, "m"/"M", whitespace, two signed
// decimals separated by whitespace and/or a single comma (spec §4.1).
var anchorRe = regexp.MustCompile(`^\s*[mM]\s*(-?\d+(?:\.\d+)?)\s*,?\s*(-?\d+(?:\.\d+)?)`)

// ParseMoveAnchor extracts the (x, y) of the initial move command from
// a path "d" attribute value.
func ParseMoveAnchor(d string) (x, y float64, err error) {
	m := anchorRe.FindStringSubmatch(d)
	if m == nil {
		return 0, 0, fmt.Errorf("svgdom: malformed anchor path data %q", d)
	}
	x, err = strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("svgdom: malformed anchor path data %q: %w", d, err)
	}
	y, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("svgdom: malformed anchor path data %q: %w", d, err)
	}
	return x, y, nil
}
