package svgdom

import (
	"fmt"
	"strconv"
	"strings"
)

// ViewBox is the parsed form of an SVG "viewBox" attribute.
type ViewBox struct {
	X, Y, W, H float64
}

// ParseViewBox parses a viewBox value accepting whitespace- and
// comma-separated numbers, per spec §4.1. A malformed viewBox is a
// data-format error.
func ParseViewBox(s string) (ViewBox, error) {
	fields := splitNumbers(s)
	if len(fields) != 4 {
		return ViewBox{}, fmt.Errorf("svgdom: malformed viewBox %q: want 4 numbers, got %d", s, len(fields))
	}
	var vals [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return ViewBox{}, fmt.Errorf("svgdom: malformed viewBox %q: %w", s, err)
		}
		vals[i] = v
	}
	return ViewBox{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, nil
}

// String formats the viewBox as "x y w h", using at most 9 fractional
// digits with trailing zeros stripped, in non-scientific notation, as
// required for the origin shifts GridAligner writes back (spec §4.3
// step 3).
func (v ViewBox) String() string {
	return fmt.Sprintf("%s %s %s %s", formatNum(v.X), formatNum(v.Y), formatNum(v.W), formatNum(v.H))
}

// formatNum renders f with at most 9 fractional digits, no trailing
// zeros, and never in scientific notation.
func formatNum(f float64) string {
	s := strconv.FormatFloat(f, 'f', 9, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// splitNumbers splits on any run of whitespace and/or commas.
func splitNumbers(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}
