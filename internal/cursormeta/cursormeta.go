// Package cursormeta implements CursorMetadata (spec §4.1): extracting
// the hotspot, root alignment anchor, per-group child anchors, and
// source viewBox from a cursor SVG.
package cursormeta

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"cogentcore.org/mousegen/internal/mgerr"
	"cogentcore.org/mousegen/internal/svgdom"
)

// DefaultHotspot is used when circle#cursor-hotspot is missing or its
// cx/cy attributes can't be parsed.
var DefaultHotspot = Point{X: 128, Y: 128}

// DefaultRootAnchor is used when no path#align-anchor is present.
var DefaultRootAnchor = Point{X: 0, Y: 0}

// Point is a source-coordinate-space (x, y) pair.
type Point struct{ X, Y float64 }

// Metadata holds everything CursorMetadata extracts from a source SVG.
type Metadata struct {
	SourceViewBox svgdom.ViewBox
	Hotspot       Point
	RootAnchor    Point
	ChildAnchors  map[string]Point // keyed by svgdom.ElementPath.Key() of the anchor's parent group
}

// Extract reads the document's viewBox/hotspot/anchors. File is used
// only to annotate errors.
func Extract(doc *svgdom.Document, file string) (*Metadata, error) {
	md := &Metadata{
		Hotspot:      DefaultHotspot,
		RootAnchor:   DefaultRootAnchor,
		ChildAnchors: map[string]Point{},
	}

	vb, ok := doc.Root.Get("viewBox")
	if !ok {
		return nil, &mgerr.MalformedSource{File: file, Err: fmt.Errorf("missing viewBox")}
	}
	parsed, err := svgdom.ParseViewBox(vb)
	if err != nil {
		return nil, &mgerr.MalformedSource{File: file, Err: err}
	}
	md.SourceViewBox = parsed

	if hs := doc.Root.FindByID("cursor-hotspot"); hs != nil && hs.Tag == "circle" {
		cx, cxOK := hs.Get("cx")
		cy, cyOK := hs.Get("cy")
		if cxOK && cyOK {
			x, xErr := strconv.ParseFloat(cx, 64)
			y, yErr := strconv.ParseFloat(cy, 64)
			if xErr == nil && yErr == nil {
				md.Hotspot = Point{X: x, Y: y}
			} else {
				slog.Warn("cursormeta: unparsable cursor-hotspot cx/cy, using default", "file", file)
			}
		} else {
			slog.Warn("cursormeta: cursor-hotspot missing cx/cy, using default", "file", file)
		}
	}

	if anchor := doc.Root.FindByID("align-anchor"); anchor != nil && anchor.Tag == "path" {
		d, _ := anchor.Get("d")
		x, y, err := svgdom.ParseMoveAnchor(d)
		if err != nil {
			return nil, &mgerr.MalformedSource{File: file, Err: err}
		}
		md.RootAnchor = Point{X: x, Y: y}
	}

	for _, n := range doc.Root.FindAllByClass("align-anchor") {
		if n.Tag != "path" || n.Parent == nil || n.Parent == doc.Root {
			continue
		}
		d, _ := n.Get("d")
		x, y, err := svgdom.ParseMoveAnchor(d)
		if err != nil {
			return nil, &mgerr.MalformedSource{File: file, Err: err}
		}
		md.ChildAnchors[n.Parent.Path().Key()] = Point{X: x, Y: y}
	}

	return md, nil
}

// ExtractReader parses r as SVG and extracts its metadata in one step.
func ExtractReader(r io.Reader, file string) (*svgdom.Document, *Metadata, error) {
	doc, err := svgdom.Parse(r)
	if err != nil {
		return nil, nil, &mgerr.MalformedSource{File: file, Err: err}
	}
	md, err := Extract(doc, file)
	if err != nil {
		return nil, nil, err
	}
	return doc, md, nil
}
