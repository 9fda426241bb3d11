package svgdom

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// colorAttrNames are the plain (non-"style") attributes SVGTransform
// looks for literal hex colors in.
var colorAttrNames = map[string]bool{
	"fill": true, "stroke": true, "stop-color": true, "flood-color": true,
	"color": true,
}

// hexColorRe matches #RGB, #RGBA, #RRGGBB or #RRGGBBAA, anywhere
// inside an attribute value (so "url(#x) #fff" style composites still
// find the literal).
var hexColorRe = regexp.MustCompile(`#[0-9a-fA-F]{3,8}\b`)

// ColorPosition identifies one occurrence of a color literal: either a
// whole plain attribute value, or a position inside a "style"
// attribute's declaration list.
type ColorPosition struct {
	Node      *Node
	Attr      string // a plain color attribute name (e.g. "fill", "stroke"), or "style"
	StyleText string // only set when Attr == "style": that attribute's raw value at index time
}

// ColorIndex maps a normalized (lowercased) hex literal to every
// position it was found in, across the whole document.
type ColorIndex map[string][]ColorPosition

// BuildColorIndex walks the document and indexes every literal hex
// color found in a plain color attribute or inside a "style"
// attribute's value, both matched with hexColorRe, so
// "fill:#ff0000;stroke:#000" is indexed the same as separate
// fill="#ff0000" stroke="#000" attributes. Rewriting a "style" value
// (replaceStyleLiterals) tokenizes it with tdewolff/parse/v2/css.
func BuildColorIndex(root *Node) ColorIndex {
	idx := ColorIndex{}
	root.Walk(func(n *Node) bool {
		for _, a := range n.Attrs {
			if colorAttrNames[a.Name] {
				for _, lit := range hexColorRe.FindAllString(a.Value, -1) {
					key := strings.ToLower(lit)
					idx[key] = append(idx[key], ColorPosition{Node: n, Attr: a.Name})
				}
			} else if a.Name == "style" {
				for _, lit := range hexColorRe.FindAllString(a.Value, -1) {
					key := strings.ToLower(lit)
					idx[key] = append(idx[key], ColorPosition{Node: n, Attr: "style", StyleText: a.Value})
				}
			}
		}
		return true
	})
	return idx
}

// ApplyPalette rewrites every indexed literal present in palette
// (match -> replace, matched case-insensitively on the hex literal) in
// place on the document, driven by the same in-memory ColorIndex
// BuildColorIndex exposes for inspection, rather than re-walking every
// node's attributes from scratch. Literals absent from palette are
// left intact. Applying an empty palette is a no-op; applying the same
// palette twice is idempotent, since each (node, attr) pair is
// rewritten from its live value rather than the index's StyleText
// snapshot.
func ApplyPalette(root *Node, palette map[string]string) {
	if len(palette) == 0 {
		return
	}
	norm := make(map[string]string, len(palette))
	for k, v := range palette {
		norm[strings.ToLower(k)] = v
	}

	idx := BuildColorIndex(root)
	rewritten := map[*Node]map[string]bool{}
	for lit, positions := range idx {
		if _, ok := norm[lit]; !ok {
			continue
		}
		for _, pos := range positions {
			if rewritten[pos.Node][pos.Attr] {
				continue
			}
			if rewritten[pos.Node] == nil {
				rewritten[pos.Node] = map[string]bool{}
			}
			rewritten[pos.Node][pos.Attr] = true
			rewriteAttr(pos.Node, pos.Attr, norm)
		}
	}
}

// rewriteAttr replaces every palette-matched literal in node's named
// attribute, re-reading its current value so repeated calls across
// overlapping ColorPosition entries stay idempotent.
func rewriteAttr(n *Node, attr string, norm map[string]string) {
	for i, a := range n.Attrs {
		if a.Name != attr {
			continue
		}
		if attr == "style" {
			n.Attrs[i].Value = replaceStyleLiterals(a.Value, norm)
		} else {
			n.Attrs[i].Value = replaceLiterals(a.Value, norm)
		}
		return
	}
}

func replaceLiterals(value string, norm map[string]string) string {
	return hexColorRe.ReplaceAllStringFunc(value, func(lit string) string {
		if rep, ok := norm[strings.ToLower(lit)]; ok {
			return rep
		}
		return lit
	})
}

// replaceStyleLiterals re-tokenizes a "style" attribute value with the
// CSS lexer and substitutes hash-token colors found in norm, leaving
// all other tokens (property names, punctuation, non-color values)
// untouched.
func replaceStyleLiterals(value string, norm map[string]string) string {
	l := css.NewLexer(parse.NewInput(bytes.NewBufferString(value)))
	var out bytes.Buffer
	for {
		tt, text := l.Next()
		if tt == css.ErrorToken {
			break
		}
		s := string(text)
		if tt == css.HashToken {
			if rep, ok := norm[strings.ToLower(s)]; ok {
				s = rep
			}
		}
		out.WriteString(s)
	}
	return out.String()
}
