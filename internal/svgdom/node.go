// Package svgdom implements the small mutable SVG tree mousegen needs
// to read cursor metadata, rewrite colors/strokes/viewBox, and
// serialize the result back to bytes for the rendering backend.
//
// The design follows the "tagged-node arena" option from the design
// notes: nodes are addressed by pointer while alive, and independently
// by [ElementPath], a string-encoded structural path stable across
// copies of the tree, used as the side-table key for child-anchor
// offsets instead of relying on node identity.
package svgdom

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Attr is a single XML attribute, order-preserving.
type Attr struct {
	Name  string
	Value string
}

// Node is one element in the tree. Text content (if any) is kept
// verbatim in Text and is not re-indented on serialization.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []*Node
	Text     string
	Parent   *Node

	path ElementPath // computed once, during Parse
}

// Document is a parsed SVG tree.
type Document struct {
	Root *Node
}

// Get returns the value of the named attribute and whether it was
// present.
func (n *Node) Get(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Set replaces the named attribute's value, appending it if absent.
func (n *Node) Set(name, value string) {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Path returns the node's stable [ElementPath].
func (n *Node) Path() ElementPath { return n.path }

// Walk calls fn for n and every descendant, in document order.
// Walk stops descending into a subtree when fn returns false for its
// root, but continues with subsequent siblings.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindByID returns the first descendant (including n) with the given
// "id" attribute, or nil.
func (n *Node) FindByID(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if v, ok := c.Get("id"); ok && v == id {
			found = c
		}
		return found == nil
	})
	return found
}

// FindAllByClass returns every descendant (including n) whose "class"
// attribute contains the given class token, in document order.
func (n *Node) FindAllByClass(class string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if v, ok := c.Get("class"); ok {
			for _, tok := range strings.Fields(v) {
				if tok == class {
					out = append(out, c)
					break
				}
			}
		}
		return true
	})
	return out
}

// Parse decodes an SVG document from r. encoding/xml never fetches
// external entities or DTDs over the network, so no further
// precaution is needed to keep malicious external references from
// being resolved. With Strict off, an unknown general entity such as
// "&foo;" is kept as literal text rather than failing the parse.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false // tolerate unescaped "&" etc. the way browsers do

	var root *Node
	var stack []*Node
	siblingCounts := []map[string]int{}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("svgdom: parse: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Tag: t.Name.Local}
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				n.Parent = parent
				parent.Children = append(parent.Children, n)
				idx := siblingCounts[len(siblingCounts)-1][n.Tag]
				siblingCounts[len(siblingCounts)-1][n.Tag] = idx + 1
				n.path = append(append(ElementPath{}, parent.path...), PathSegment{Tag: n.Tag, Index: idx})
			} else {
				n.path = ElementPath{{Tag: n.Tag, Index: 0}}
				root = n
			}
			stack = append(stack, n)
			siblingCounts = append(siblingCounts, map[string]int{})
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("svgdom: parse: unbalanced end element %q", t.Name.Local)
			}
			stack = stack[:len(stack)-1]
			siblingCounts = siblingCounts[:len(siblingCounts)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("svgdom: parse: no root element")
	}
	return &Document{Root: root}, nil
}

// Clone returns a deep copy of the document, suitable for producing
// an independent variant per theme/resolution without mutating the
// cached source tree.
func (d *Document) Clone() *Document {
	return &Document{Root: cloneNode(d.Root, nil)}
}

func cloneNode(n *Node, parent *Node) *Node {
	c := &Node{
		Tag:    n.Tag,
		Attrs:  append([]Attr(nil), n.Attrs...),
		Text:   n.Text,
		Parent: parent,
		path:   n.path,
	}
	for _, ch := range n.Children {
		c.Children = append(c.Children, cloneNode(ch, c))
	}
	return c
}

// Serialize writes the document back out as XML. Self-closing tags are
// used for childless, textless elements.
func (d *Document) Serialize(w io.Writer) error {
	return writeNode(w, d.Root)
}

// Bytes serializes the document and returns the resulting bytes.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeNode(w io.Writer, n *Node) error {
	if _, err := fmt.Fprintf(w, "<%s", n.Tag); err != nil {
		return err
	}
	for _, a := range n.Attrs {
		if _, err := fmt.Fprintf(w, " %s=%q", a.Name, escapeAttr(a.Value)); err != nil {
			return err
		}
	}
	if len(n.Children) == 0 && n.Text == "" {
		_, err := fmt.Fprint(w, "/>")
		return err
	}
	if _, err := fmt.Fprint(w, ">"); err != nil {
		return err
	}
	if n.Text != "" {
		if _, err := fmt.Fprint(w, xmlEscapeText(n.Text)); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := writeNode(w, c); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "</%s>", n.Tag)
	return err
}

func escapeAttr(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func xmlEscapeText(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
