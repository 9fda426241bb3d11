package svgdom

import (
	"fmt"
	"strconv"
	"strings"
)

// PathSegment is one (tag, sibling-index-of-same-tag) step of an
// [ElementPath].
type PathSegment struct {
	Tag   string
	Index int
}

// ElementPath is an ordered list of [PathSegment] from the document
// root to a node. Two paths are equal iff their segments are equal in
// order, matching spec's "equality and hashing are by value" — Go
// slices aren't directly comparable/hashable, so callers needing a map
// key should call [ElementPath.Key] instead of using the path itself.
type ElementPath []PathSegment

// Key returns a canonical string encoding of the path, comparable and
// usable directly as a map key. Used by GridAligner and SVGTransform
// side-tables keyed by a group's structural position rather than its
// (unstable, post-clone) pointer identity.
func (p ElementPath) Key() string {
	var b strings.Builder
	for i, seg := range p {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(seg.Tag)
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(seg.Index))
		b.WriteByte(']')
	}
	return b.String()
}

func (p ElementPath) String() string { return p.Key() }

// Equal reports whether p and o have identical segments in the same
// order.
func (p ElementPath) Equal(o ElementPath) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// ParseKey parses the string produced by [ElementPath.Key] back into
// an ElementPath.
func ParseKey(s string) (ElementPath, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, "/")
	out := make(ElementPath, 0, len(parts))
	for _, part := range parts {
		i := strings.IndexByte(part, '[')
		if i < 0 || !strings.HasSuffix(part, "]") {
			return nil, fmt.Errorf("svgdom: bad path segment %q", part)
		}
		idx, err := strconv.Atoi(part[i+1 : len(part)-1])
		if err != nil {
			return nil, fmt.Errorf("svgdom: bad path segment %q: %w", part, err)
		}
		out = append(out, PathSegment{Tag: part[:i], Index: idx})
	}
	return out, nil
}
