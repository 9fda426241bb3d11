package cursormeta

import (
	"strings"
	"testing"

	"cogentcore.org/mousegen/internal/svgdom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *svgdom.Document {
	t.Helper()
	doc, err := svgdom.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestExtractDefaults(t *testing.T) {
	doc := parse(t, `<svg viewBox="0 0 256 256"></svg>`)
	md, err := Extract(doc, "t.svg")
	require.NoError(t, err)
	assert.Equal(t, DefaultHotspot, md.Hotspot)
	assert.Equal(t, DefaultRootAnchor, md.RootAnchor)
	assert.Empty(t, md.ChildAnchors)
	assert.Equal(t, svgdom.ViewBox{X: 0, Y: 0, W: 256, H: 256}, md.SourceViewBox)
}

func TestExtractHotspotAndAnchor(t *testing.T) {
	doc := parse(t, `<svg viewBox="0 0 256 256">
		<circle id="cursor-hotspot" cx="4" cy="4"/>
		<path id="align-anchor" d="m 0.4,0.7 l 1,1"/>
	</svg>`)
	md, err := Extract(doc, "t.svg")
	require.NoError(t, err)
	assert.Equal(t, Point{X: 4, Y: 4}, md.Hotspot)
	assert.Equal(t, Point{X: 0.4, Y: 0.7}, md.RootAnchor)
}

func TestExtractChildAnchors(t *testing.T) {
	doc := parse(t, `<svg viewBox="0 0 256 256">
		<g id="a"><path class="align-anchor" d="M 10 20"/></g>
		<g id="b"><g><path class="align-anchor" d="m5,6"/></g></g>
	</svg>`)
	md, err := Extract(doc, "t.svg")
	require.NoError(t, err)
	require.Len(t, md.ChildAnchors, 2)

	g0 := doc.Root.Children[0]
	innerG := doc.Root.Children[1].Children[0]
	assert.Equal(t, Point{X: 10, Y: 20}, md.ChildAnchors[g0.Path().Key()])
	assert.Equal(t, Point{X: 5, Y: 6}, md.ChildAnchors[innerG.Path().Key()])
}

func TestExtractMalformedViewBox(t *testing.T) {
	doc := parse(t, `<svg viewBox="not a box"></svg>`)
	_, err := Extract(doc, "t.svg")
	assert.Error(t, err)
}

func TestExtractMissingViewBox(t *testing.T) {
	doc := parse(t, `<svg></svg>`)
	_, err := Extract(doc, "t.svg")
	assert.Error(t, err)
}
