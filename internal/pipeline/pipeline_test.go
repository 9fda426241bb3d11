package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/mousegen/internal/config"
	"cogentcore.org/mousegen/internal/renderer"
	"cogentcore.org/mousegen/internal/svgxform"
)

const testCursorSVG = `<svg viewBox="0 0 256 256">
  <circle id="cursor-hotspot" cx="4" cy="4"/>
  <path id="align-anchor" d="m 0.4,0.7 0,0"/>
  <rect x="0" y="0" width="256" height="256" fill="#ff0000"/>
</svg>`

func writeSourceSVG(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(testCursorSVG), 0o644))
}

func TestBuildStaticCursorProducesAllOutputs(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	writeSourceSVG(t, srcDir, "default.svg")

	spec := VariantSpec{
		Theme:       config.ThemeConfig{Dir: srcDir, Out: outDir},
		Scheme:      config.SizeScheme{Name: "base", CanvasFactor: 1, NominalFactor: 1},
		Resolutions: []int{32},
		Animations:  map[string]config.Animation{},
		Names:       nil,
		AllCursors:  true,
		Stroke:      svgxform.Config{},
		OutDir:      outDir,
	}

	p := New(renderer.NewSVGBackend(), nil)
	require.NoError(t, p.Build(spec, Modes{Windows: true, Xcursor: true, Bitmaps: true}))

	_, err := os.Stat(filepath.Join(outDir, "default.cur"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "default"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "default-032.png"))
	assert.NoError(t, err)
}

func TestBuildAnimatedCursorProducesANIAndXcursor(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	writeSourceSVG(t, srcDir, "wait-001.svg")
	writeSourceSVG(t, srcDir, "wait-002.svg")

	spec := VariantSpec{
		Theme:       config.ThemeConfig{Dir: srcDir, Out: outDir},
		Scheme:      config.SizeScheme{Name: "base", CanvasFactor: 1, NominalFactor: 1},
		Resolutions: []int{32},
		Animations:  map[string]config.Animation{"wait": {Name: "wait", DurationSeconds: 2, FrameRate: 1}},
		Names:       nil,
		AllCursors:  true,
		OutDir:      outDir,
	}

	p := New(renderer.NewSVGBackend(), nil)
	require.NoError(t, p.Build(spec, Modes{Windows: true, Xcursor: true}))

	_, err := os.Stat(filepath.Join(outDir, "wait.ani"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "wait"))
	assert.NoError(t, err)
}

func TestBuildSkipsUnmappedCursorWithoutAllCursors(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	writeSourceSVG(t, srcDir, "mystery.svg")

	spec := VariantSpec{
		Theme:       config.ThemeConfig{Dir: srcDir, Out: outDir},
		Scheme:      config.SizeScheme{Name: "base", CanvasFactor: 1, NominalFactor: 1},
		Resolutions: []int{32},
		Animations:  map[string]config.Animation{},
		Names:       nil,
		AllCursors:  false,
		OutDir:      outDir,
	}

	p := New(renderer.NewSVGBackend(), nil)
	require.NoError(t, p.Build(spec, Modes{Windows: true}))

	_, err := os.Stat(filepath.Join(outDir, "mystery.cur"))
	assert.True(t, os.IsNotExist(err))
}

func TestBuildUniquifiesCollidingTargetNames(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	writeSourceSVG(t, srcDir, "foo.svg")
	writeSourceSVG(t, srcDir, "bar.svg")

	namesPath := filepath.Join(t.TempDir(), "theme-names.json")
	require.NoError(t, os.WriteFile(namesPath, []byte(`{"foo":"default","bar":"default"}`), 0o644))
	names, err := config.LoadNameMap(namesPath)
	require.NoError(t, err)

	spec := VariantSpec{
		Theme:       config.ThemeConfig{Dir: srcDir, Out: outDir},
		Scheme:      config.SizeScheme{Name: "base", CanvasFactor: 1, NominalFactor: 1},
		Resolutions: []int{32},
		Animations:  map[string]config.Animation{},
		Names:       names,
		AllCursors:  false,
		OutDir:      outDir,
	}

	p := New(renderer.NewSVGBackend(), nil)
	require.NoError(t, p.Build(spec, Modes{Windows: true}))

	_, err = os.Stat(filepath.Join(outDir, "default.cur"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "default_2.cur"))
	assert.NoError(t, err)
}

func TestBuildSkipsHotspotStoreForZeroHotspot(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	writeSourceSVG(t, srcDir, "default.svg")

	spec := VariantSpec{
		Theme:       config.ThemeConfig{Dir: srcDir, Out: outDir},
		Scheme:      config.SizeScheme{Name: "base", CanvasFactor: 1, NominalFactor: 1},
		Resolutions: []int{32},
		Animations:  map[string]config.Animation{},
		AllCursors:  true,
		OutDir:      outDir,
	}

	p := New(renderer.NewSVGBackend(), nil)
	require.NoError(t, p.Build(spec, Modes{Windows: true}))

	// hotspot (4,4) in a 256-unit viewBox at target 32 maps to (0,0),
	// which hotspotstore.Record skips recording, so no sidecar file
	// is expected for this particular fixture.
	_, err := os.Stat(filepath.Join(outDir, "cursor-hotspots.json"))
	assert.True(t, os.IsNotExist(err))
}
