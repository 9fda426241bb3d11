package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/mousegen/internal/config"
)

func TestBuildStrokeConfigParsesWidthAndLabel(t *testing.T) {
	cfg, err := buildStrokeConfig(flags{strokeWidth: "2.5:thin"})
	require.NoError(t, err)
	assert.Equal(t, 2.5, cfg.StrokeWidth)
}

func TestBuildStrokeConfigThinStrokeAutoZeroesWidth(t *testing.T) {
	cfg, err := buildStrokeConfig(flags{thinStroke: "auto", thinStrokeSet: true})
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.StrokeWidth)
}

func TestBuildStrokeConfigThinStrokeExplicitValue(t *testing.T) {
	cfg, err := buildStrokeConfig(flags{thinStroke: "1.25", thinStrokeSet: true})
	require.NoError(t, err)
	assert.Equal(t, 1.25, cfg.StrokeWidth)
}

func TestBuildStrokeConfigRejectsBadWidth(t *testing.T) {
	_, err := buildStrokeConfig(flags{strokeWidth: "nope"})
	assert.Error(t, err)
}

func TestBuildStrokeConfigExpandFillAutoDefaultsToOne(t *testing.T) {
	cfg, err := buildStrokeConfig(flags{expandFill: "auto", expandFillSet: true})
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.ExpandFillLimit)
}

func TestBuildStrokeConfigPointerShadowSetsShadow(t *testing.T) {
	cfg, err := buildStrokeConfig(flags{pointerShadow: true})
	require.NoError(t, err)
	require.NotNil(t, cfg.Shadow)
	assert.False(t, cfg.ShadowAsFilter)
}

func TestResolveOutDirUsesThemeOutWhenSet(t *testing.T) {
	dir := resolveOutDir("build", config.ThemeConfig{Out: "custom"}, "theme1")
	assert.Equal(t, "build/custom", dir)
}

func TestResolveOutDirFallsBackToThemeName(t *testing.T) {
	dir := resolveOutDir("build", config.ThemeConfig{}, "theme1")
	assert.Equal(t, "build/theme1", dir)
}
