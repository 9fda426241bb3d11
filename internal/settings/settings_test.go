package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValues(t *testing.T) {
	s := Default()
	assert.False(t, s.CropToContent)
	assert.Equal(t, ModeSync, s.AsyncEncoding)
	assert.Equal(t, 1.0, s.AnimRateGain)
}

func TestLoadAppliesTOMLOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mousegen.toml")
	require.NoError(t, os.WriteFile(path, []byte("cropToContent = true\nanimRateGain = 2.0\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.True(t, s.CropToContent)
	assert.Equal(t, 2.0, s.AnimRateGain)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestEnvOverridesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mousegen.toml")
	require.NoError(t, os.WriteFile(path, []byte("animRateGain = 2.0\n"), 0o644))

	t.Setenv("bibata.animRateGain", "3.5")
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3.5, s.AnimRateGain)
}

func TestEnvSelectsAsyncMode(t *testing.T) {
	t.Setenv("mousegen.renderer.asyncEncoding", "single-worker")
	s, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, ModeSingleWorker, s.AsyncEncoding)
}

func TestEnvIgnoresInvalidAsyncMode(t *testing.T) {
	t.Setenv("mousegen.renderer.asyncEncoding", "bogus")
	s, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, ModeSync, s.AsyncEncoding)
}
