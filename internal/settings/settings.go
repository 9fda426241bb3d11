// Package settings implements mousegen's runtime-configuration record
// (spec §9, "global defaults via system properties"): environment
// variables and an optional mousegen.toml override file, in place of
// the source design's ambient system-property lookups.
package settings

import (
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// AsyncMode selects the concurrency model of spec §5.
type AsyncMode string

const (
	// ModeSync runs encoders inline on the producer (Mode A).
	ModeSync AsyncMode = "sync"
	// ModePerBuilder runs one task queue per builder (Mode B).
	ModePerBuilder AsyncMode = "per-builder"
	// ModeSingleWorker funnels all encoding through one queue (Mode C).
	ModeSingleWorker AsyncMode = "single-worker"
)

// Settings holds the runtime defaults of spec §6's Environment list.
type Settings struct {
	// CropToContent enables default Xcursor content cropping.
	// Env: xcur.cropToContent
	CropToContent bool `toml:"cropToContent"`

	// AsyncEncoding selects the concurrency mode.
	// Env: mousegen.renderer.asyncEncoding
	AsyncEncoding AsyncMode `toml:"asyncEncoding"`

	// AsyncQueueCapacity bounds each per-builder/single-worker queue.
	// Env: mousegen.renderer.asyncQueueCapacity
	AsyncQueueCapacity int `toml:"asyncQueueCapacity"`

	// AnimRateGain multiplies every animation's frameRate before
	// frame-count/jiffy/delay derivation.
	// Env: bibata.animRateGain
	AnimRateGain float64 `toml:"animRateGain"`
}

// Default returns the built-in defaults, used when neither an
// environment variable nor a mousegen.toml entry overrides them.
func Default() Settings {
	return Settings{
		CropToContent:      false,
		AsyncEncoding:      ModeSync,
		AsyncQueueCapacity: 64,
		AnimRateGain:       1.0,
	}
}

// Load starts from Default, applies a mousegen.toml file at path (if
// it exists; absence is not an error), then applies environment
// variable overrides, which take final precedence.
func Load(path string) (Settings, error) {
	s := Default()
	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &s); err != nil {
			return s, err
		}
	}
	applyEnv(&s)
	return s, nil
}

func applyEnv(s *Settings) {
	if v, ok := os.LookupEnv("xcur.cropToContent"); ok {
		s.CropToContent = parseBool(v, s.CropToContent)
	}
	if v, ok := os.LookupEnv("mousegen.renderer.asyncEncoding"); ok {
		switch AsyncMode(v) {
		case ModeSync, ModePerBuilder, ModeSingleWorker:
			s.AsyncEncoding = AsyncMode(v)
		}
	}
	if v, ok := os.LookupEnv("mousegen.renderer.asyncQueueCapacity"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			s.AsyncQueueCapacity = n
		}
	}
	if v, ok := os.LookupEnv("bibata.animRateGain"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			s.AnimRateGain = f
		}
	}
}

func parseBool(v string, fallback bool) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
