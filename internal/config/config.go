// Package config implements the JSON-configured data model of spec
// §3 and §6: theme configs, size schemes, animation definitions, and
// cursor-name mappings loaded from render.json, animations.json, and
// *-names.json.
package config

import (
	"fmt"
	"math"
	"strings"

	"cogentcore.org/mousegen/internal/iox/jsonx"
	"cogentcore.org/mousegen/internal/mgerr"
)

// ColorReplacement is one entry of a ThemeConfig palette.
type ColorReplacement struct {
	Match   string `json:"match"`
	Replace string `json:"replace"`
}

// ThemeConfig is one named entry of render.json.
type ThemeConfig struct {
	Name          string             `json:"-"`
	Dir           string             `json:"dir"`
	Out           string             `json:"out"`
	Cursors       []string           `json:"cursors,omitempty"`
	Sizes         []string           `json:"sizes,omitempty"`
	Resolutions   []int              `json:"resolutions,omitempty"`
	Colors        []ColorReplacement `json:"colors,omitempty"`
	DefaultSubdir string             `json:"defaultSubdir,omitempty"`
	StrokeWidth   float64            `json:"strokeWidth,omitempty"`
	DropShadow    bool               `json:"dropShadow,omitempty"`
}

// Palette converts Colors into the match→replace map ApplyPalette
// expects.
func (t ThemeConfig) Palette() map[string]string {
	if len(t.Colors) == 0 {
		return nil
	}
	m := make(map[string]string, len(t.Colors))
	for _, c := range t.Colors {
		m[c.Match] = c.Replace
	}
	return m
}

// SizeScheme is one named sizing variant (spec §3): canvasFactor
// scales the nominal 256-unit source viewBox before alignment;
// nominalFactor scales the X11 nominal-size report.
type SizeScheme struct {
	Name          string  `json:"-"`
	CanvasFactor  float64 `json:"canvasFactor"`
	NominalFactor float64 `json:"nominalFactor"`
	DisplayName   string  `json:"displayName,omitempty"`
	Permanent     bool    `json:"permanent,omitempty"`
}

// Animation is one named entry of animations.json.
type Animation struct {
	Name            string  `json:"-"`
	DurationSeconds float64 `json:"durationSeconds"`
	FrameRate       float64 `json:"frameRate"`
}

// FrameCount returns ceil(duration * frameRate), the exact frame
// count guaranteed by testable property 9.
func (a Animation) FrameCount() int {
	return int(math.Ceil(a.DurationSeconds * a.FrameRate))
}

// Jiffies returns round(60/frameRate), the CUR/ANI per-frame duration
// unit (spec §3, Open Question: fixed-rate formulation).
func (a Animation) Jiffies() uint32 {
	return uint32(math.Round(60 / a.FrameRate))
}

// JiffiesFromDelay returns round(60*delayMillis/1000), the
// millisecond-based jiffies formulation used when per-frame delays are
// already known (spec §9 Open Questions).
func JiffiesFromDelay(delayMillis uint32) uint32 {
	return uint32(math.Round(60 * float64(delayMillis) / 1000))
}

// DelayMillis returns round(1000/frameRate), the Xcursor per-frame
// delay unit.
func (a Animation) DelayMillis() uint32 {
	return uint32(math.Round(1000 / a.FrameRate))
}

// LoadRenderConfigs reads render.json: theme-name -> ThemeConfig.
func LoadRenderConfigs(path string) (map[string]ThemeConfig, error) {
	var raw map[string]ThemeConfig
	if err := jsonx.Open(&raw, path); err != nil {
		return nil, &mgerr.ConfigError{File: path, Err: err}
	}
	for name, tc := range raw {
		tc.Name = name
		raw[name] = tc
	}
	return raw, nil
}

// LoadAnimations reads animations.json: animation-name -> Animation.
func LoadAnimations(path string) (map[string]Animation, error) {
	var raw map[string]Animation
	if err := jsonx.Open(&raw, path); err != nil {
		return nil, &mgerr.ConfigError{File: path, Err: err}
	}
	for name, a := range raw {
		a.Name = name
		raw[name] = a
	}
	return raw, nil
}

// NameMap is a case-insensitive source-name -> target-name mapping
// loaded from a *-names.json file.
type NameMap struct {
	byLower map[string]string
}

// LoadNameMap reads a *-names.json file.
func LoadNameMap(path string) (*NameMap, error) {
	var raw map[string]string
	if err := jsonx.Open(&raw, path); err != nil {
		return nil, &mgerr.ConfigError{File: path, Err: err}
	}
	nm := &NameMap{byLower: make(map[string]string, len(raw))}
	for src, dst := range raw {
		nm.byLower[strings.ToLower(src)] = dst
	}
	return nm, nil
}

// Lookup resolves sourceName case-insensitively.
func (nm *NameMap) Lookup(sourceName string) (string, bool) {
	if nm == nil {
		return "", false
	}
	v, ok := nm.byLower[strings.ToLower(sourceName)]
	return v, ok
}

// UniqueNamer assigns target names, suffixing "_N" on collision, per
// spec §3's cursor-name-mapping uniqueness rule.
type UniqueNamer struct {
	used map[string]int
}

// NewUniqueNamer returns an empty UniqueNamer.
func NewUniqueNamer() *UniqueNamer {
	return &UniqueNamer{used: map[string]int{}}
}

// Assign returns a name guaranteed unique across this namer's
// lifetime: base on first use, base_2, base_3, ... thereafter.
func (u *UniqueNamer) Assign(base string) string {
	n := u.used[base]
	u.used[base] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s_%d", base, n+1)
}
