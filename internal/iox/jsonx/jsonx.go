// Package jsonx provides JSON open/save helpers for mousegen's config
// and sidecar files, mirroring cogentcore.org/core/base/iox/jsonx.
package jsonx

import (
	"encoding/json"
	"io"
	"io/fs"

	"cogentcore.org/mousegen/internal/iox"
)

// Open reads v from filename as JSON.
func Open(v any, filename string) error {
	return iox.Open(v, filename, iox.NewDecoderFunc(json.NewDecoder))
}

// OpenFS reads v from filename in fsys as JSON.
func OpenFS(v any, fsys fs.FS, filename string) error {
	return iox.OpenFS(v, fsys, filename, iox.NewDecoderFunc(json.NewDecoder))
}

// Read decodes v from r as JSON.
func Read(v any, r io.Reader) error {
	return iox.Read(v, r, iox.NewDecoderFunc(json.NewDecoder))
}

// ReadBytes decodes v from data as JSON.
func ReadBytes(v any, data []byte) error {
	return iox.ReadBytes(v, data, iox.NewDecoderFunc(json.NewDecoder))
}

// indentEncoderFunc produces a two-space-indented encoder, matching
// the formatting of hand-edited render.json/animations.json fixtures.
var indentEncoderFunc = func(w io.Writer) iox.Encoder {
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e
}

// Save writes v to filename as indented JSON.
func Save(v any, filename string) error {
	return iox.Save(v, filename, indentEncoderFunc)
}

// SaveAtomic writes v to filename as indented JSON via a temp file and
// rename, so the file is never observed half-written.
func SaveAtomic(v any, filename string) error {
	return iox.SaveAtomic(v, filename, indentEncoderFunc)
}

// Write encodes v to w as indented JSON.
func Write(v any, w io.Writer) error {
	return iox.Write(v, w, indentEncoderFunc)
}

// WriteBytes encodes v as indented JSON bytes.
func WriteBytes(v any) ([]byte, error) {
	return iox.WriteBytes(v, indentEncoderFunc)
}
