// Package iox provides shared open/save helpers for the config and
// sidecar file formats mousegen reads and writes (JSON today), modeled
// on cogentcore.org/core/base/iox: a decoder/encoder factory is passed
// in by the format-specific package (jsonx) so this package does not
// need to import encoding/json itself.
package iox

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Decoder is anything that can decode a single value, as returned by
// json.NewDecoder.
type Decoder interface {
	Decode(v any) error
}

// Encoder is anything that can encode a single value, as returned by
// json.NewEncoder.
type Encoder interface {
	Encode(v any) error
}

// DecoderFunc constructs a [Decoder] reading from r.
type DecoderFunc func(r io.Reader) Decoder

// EncoderFunc constructs an [Encoder] writing to w.
type EncoderFunc func(w io.Writer) Encoder

// NewDecoderFunc adapts a constructor such as json.NewDecoder, whose
// return type already satisfies [Decoder], into a [DecoderFunc].
func NewDecoderFunc[T Decoder](f func(r io.Reader) T) DecoderFunc {
	return func(r io.Reader) Decoder { return f(r) }
}

// NewEncoderFunc adapts a constructor such as json.NewEncoder into an
// [EncoderFunc].
func NewEncoderFunc[T Encoder](f func(w io.Writer) T) EncoderFunc {
	return func(w io.Writer) Encoder { return f(w) }
}

// Open reads v from filename using dec.
func Open(v any, filename string, dec DecoderFunc) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return Read(v, f, dec)
}

// OpenFS reads v from filename in fsys using dec.
func OpenFS(v any, fsys fs.FS, filename string, dec DecoderFunc) error {
	f, err := fsys.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return Read(v, f, dec)
}

// OpenFiles reads v successively from each of filenames, so that later
// files overwrite fields set by earlier ones.
func OpenFiles(v any, filenames []string, dec DecoderFunc) error {
	for _, fn := range filenames {
		if err := Open(v, fn, dec); err != nil {
			return err
		}
	}
	return nil
}

// Read decodes v from r using dec.
func Read(v any, r io.Reader, dec DecoderFunc) error {
	return dec(r).Decode(v)
}

// ReadBytes decodes v from data using dec.
func ReadBytes(v any, data []byte, dec DecoderFunc) error {
	return Read(v, bytes.NewReader(data), dec)
}

// Save writes v to filename using enc, truncating any existing file.
func Save(v any, filename string, enc EncoderFunc) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(v, f, enc)
}

// SaveAtomic writes v to filename by encoding to a temporary file in
// the same directory and renaming it over filename, so that a reader
// never observes a partially written file. Used by hotspotstore, whose
// finalize step must not corrupt cursor-hotspots.json on a crash
// mid-write.
func SaveAtomic(v any, filename string, enc EncoderFunc) error {
	tmp := filename + ".tmp"
	if err := Save(v, tmp, enc); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, filename); err != nil {
		return fmt.Errorf("iox: atomic rename %s -> %s: %w", tmp, filename, err)
	}
	return nil
}

// Write encodes v to w using enc.
func Write(v any, w io.Writer, enc EncoderFunc) error {
	return enc(w).Encode(v)
}

// WriteBytes encodes v using enc and returns the resulting bytes.
func WriteBytes(v any, enc EncoderFunc) ([]byte, error) {
	b := &bytes.Buffer{}
	if err := Write(v, b, enc); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
