// Package fsx provides the filesystem walking helpers the render
// pipeline needs, adapted from cogentcore.org/core/base/fsx's
// Files/Filenames/Dirs trio (case-insensitive extension filter, sorted
// output) and extended with the two-level symlink-following walk
// spec'd for SVG source directories.
package fsx

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Filenames returns the sorted file names in path with one of the
// given extensions (case-insensitive), or all files if extensions is
// empty. Returns nil if path cannot be read.
func Filenames(path string, extensions ...string) []string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !hasExt(e.Name(), extensions) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func hasExt(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := filepath.Ext(name)
	for _, e := range extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// WalkSVGs walks srcDir to a depth of two (srcDir itself and its
// immediate subdirectories), following symlinks, and returns the
// paths, joined under srcDir as given, of all ".svg" files found
// (case-insensitive),
// deduplicated by resolved real path so a symlink loop or a symlinked
// duplicate is only visited once. Order is deterministic: directories
// and files are each visited in lexical order.
func WalkSVGs(srcDir string) ([]string, error) {
	seen := map[string]bool{}
	var out []string

	addDir := func(dir string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		sort.Strings(names)
		for _, name := range names {
			full := filepath.Join(dir, name)
			if !strings.EqualFold(filepath.Ext(name), ".svg") {
				continue
			}
			real, err := filepath.EvalSymlinks(full)
			if err != nil {
				real = full
			}
			if seen[real] {
				continue
			}
			info, err := os.Stat(full)
			if err != nil || info.IsDir() {
				continue
			}
			seen[real] = true
			out = append(out, full)
		}
		return nil
	}

	if err := addDir(srcDir); err != nil {
		return nil, err
	}

	topEntries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, err
	}
	subdirs := make([]string, 0, len(topEntries))
	for _, e := range topEntries {
		full := filepath.Join(srcDir, e.Name())
		info, statErr := os.Stat(full)
		if statErr != nil || !info.IsDir() {
			continue
		}
		subdirs = append(subdirs, full)
	}
	sort.Strings(subdirs)
	for _, d := range subdirs {
		real, err := filepath.EvalSymlinks(d)
		if err == nil {
			if seen["dir:"+real] {
				continue
			}
			seen["dir:"+real] = true
		}
		if err := addDir(d); err != nil {
			continue
		}
	}
	return out, nil
}
