// Package hotspotstore implements HotspotStore (spec §4.4): a
// per-output-directory persistent map of (cursor, resolution) to
// hotspot, serialized as cursor-hotspots.json.
package hotspotstore

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"cogentcore.org/mousegen/internal/iox/jsonx"
)

// Store is the hotspot map for one output directory. Reading is
// case-insensitive on cursor name; writes always use the first-seen
// casing of a given cursor name.
type Store struct {
	dir  string
	data map[string]map[int]image.Point // lowercased cursor name -> resolution -> hotspot
	name map[string]string              // lowercased cursor name -> display name to write
}

// fileName is the sidecar file name written into every output
// directory.
const fileName = "cursor-hotspots.json"

// New creates an empty store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir, data: map[string]map[int]image.Point{}, name: map[string]string{}}
}

// Load creates a store rooted at dir and reads any existing
// cursor-hotspots.json into it.
func Load(dir string) (*Store, error) {
	s := New(dir)
	path := filepath.Join(dir, fileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}
	raw := map[string]map[string]string{}
	if err := jsonx.Open(&raw, path); err != nil {
		return nil, fmt.Errorf("hotspotstore: load %s: %w", path, err)
	}
	for cursor, resMap := range raw {
		key := strings.ToLower(cursor)
		s.name[key] = cursor
		if s.data[key] == nil {
			s.data[key] = map[int]image.Point{}
		}
		for resStr, coords := range resMap {
			res, err := strconv.Atoi(resStr)
			if err != nil {
				continue
			}
			pt, err := parseCoords(coords)
			if err != nil {
				continue
			}
			s.data[key][res] = pt
		}
	}
	return s, nil
}

func parseCoords(s string) (image.Point, error) {
	var x, y int
	if _, err := fmt.Sscanf(s, "%d %d", &x, &y); err != nil {
		return image.Point{}, err
	}
	return image.Pt(x, y), nil
}

// Record stores the hotspot for (cursorName, resolution), unless it is
// exactly (0, 0), per spec §4.4 ("only non-(0,0) hotspots are
// recorded").
func (s *Store) Record(cursorName string, resolution int, hotspot image.Point) {
	if hotspot.X == 0 && hotspot.Y == 0 {
		return
	}
	key := strings.ToLower(cursorName)
	if _, ok := s.name[key]; !ok {
		s.name[key] = cursorName
	}
	if s.data[key] == nil {
		s.data[key] = map[int]image.Point{}
	}
	s.data[key][resolution] = hotspot
}

// Get looks up a hotspot, case-insensitively on cursor name.
func (s *Store) Get(cursorName string, resolution int) (image.Point, bool) {
	m, ok := s.data[strings.ToLower(cursorName)]
	if !ok {
		return image.Point{}, false
	}
	pt, ok := m[resolution]
	return pt, ok
}

// resolutionMap marshals one cursor's resolution->hotspot map with
// resolutions ordered high to low, matching spec §4.4.
type resolutionMap struct {
	resolutions []int
	points      map[int]image.Point
}

func (m *resolutionMap) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, res := range m.resolutions {
		if i > 0 {
			b.WriteByte(',')
		}
		pt := m.points[res]
		fmt.Fprintf(&b, "%q:%q", strconv.Itoa(res), fmt.Sprintf("%d %d", pt.X, pt.Y))
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// Finalize writes cursor-hotspots.json into dir atomically (write a
// temp file, then rename), as required by §4.4 and the concurrency
// model's "written only once at finalization" rule.
func (s *Store) Finalize() error {
	if len(s.data) == 0 {
		return nil
	}
	out := map[string]*resolutionMap{}
	for key, points := range s.data {
		resolutions := make([]int, 0, len(points))
		for r := range points {
			resolutions = append(resolutions, r)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(resolutions)))
		out[s.name[key]] = &resolutionMap{resolutions: resolutions, points: points}
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return jsonx.SaveAtomic(out, filepath.Join(s.dir, fileName))
}
