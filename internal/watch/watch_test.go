package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
)

func fsEvent(name string) fsnotify.Event {
	return fsnotify.Event{Name: name, Op: fsnotify.Write}
}

func TestStartRebuildsOnSVGWrite(t *testing.T) {
	dir := t.TempDir()
	var calls int32

	w, err := Start(dir, nil, func() error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	require.NoError(t, err)
	defer w.Close()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) >= 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.svg"), []byte("<svg/>"), 0o644))

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestRelevantIgnoresUnrelatedExtensions(t *testing.T) {
	require.False(t, relevant(fsEvent("notes.txt")))
	require.True(t, relevant(fsEvent("cursor.svg")))
	require.True(t, relevant(fsEvent("render.json")))
}
