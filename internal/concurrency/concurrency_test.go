package concurrency

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/mousegen/internal/settings"
)

func TestSyncModeRunsInline(t *testing.T) {
	s := New(settings.Settings{AsyncEncoding: settings.ModeSync})
	var ran bool
	require.NoError(t, s.Submit("a", func() error { ran = true; return nil }))
	assert.True(t, ran)
}

func TestPerBuilderModeRunsAllTasksInOrder(t *testing.T) {
	s := New(settings.Settings{AsyncEncoding: settings.ModePerBuilder, AsyncQueueCapacity: 8})
	var order []int
	mu := make(chan struct{}, 1)
	mu <- struct{}{}
	for i := 0; i < 5; i++ {
		i := i
		require.NoError(t, s.Submit("builder-1", func() error {
			<-mu
			order = append(order, i)
			mu <- struct{}{}
			return nil
		}))
	}
	require.NoError(t, s.CloseBuilder("builder-1"))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestSingleWorkerModeSerializesAcrossBuilders(t *testing.T) {
	s := New(settings.Settings{AsyncEncoding: settings.ModeSingleWorker, AsyncQueueCapacity: 8})
	var count int64
	for i := 0; i < 10; i++ {
		require.NoError(t, s.Submit("ignored", func() error {
			atomic.AddInt64(&count, 1)
			return nil
		}))
	}
	require.NoError(t, s.Finalize())
	assert.Equal(t, int64(10), count)
}

func TestFinalizeSurfacesWorkerError(t *testing.T) {
	s := New(settings.Settings{AsyncEncoding: settings.ModePerBuilder, AsyncQueueCapacity: 8})
	boom := errors.New("boom")
	require.NoError(t, s.Submit("b", func() error { return boom }))
	err := s.Finalize()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
