// Package concurrency implements the scheduling model of spec §5: a
// single-threaded producer drives the pipeline, while an optional
// worker pool performs bitmap encoding asynchronously in one of three
// modes (synchronous, per-builder, single-worker).
package concurrency

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"cogentcore.org/mousegen/internal/settings"
)

// Task is one unit of encoding work submitted by the producer.
type Task func() error

// Scheduler runs Tasks according to a settings.AsyncMode. All methods
// are safe to call only from the single producer goroutine, except
// Finalize, which a caller uses to drain the pool.
type Scheduler struct {
	mode     settings.AsyncMode
	cap      int
	builders map[string]*builderQueue
	single   *builderQueue
	mu       sync.Mutex
}

type builderQueue struct {
	ch     chan Task
	group  *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc
}

// New returns a Scheduler configured by s.
func New(s settings.Settings) *Scheduler {
	sch := &Scheduler{
		mode:     s.AsyncEncoding,
		cap:      s.AsyncQueueCapacity,
		builders: map[string]*builderQueue{},
	}
	if s.AsyncEncoding == settings.ModeSingleWorker {
		sch.single = sch.newQueue()
	}
	return sch
}

func (s *Scheduler) newQueue() *builderQueue {
	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	q := &builderQueue{ch: make(chan Task, s.cap), group: g, ctx: gctx, cancel: cancel}
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case t, ok := <-q.ch:
				if !ok {
					return nil
				}
				if err := t(); err != nil {
					return err
				}
			}
		}
	})
	return q
}

// Submit enqueues a task. In Mode A (synchronous) it runs inline. In
// Mode B (per-builder) it enqueues onto builderKey's own queue,
// creating one on first use. In Mode C (single-worker) it enqueues
// onto the shared queue. If a prior task in the relevant queue failed,
// Submit returns that error immediately without running task, per
// spec §5's cooperative-cancellation rule.
func (s *Scheduler) Submit(builderKey string, task Task) error {
	switch s.mode {
	case settings.ModeSync:
		return task()
	case settings.ModeSingleWorker:
		return enqueue(s.single, task)
	default: // ModePerBuilder
		s.mu.Lock()
		q, ok := s.builders[builderKey]
		if !ok {
			q = s.newQueue()
			s.builders[builderKey] = q
		}
		s.mu.Unlock()
		return enqueue(q, task)
	}
}

func enqueue(q *builderQueue, task Task) error {
	select {
	case <-q.ctx.Done():
		return q.group.Wait()
	default:
	}
	select {
	case q.ch <- task:
		return nil
	case <-q.ctx.Done():
		return q.group.Wait()
	}
}

// CloseBuilder signals builderKey's queue is done accepting work and
// waits for its worker to drain, returning any error it encountered.
// A no-op in every mode except Mode B (per-builder).
func (s *Scheduler) CloseBuilder(builderKey string) error {
	if s.mode != settings.ModePerBuilder {
		return nil
	}
	s.mu.Lock()
	q, ok := s.builders[builderKey]
	delete(s.builders, builderKey)
	s.mu.Unlock()
	if !ok {
		return nil
	}
	close(q.ch)
	return q.group.Wait()
}

// Finalize waits for all outstanding work across every queue to
// complete, returning the first error encountered across all of them.
func (s *Scheduler) Finalize() error {
	var firstErr error
	s.mu.Lock()
	keys := make([]string, 0, len(s.builders))
	for k := range s.builders {
		keys = append(keys, k)
	}
	s.mu.Unlock()
	for _, k := range keys {
		if err := s.CloseBuilder(k); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.single != nil {
		close(s.single.ch)
		if err := s.single.group.Wait(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return fmt.Errorf("concurrency: %w", firstErr)
	}
	return nil
}
