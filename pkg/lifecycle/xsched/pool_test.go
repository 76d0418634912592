package xsched

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/omeyang/xmdc/pkg/context/xlocal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPool(t *testing.T, workers, queueSize int, opts ...Option) *Pool {
	t.Helper()
	p, err := NewPool(workers, queueSize, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestNewPool_Validation(t *testing.T) {
	tests := []struct {
		name      string
		workers   int
		queueSize int
		wantErr   error
	}{
		{"zero workers", 0, 1, ErrInvalidWorkers},
		{"too many workers", maxWorkers + 1, 1, ErrInvalidWorkers},
		{"zero queue", 1, 0, ErrInvalidQueueSize},
		{"queue too large", 1, maxQueueSize + 1, ErrInvalidQueueSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPool(tt.workers, tt.queueSize)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPool_RunsTasks(t *testing.T) {
	p := newTestPool(t, 2, 10, WithName("test"))
	assert.Equal(t, "test", p.Name())
	assert.Equal(t, 2, p.Workers())
	assert.Equal(t, 10, p.QueueSize())

	var processed atomic.Int32
	var wg sync.WaitGroup
	wg.Add(5)
	for range 5 {
		require.NoError(t, p.Schedule(context.Background(), func(xlocal.Store) {
			processed.Add(1)
			wg.Done()
		}))
	}
	wg.Wait()
	assert.Equal(t, int32(5), processed.Load())
}

func TestPool_ScheduleArgs(t *testing.T) {
	p := newTestPool(t, 1, 1)
	var nilCtx context.Context
	assert.ErrorIs(t, p.Schedule(nilCtx, func(xlocal.Store) {}), ErrNilContext)
	assert.ErrorIs(t, p.Schedule(context.Background(), nil), ErrNilTask)
}

func TestPool_WorkerStoreIsPrivateAndStable(t *testing.T) {
	p := newTestPool(t, 1, 4)

	stores := make(chan xlocal.Store, 2)
	for range 2 {
		require.NoError(t, p.Schedule(context.Background(), func(s xlocal.Store) { stores <- s }))
	}
	first, second := <-stores, <-stores
	assert.Same(t, first, second, "single worker must reuse its store")
}

func TestPool_ClearsLeftoverEntries(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	p := newTestPool(t, 1, 4, WithLogger(logger))

	require.NoError(t, p.Schedule(context.Background(), func(s xlocal.Store) { s.Set("leak", "1") }))
	got := make(chan int, 1)
	require.NoError(t, p.Schedule(context.Background(), func(s xlocal.Store) { got <- s.Len() }))

	assert.Equal(t, 0, <-got)
	require.NoError(t, p.Close())
	assert.Contains(t, buf.String(), "left entries")
}

func TestPool_PanicRecovered(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	p := newTestPool(t, 1, 4, WithLogger(logger))

	require.NoError(t, p.Schedule(context.Background(), func(xlocal.Store) { panic("boom") }))
	ok := make(chan struct{})
	require.NoError(t, p.Schedule(context.Background(), func(xlocal.Store) { close(ok) }))

	select {
	case <-ok:
	case <-time.After(time.Second):
		t.Fatal("worker did not survive panic")
	}
	require.NoError(t, p.Close())
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestPool_NonBlockingQueueFull(t *testing.T) {
	p := newTestPool(t, 1, 1, WithNonBlocking())

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Schedule(context.Background(), func(xlocal.Store) {
		close(started)
		<-release
	}))
	<-started
	require.NoError(t, p.Schedule(context.Background(), func(xlocal.Store) {}))

	err := p.Schedule(context.Background(), func(xlocal.Store) {})
	assert.ErrorIs(t, err, ErrQueueFull)
	close(release)
}

func TestPool_BlockingHonorsContext(t *testing.T) {
	p := newTestPool(t, 1, 1)

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Schedule(context.Background(), func(xlocal.Store) {
		close(started)
		<-release
	}))
	<-started
	require.NoError(t, p.Schedule(context.Background(), func(xlocal.Store) {}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := p.Schedule(ctx, func(xlocal.Store) {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(release)
}

func TestPool_CloseWakesBlockedSubmitter(t *testing.T) {
	p, err := NewPool(1, 1)
	require.NoError(t, err)

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Schedule(context.Background(), func(xlocal.Store) {
		close(started)
		<-release
	}))
	<-started
	require.NoError(t, p.Schedule(context.Background(), func(xlocal.Store) {}))

	blocked := make(chan error, 1)
	go func() {
		blocked <- p.Schedule(context.Background(), func(xlocal.Store) {})
	}()

	closed := make(chan error, 1)
	go func() { closed <- p.Close() }()

	select {
	case err := <-blocked:
		assert.ErrorIs(t, err, ErrPoolStopped)
	case <-time.After(time.Second):
		t.Fatal("blocked submitter was not released by Close")
	}
	close(release)
	require.NoError(t, <-closed)
}

func TestPool_ScheduleAfterClose(t *testing.T) {
	p, err := NewPool(1, 1)
	require.NoError(t, err)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	assert.ErrorIs(t, p.Schedule(context.Background(), func(xlocal.Store) {}), ErrPoolStopped)
	<-p.Done()
}

func TestPool_ShutdownTimeout(t *testing.T) {
	p, err := NewPool(1, 1)
	require.NoError(t, err)

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Schedule(context.Background(), func(xlocal.Store) {
		close(started)
		<-release
	}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = p.Shutdown(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	var nilCtx context.Context
	assert.ErrorIs(t, p.Shutdown(nilCtx), ErrNilContext)

	close(release)
	<-p.Done()
}

func TestPool_DrainsQueueOnClose(t *testing.T) {
	p, err := NewPool(1, 16)
	require.NoError(t, err)

	var processed atomic.Int32
	for range 16 {
		require.NoError(t, p.Schedule(context.Background(), func(xlocal.Store) { processed.Add(1) }))
	}
	require.NoError(t, p.Close())
	assert.Equal(t, int32(16), processed.Load())
}
