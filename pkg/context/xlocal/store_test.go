package xlocal_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/omeyang/xmdc/pkg/context/xlocal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_Basic(t *testing.T) {
	m := xlocal.NewMap()
	assert.Equal(t, 0, m.Len())

	m.Set("a", "1")
	m.SetAll(map[string]string{"b": "2", "a": "override"})

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, "override", v)
	assert.Equal(t, 2, m.Len())

	m.Remove("a")
	_, ok = m.Get("a")
	assert.False(t, ok)

	m.Clear()
	assert.Equal(t, 0, m.Len())
	assert.NotNil(t, m.Snapshot())
}

func TestMap_SnapshotIsCopy(t *testing.T) {
	m := xlocal.NewMap()
	m.Set("a", "1")
	snap := m.Snapshot()
	snap["a"] = "changed"

	v, _ := m.Get("a")
	assert.Equal(t, "1", v)
}

func TestMap_ConcurrentReaders(t *testing.T) {
	m := xlocal.NewMap()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i == 0 {
				m.Set("k", "v")
				return
			}
			_ = m.Snapshot()
			_ = m.Len()
		}()
	}
	wg.Wait()
}

func TestContext(t *testing.T) {
	_, ok := xlocal.FromContext(context.Background())
	assert.False(t, ok)

	var nilCtx context.Context
	_, ok = xlocal.FromContext(nilCtx)
	assert.False(t, ok)

	m := xlocal.NewMap()
	m.SetAll(map[string]string{"b": "2", "a": "1"})
	ctx := xlocal.WithStore(context.Background(), m)

	got, ok := xlocal.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, m, got)

	attrs := xlocal.AppendAttrs(nil, ctx)
	require.Len(t, attrs, 2)
	assert.True(t, attrs[0].Equal(slog.String("a", "1")))
	assert.True(t, attrs[1].Equal(slog.String("b", "2")))

	assert.Empty(t, xlocal.AppendAttrs(nil, context.Background()))
}
