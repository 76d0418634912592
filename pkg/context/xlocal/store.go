package xlocal

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"
)

// Store 执行单元私有的诊断存储。
type Store interface {
	// Get 读取单个条目。
	Get(name string) (string, bool)

	// Set 写入单个条目。
	Set(name, value string)

	// SetAll 批量写入条目，同名条目被覆盖。
	SetAll(entries map[string]string)

	// Remove 删除单个条目。
	Remove(name string)

	// Clear 清空所有条目。
	Clear()

	// Len 返回条目数。
	Len() int

	// Snapshot 返回当前条目的副本。
	Snapshot() map[string]string
}

// Map 基于 map 的 Store 实现，零值不可用，使用 NewMap 创建。
type Map struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMap 创建空存储。
func NewMap() *Map {
	return &Map{entries: make(map[string]string)}
}

// Get 实现 Store。
func (m *Map) Get(name string) (string, bool) {
	m.mu.RLock()
	v, ok := m.entries[name]
	m.mu.RUnlock()
	return v, ok
}

// Set 实现 Store。
func (m *Map) Set(name, value string) {
	m.mu.Lock()
	m.entries[name] = value
	m.mu.Unlock()
}

// SetAll 实现 Store。
func (m *Map) SetAll(entries map[string]string) {
	m.mu.Lock()
	maps.Copy(m.entries, entries)
	m.mu.Unlock()
}

// Remove 实现 Store。
func (m *Map) Remove(name string) {
	m.mu.Lock()
	delete(m.entries, name)
	m.mu.Unlock()
}

// Clear 实现 Store。
func (m *Map) Clear() {
	m.mu.Lock()
	clear(m.entries)
	m.mu.Unlock()
}

// Len 实现 Store。
func (m *Map) Len() int {
	m.mu.RLock()
	n := len(m.entries)
	m.mu.RUnlock()
	return n
}

// Snapshot 实现 Store。
func (m *Map) Snapshot() map[string]string {
	m.mu.RLock()
	out := maps.Clone(m.entries)
	m.mu.RUnlock()
	if out == nil {
		out = map[string]string{}
	}
	return out
}

// =============================================================================
// context 传递
// =============================================================================

type storeKey struct{}

// WithStore 将 s 挂到 ctx 上，供日志后端读取。
func WithStore(ctx context.Context, s Store) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, storeKey{}, s)
}

// FromContext 返回 ctx 上挂载的存储。
func FromContext(ctx context.Context) (Store, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(storeKey{}).(Store)
	return s, ok && s != nil
}

// AppendAttrs 将 ctx 上存储的条目按名称排序追加到 attrs。
// ctx 上没有存储时原样返回。
func AppendAttrs(attrs []slog.Attr, ctx context.Context) []slog.Attr {
	s, ok := FromContext(ctx)
	if !ok {
		return attrs
	}
	snap := s.Snapshot()
	for _, name := range slices.Sorted(maps.Keys(snap)) {
		attrs = append(attrs, slog.String(name, snap[name]))
	}
	return attrs
}
