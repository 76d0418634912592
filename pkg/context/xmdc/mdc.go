package xmdc

import (
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// MDC 诊断上下文载体：一个命名（key）的不可变字符串映射。
//
// 构造时复制调用方传入的映射，之后的读写都不会影响载体内部状态；
// With/Without 返回新载体。零值 MDC 的 key 为空，写入 context 时会被忽略。
type MDC struct {
	key     string
	entries map[string]string
}

// New 使用进程级默认 key（见 DefaultKey）构造载体。
func New(entries map[string]string) MDC {
	return NewWithKey(DefaultKey(), entries)
}

// NewWithKey 使用指定 key 构造载体。
//
// key 不在此处校验，空白 key 在写入 context 或编码时才被拒绝。
func NewWithKey(key string, entries map[string]string) MDC {
	return MDC{key: key, entries: cloneEntries(entries)}
}

// Empty 返回指定 key 下的空载体。
func Empty(key string) MDC {
	return MDC{key: key}
}

func cloneEntries(entries map[string]string) map[string]string {
	if len(entries) == 0 {
		return nil
	}
	return maps.Clone(entries)
}

// Key 返回载体 key。
func (m MDC) Key() string { return m.key }

// Len 返回条目数。
func (m MDC) Len() int { return len(m.entries) }

// IsEmpty 载体没有任何条目时返回 true。
func (m MDC) IsEmpty() bool { return len(m.entries) == 0 }

// Get 读取单个条目。
func (m MDC) Get(name string) (string, bool) {
	v, ok := m.entries[name]
	return v, ok
}

// Entries 返回条目的副本，永不为 nil。
func (m MDC) Entries() map[string]string {
	out := make(map[string]string, len(m.entries))
	maps.Copy(out, m.entries)
	return out
}

// Names 返回按字典序排列的条目名。
func (m MDC) Names() []string {
	return slices.Sorted(maps.Keys(m.entries))
}

// With 返回追加（或覆盖）一个条目后的新载体。
func (m MDC) With(name, value string) MDC {
	out := make(map[string]string, len(m.entries)+1)
	maps.Copy(out, m.entries)
	out[name] = value
	return MDC{key: m.key, entries: out}
}

// Without 返回删除指定条目后的新载体。
func (m MDC) Without(name string) MDC {
	if _, ok := m.entries[name]; !ok {
		return m
	}
	out := maps.Clone(m.entries)
	delete(out, name)
	return MDC{key: m.key, entries: cloneEntries(out)}
}

// WithKey 返回相同条目、不同 key 的新载体。
func (m MDC) WithKey(key string) MDC {
	return MDC{key: key, entries: m.entries}
}

// Equal 判断 key 与条目完全相同。nil 条目与空条目视为相等。
func (m MDC) Equal(o MDC) bool {
	return m.key == o.key && maps.Equal(m.entries, o.entries)
}

// String 返回稳定排序的调试表示，如 mdc{a=1, b=2}。
func (m MDC) String() string {
	var b strings.Builder
	b.WriteString(m.key)
	b.WriteByte('{')
	for i, name := range m.Names() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(m.entries[name])
	}
	b.WriteByte('}')
	return b.String()
}

// Attrs 将条目转换为按名称排序的 slog.Attr 切片。空载体返回 nil。
func (m MDC) Attrs() []slog.Attr {
	if len(m.entries) == 0 {
		return nil
	}
	return m.AppendAttrs(make([]slog.Attr, 0, len(m.entries)))
}

// AppendAttrs 将条目按名称排序追加到 attrs。
func (m MDC) AppendAttrs(attrs []slog.Attr) []slog.Attr {
	for _, name := range m.Names() {
		attrs = append(attrs, slog.String(name, m.entries[name]))
	}
	return attrs
}
