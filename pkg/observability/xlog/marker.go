package xlog

import (
	"strings"
	"sync"
)

// Marker 命名日志标记，可引用其他 marker 组成层级。
//
// 同名 marker 全局唯一（见 GetMarker），可以用指针比较。
type Marker struct {
	name string

	mu   sync.RWMutex
	refs []*Marker
}

// markers 全局 marker 注册表
var markers sync.Map // map[string]*Marker

// GetMarker 返回名为 name 的 marker，不存在则创建。
func GetMarker(name string) *Marker {
	if m, ok := markers.Load(name); ok {
		return m.(*Marker)
	}
	m, _ := markers.LoadOrStore(name, &Marker{name: name})
	return m.(*Marker)
}

// Name 返回 marker 名称，nil marker 返回空字符串。
func (m *Marker) Name() string {
	if m == nil {
		return ""
	}
	return m.name
}

// Add 添加引用。重复引用或会形成环的引用被忽略。
func (m *Marker) Add(ref *Marker) {
	if m == nil || ref == nil || ref.Contains(m.name) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.refs {
		if r == ref {
			return
		}
	}
	m.refs = append(m.refs, ref)
}

// Remove 删除引用，返回是否存在。
func (m *Marker) Remove(ref *Marker) bool {
	if m == nil || ref == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.refs {
		if r == ref {
			m.refs = append(m.refs[:i:i], m.refs[i+1:]...)
			return true
		}
	}
	return false
}

// References 返回直接引用的副本。
func (m *Marker) References() []*Marker {
	if m == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Marker, len(m.refs))
	copy(out, m.refs)
	return out
}

// Contains 判断 marker 自身或其（递归）引用中是否有名为 name 的 marker。
func (m *Marker) Contains(name string) bool {
	if m == nil {
		return false
	}
	if m.name == name {
		return true
	}
	for _, r := range m.References() {
		if r.Contains(name) {
			return true
		}
	}
	return false
}

// String 返回 "name" 或 "name [ ref1, ref2 ]"。
func (m *Marker) String() string {
	if m == nil {
		return ""
	}
	refs := m.References()
	if len(refs) == 0 {
		return m.name
	}
	var b strings.Builder
	b.WriteString(m.name)
	b.WriteString(" [ ")
	for i, r := range refs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(r.String())
	}
	b.WriteString(" ]")
	return b.String()
}
