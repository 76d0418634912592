package xmdc

import (
	"context"
	"slices"
)

// =============================================================================
// 执行上下文桥接
// =============================================================================

// Read 从执行上下文中读取 key 对应的载体。
//
// 以下情况均返回 key 下的空载体，不会失败：
//   - ctx 为 nil
//   - key 下没有载体
//   - key 下的值不是载体（结构不符）
func Read(ctx context.Context, key string) MDC {
	if ctx == nil {
		return Empty(key)
	}
	switch v := ctx.Value(ctxKey(key)).(type) {
	case MDC:
		// 存入时 entries 已私有化，直接共享即可
		return MDC{key: key, entries: v.entries}
	case map[string]string:
		return NewWithKey(key, v)
	default:
		return Empty(key)
	}
}

// ReadDefault 读取进程级默认 key 下的载体。
func ReadDefault(ctx context.Context) MDC {
	return Read(ctx, DefaultKey())
}

// Put 返回写入了所有载体的派生执行上下文，原 ctx 不变。
//
// 载体按参数顺序写入，同 key 后写覆盖先写（整体替换，不合并条目）。
// key 为空白的载体被忽略。nil ctx 视为 context.Background()。
func Put(ctx context.Context, carriers ...MDC) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(carriers) == 0 {
		return ctx
	}

	keys := Keys(ctx)
	grown := false
	for _, c := range carriers {
		if ValidateKey(c.key) != nil {
			continue
		}
		ctx = context.WithValue(ctx, ctxKey(c.key), MDC{key: c.key, entries: cloneEntries(c.entries)})
		if !slices.Contains(keys, c.key) {
			if !grown {
				// 与父 context 共享的索引切片不可原地追加
				keys = slices.Clone(keys)
				grown = true
			}
			keys = append(keys, c.key)
		}
	}
	if grown {
		ctx = context.WithValue(ctx, indexKey{}, keys)
	}
	return ctx
}

// Keys 返回 ctx 中已写入载体的 key，按首次写入顺序排列。
//
// 返回值为只读视图，调用方不得修改。
func Keys(ctx context.Context) []string {
	if ctx == nil {
		return nil
	}
	keys, _ := ctx.Value(indexKey{}).([]string)
	return keys
}

// Carriers 返回 ctx 中的所有载体，按 key 首次写入顺序排列。
func Carriers(ctx context.Context) []MDC {
	keys := Keys(ctx)
	if len(keys) == 0 {
		return nil
	}
	out := make([]MDC, 0, len(keys))
	for _, k := range keys {
		out = append(out, Read(ctx, k))
	}
	return out
}

// Merge 将 from 中的所有载体写入 ctx，返回派生上下文。
//
// 同 key 时 from 中的载体覆盖 ctx 中已有的载体。
func Merge(ctx, from context.Context) context.Context {
	return Put(ctx, Carriers(from)...)
}

// Flatten 将多个载体的条目合并为一个映射，后出现的同名条目覆盖先出现的。
func Flatten(carriers ...MDC) map[string]string {
	n := 0
	for _, c := range carriers {
		n += len(c.entries)
	}
	out := make(map[string]string, n)
	for _, c := range carriers {
		for k, v := range c.entries {
			out[k] = v
		}
	}
	return out
}
