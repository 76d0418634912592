package xmdc

import "errors"

// =============================================================================
// Context Key 类型定义
// =============================================================================

// contextKey 包私有的 context key 类型。
// 载体以 "xmdc:<key>" 的形式写入 context，不会与其他包的 key 冲突。
type contextKey string

// indexKey 记录 context 中已写入的载体 key 列表（按首次写入顺序）。
type indexKey struct{}

// keyPrefix context key 前缀，便于调试时识别
const keyPrefix = "xmdc:"

func ctxKey(key string) contextKey {
	return contextKey(keyPrefix + key)
}

// =============================================================================
// 错误定义
// =============================================================================

var (
	// ErrBlankKey 载体 key 为空或仅包含空白字符
	ErrBlankKey = errors.New("xmdc: blank context key")

	// ErrMalformedCarrier 载体编码/解码失败
	ErrMalformedCarrier = errors.New("xmdc: malformed carrier")
)
