package xmdc

import (
	"strings"
	"sync/atomic"
)

// DefaultContextKey 出厂默认的载体 key
const DefaultContextKey = "mdc"

// defaultKey 进程级默认 key，nil 表示使用 DefaultContextKey
var defaultKey atomic.Pointer[string]

// DefaultKey 返回当前进程级默认载体 key。
func DefaultKey() string {
	if k := defaultKey.Load(); k != nil {
		return *k
	}
	return DefaultContextKey
}

// SetDefaultKey 替换进程级默认载体 key。
//
// 空白 key 返回 ErrBlankKey，当前默认值保持不变。
// 已构造的 MDC 不受影响，仅作用于之后未显式指定 key 的构造。
func SetDefaultKey(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	defaultKey.Store(&key)
	return nil
}

// ResetDefaultKey 恢复为 DefaultContextKey（主要用于测试）。
func ResetDefaultKey() {
	defaultKey.Store(nil)
}

// ValidateKey 校验载体 key 非空白。
//
// 校验发生在 key 被消费的位置（写入 context、编码、构建 logger），
// 而不是 MDC 构造时。
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrBlankKey
	}
	return nil
}
