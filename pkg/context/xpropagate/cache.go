package xpropagate

import (
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/omeyang/xmdc/pkg/context/xmdc"
)

// newDecodeCache 返回带 LRU 缓存的解析函数，解析失败的头值不缓存。
// TTL 为 0 不启动后台清理 goroutine。
func newDecodeCache(size int) xmdc.DecodeFunc {
	cache := expirable.NewLRU[string, xmdc.MDC](size, nil, 0)
	return func(value string) (xmdc.MDC, error) {
		if m, ok := cache.Get(value); ok {
			return m, nil
		}
		m, err := xmdc.Decode(value)
		if err != nil {
			return xmdc.MDC{}, err
		}
		cache.Add(value, m)
		return m, nil
	}
}
