package xpropagate

import (
	"context"
	"log/slog"

	"github.com/omeyang/xmdc/pkg/context/xmdc"
)

// HeaderRequestID 通用请求 ID 头
const HeaderRequestID = "X-Request-ID"

// ensureRequestID 按配置补齐请求 ID 条目，fallback 为传输层上已有的请求 ID
func (c *config) ensureRequestID(ctx context.Context, fallback string) (context.Context, string) {
	if c.requestIDKey == "" {
		return ctx, ""
	}
	carrier := xmdc.Read(ctx, c.requestIDKey)
	if id, ok := carrier.Get(c.requestIDEntry); ok && id != "" {
		return ctx, id
	}
	id := fallback
	if id == "" {
		id = c.generate()
	}
	return xmdc.Put(ctx, carrier.With(c.requestIDEntry, id)), id
}

// inject 编码 ctx 中的载体，失败的载体记录日志后跳过
func (c *config) inject(ctx context.Context) map[string]string {
	headers := make(map[string]string)
	if err := xmdc.Inject(ctx, headers); err != nil {
		c.logger.WarnContext(ctx, "xpropagate: some carriers were not propagated", slog.Any("error", err))
	}
	return headers
}
