package xlog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/omeyang/xmdc/pkg/context/xlocal"
	"github.com/omeyang/xmdc/pkg/context/xmdc"
)

// ErrNilHandler 当 NewEnrichHandler 的 base handler 为 nil 时返回
var ErrNilHandler = errors.New("xlog: base handler is nil")

// EnrichHandler 从 context 提取诊断条目并注入日志
//
// 条目来源：
//   - ctx 上挂载了执行单元存储（xlocal）时，只读取存储
//   - 否则平铺读取 ctx 中的所有 xmdc 载体
//
// 调用 WithGroup 后注入的条目同样归入该分组，这是 slog handler 的固有行为。
type EnrichHandler struct {
	base slog.Handler
}

// NewEnrichHandler 创建 EnrichHandler
func NewEnrichHandler(base slog.Handler) (*EnrichHandler, error) {
	if base == nil {
		return nil, ErrNilHandler
	}
	return &EnrichHandler{base: base}, nil
}

// Enabled 委托给底层 handler
func (h *EnrichHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

// maxEnrichAttrs 栈上缓冲的属性数量，超出时 append 自动扩容
const maxEnrichAttrs = 8

// Handle 注入诊断条目后交给底层 handler。
//
// 根据 slog 契约，修改前先 Clone record。
func (h *EnrichHandler) Handle(ctx context.Context, r slog.Record) error {
	var buf [maxEnrichAttrs]slog.Attr
	attrs := buf[:0]
	if _, ok := xlocal.FromContext(ctx); ok {
		attrs = xlocal.AppendAttrs(attrs, ctx)
	} else {
		attrs = xmdc.AppendAttrs(attrs, ctx)
	}

	if len(attrs) > 0 {
		r = r.Clone()
		r.AddAttrs(attrs...)
	}
	return h.base.Handle(ctx, r)
}

// WithAttrs 返回带额外属性的新 handler
func (h *EnrichHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EnrichHandler{base: h.base.WithAttrs(attrs)}
}

// WithGroup 返回带分组的新 handler
func (h *EnrichHandler) WithGroup(name string) slog.Handler {
	return &EnrichHandler{base: h.base.WithGroup(name)}
}
