package mqcore

import (
	"context"
	"log/slog"

	"github.com/omeyang/xmdc/pkg/context/xmdc"
)

// Propagator 在消息头与 context 之间传播诊断信息。
type Propagator interface {
	// Inject 将 ctx 中的信息写入 headers。
	Inject(ctx context.Context, headers map[string]string)

	// Extract 解析 headers 并合并进 ctx，返回派生 context。
	Extract(ctx context.Context, headers map[string]string) context.Context
}

// NoopPropagator 不传播任何信息。
type NoopPropagator struct{}

func (NoopPropagator) Inject(context.Context, map[string]string) {}

func (NoopPropagator) Extract(ctx context.Context, _ map[string]string) context.Context {
	return orBackground(ctx)
}

// CarrierPropagator 传播 ctx 中的所有诊断载体。
type CarrierPropagator struct {
	// Logger 记录编码失败的载体，nil 时使用 slog.Default()
	Logger *slog.Logger
}

// Inject 编码失败的载体记录警告后跳过。
func (p CarrierPropagator) Inject(ctx context.Context, headers map[string]string) {
	if headers == nil {
		return
	}
	ctx = orBackground(ctx)
	if err := xmdc.Inject(ctx, headers); err != nil {
		logger := p.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.WarnContext(ctx, "mq: carriers dropped from message headers", slog.Any("error", err))
	}
}

func (CarrierPropagator) Extract(ctx context.Context, headers map[string]string) context.Context {
	return xmdc.Extract(orBackground(ctx), headers)
}

// Composite 按顺序组合 Propagator，Extract 时后者覆盖前者。nil 元素被跳过。
func Composite(propagators ...Propagator) Propagator {
	out := make(composite, 0, len(propagators))
	for _, p := range propagators {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

type composite []Propagator

func (c composite) Inject(ctx context.Context, headers map[string]string) {
	for _, p := range c {
		p.Inject(ctx, headers)
	}
}

func (c composite) Extract(ctx context.Context, headers map[string]string) context.Context {
	ctx = orBackground(ctx)
	for _, p := range c {
		ctx = p.Extract(ctx, headers)
	}
	return ctx
}

// DefaultPropagator 诊断载体加 W3C trace context。
func DefaultPropagator() Propagator {
	return Composite(CarrierPropagator{}, NewOTelPropagator())
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
