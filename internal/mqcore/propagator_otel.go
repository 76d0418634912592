package mqcore

import (
	"context"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/omeyang/xmdc/pkg/observability/xmetrics"
)

// OTelOption OTelPropagator 选项。
type OTelOption func(*OTelPropagator)

// WithTextMapPropagator 替换底层 TextMapPropagator。nil 被忽略。
func WithTextMapPropagator(p propagation.TextMapPropagator) OTelOption {
	return func(o *OTelPropagator) {
		if p != nil {
			o.propagator = p
		}
	}
}

// OTelPropagator 基于 OpenTelemetry 的 W3C trace context 传播。
//
// ctx 中没有有效 span 时，使用 trace 载体（xmetrics.TraceCarrierKey）中的标识；
// 解析出的 span 标识同步回 trace 载体，日志渲染时可见。
type OTelPropagator struct {
	propagator propagation.TextMapPropagator
}

// NewOTelPropagator 创建 OTelPropagator，默认 TraceContext + Baggage。
func NewOTelPropagator(opts ...OTelOption) OTelPropagator {
	p := OTelPropagator{
		propagator: propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&p)
		}
	}
	return p
}

func (p OTelPropagator) Inject(ctx context.Context, headers map[string]string) {
	if headers == nil {
		return
	}
	ctx = xmetrics.RemoteParent(orBackground(ctx))
	p.propagator.Inject(ctx, propagation.MapCarrier(headers))
}

func (p OTelPropagator) Extract(ctx context.Context, headers map[string]string) context.Context {
	ctx = orBackground(ctx)
	if len(headers) == 0 {
		return ctx
	}
	ctx = p.propagator.Extract(ctx, propagation.MapCarrier(headers))
	return xmetrics.SyncTraceCarrier(ctx, trace.SpanContextFromContext(ctx))
}

var (
	_ Propagator = OTelPropagator{}
	_ Propagator = CarrierPropagator{}
	_ Propagator = NoopPropagator{}
)
