package xpulsar

import (
	"context"

	"github.com/apache/pulsar-client-go/pulsar"

	"github.com/omeyang/xmdc/internal/mqcore"
)

// Propagator 消息属性传播器。
type Propagator = mqcore.Propagator

// DefaultPropagator 诊断载体加 W3C trace context。
func DefaultPropagator() Propagator { return mqcore.DefaultPropagator() }

// CarrierPropagator 只传播 xmdc 载体。
func CarrierPropagator() Propagator { return mqcore.CarrierPropagator{} }

// InjectProperties 把 ctx 中的诊断信息写入 msg.Properties，必要时创建该 map。
func InjectProperties(ctx context.Context, p Propagator, msg *pulsar.ProducerMessage) error {
	if msg == nil {
		return ErrNilMessage
	}
	if p == nil {
		p = DefaultPropagator()
	}
	if msg.Properties == nil {
		msg.Properties = make(map[string]string)
	}
	p.Inject(ctx, msg.Properties)
	return nil
}

// ExtractProperties 解析 msg 属性并合并进 ctx。msg 为 nil 时原样返回 ctx。
func ExtractProperties(ctx context.Context, p Propagator, msg pulsar.Message) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if msg == nil {
		return ctx
	}
	if p == nil {
		p = DefaultPropagator()
	}
	return p.Extract(ctx, msg.Properties())
}
