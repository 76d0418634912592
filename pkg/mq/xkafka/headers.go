package xkafka

import (
	"context"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/omeyang/xmdc/internal/mqcore"
)

// Propagator 消息头传播器。
type Propagator = mqcore.Propagator

// DefaultPropagator 诊断载体加 W3C trace context。
func DefaultPropagator() Propagator { return mqcore.DefaultPropagator() }

// CarrierPropagator 只传播 xmdc 载体。
func CarrierPropagator() Propagator { return mqcore.CarrierPropagator{} }

// InjectHeaders 把 ctx 中的诊断信息写入 msg 头，已有同名头被覆盖。
// p 为 nil 时使用 DefaultPropagator。
func InjectHeaders(ctx context.Context, p Propagator, msg *kafka.Message) error {
	if msg == nil {
		return ErrNilMessage
	}
	if p == nil {
		p = DefaultPropagator()
	}
	carrier := make(map[string]string)
	p.Inject(ctx, carrier)
	for key, value := range carrier {
		setHeader(msg, key, value)
	}
	return nil
}

// ExtractHeaders 解析 msg 头并合并进 ctx。msg 为 nil 时原样返回 ctx。
func ExtractHeaders(ctx context.Context, p Propagator, msg *kafka.Message) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if msg == nil {
		return ctx
	}
	if p == nil {
		p = DefaultPropagator()
	}
	return p.Extract(ctx, headersToMap(msg.Headers))
}

// headersToMap 同名头后者覆盖前者
func headersToMap(headers []kafka.Header) map[string]string {
	result := make(map[string]string, len(headers))
	for _, h := range headers {
		result[h.Key] = string(h.Value)
	}
	return result
}

func setHeader(msg *kafka.Message, key, value string) {
	for i, h := range msg.Headers {
		if h.Key == key {
			msg.Headers[i].Value = []byte(value)
			return
		}
	}
	msg.Headers = append(msg.Headers, kafka.Header{
		Key:   key,
		Value: []byte(value),
	})
}

func topicOf(msg *kafka.Message) string {
	if msg == nil || msg.TopicPartition.Topic == nil {
		return ""
	}
	return *msg.TopicPartition.Topic
}
