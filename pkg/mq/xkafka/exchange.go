package xkafka

import (
	"context"
	"errors"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/omeyang/xmdc/internal/mqcore"
	"github.com/omeyang/xmdc/pkg/observability/xmdclog"
	"github.com/omeyang/xmdc/pkg/observability/xmetrics"
)

const component = "xkafka"

// Producer 发送消息的最小接口，*kafka.Producer 满足该接口。
type Producer interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
}

// Handler 消费处理函数。
type Handler func(ctx context.Context, msg *kafka.Message) error

// Option 生产与消费选项。
type Option func(*mqcore.Options)

// WithPropagator 设置传播器，nil 使用 DefaultPropagator。
func WithPropagator(p Propagator) Option {
	return func(o *mqcore.Options) { o.Propagator = p }
}

// WithRestorer 处理函数在 r 的调度器上执行，执行期间 worker store 中可见诊断条目。
func WithRestorer(r *xmdclog.Restorer) Option {
	return func(o *mqcore.Options) { o.Restorer = r }
}

// WithObserver 为每次生产与消费记录跨度。
func WithObserver(obs xmetrics.Observer) Option {
	return func(o *mqcore.Options) { o.Observer = obs }
}

// WithQueueFullRetry 本地队列满（kafka.ErrQueueFull）时按指数退避重试，
// attempts 为总尝试次数。其他错误立即返回。
func WithQueueFullRetry(attempts uint, delay time.Duration) Option {
	return func(o *mqcore.Options) {
		o.Retry = mqcore.RetryPolicy{Attempts: attempts, Delay: delay, If: isQueueFull}
	}
}

func isQueueFull(err error) bool {
	var kerr kafka.Error
	return errors.As(err, &kerr) && kerr.Code() == kafka.ErrQueueFull
}

func buildOptions(opts []Option) mqcore.Options {
	var o mqcore.Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Produce 把 ctx 中的诊断信息写入 msg 头后交给 p 发送。
func Produce(ctx context.Context, p Producer, msg *kafka.Message, deliveryChan chan kafka.Event, opts ...Option) error {
	if p == nil {
		return ErrNilClient
	}
	if msg == nil {
		return ErrNilMessage
	}
	o := buildOptions(opts)
	carrier := make(map[string]string)
	return mqcore.Send(ctx, o, component, topicOf(msg), carrier, func() error {
		for key, value := range carrier {
			setHeader(msg, key, value)
		}
		return p.Produce(msg, deliveryChan)
	})
}

// Propagate 包装 h：先从消息头恢复诊断上下文，再执行 h。
func Propagate(h Handler, opts ...Option) Handler {
	o := buildOptions(opts)
	return func(ctx context.Context, msg *kafka.Message) error {
		if h == nil {
			return ErrNilHandler
		}
		if msg == nil {
			return ErrNilMessage
		}
		return mqcore.Receive(ctx, o, component, topicOf(msg), headersToMap(msg.Headers),
			func(ctx context.Context) error { return h(ctx, msg) })
	}
}
