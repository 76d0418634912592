package xpulsar

import (
	"context"
	"time"

	"github.com/apache/pulsar-client-go/pulsar"

	"github.com/omeyang/xmdc/internal/mqcore"
	"github.com/omeyang/xmdc/pkg/observability/xmdclog"
	"github.com/omeyang/xmdc/pkg/observability/xmetrics"
)

const component = "xpulsar"

// Producer 发送消息的最小接口，pulsar.Producer 满足该接口。
type Producer interface {
	Topic() string
	Send(ctx context.Context, msg *pulsar.ProducerMessage) (pulsar.MessageID, error)
}

// Handler 消费处理函数。
type Handler func(ctx context.Context, msg pulsar.Message) error

// Option 发送与消费选项。
type Option func(*mqcore.Options)

// WithPropagator 设置传播器，nil 使用 DefaultPropagator。
func WithPropagator(p Propagator) Option {
	return func(o *mqcore.Options) { o.Propagator = p }
}

// WithRestorer 处理函数在 r 的调度器上执行。
func WithRestorer(r *xmdclog.Restorer) Option {
	return func(o *mqcore.Options) { o.Restorer = r }
}

// WithObserver 为每次发送与消费记录跨度。
func WithObserver(obs xmetrics.Observer) Option {
	return func(o *mqcore.Options) { o.Observer = obs }
}

// WithRetry 发送失败时按指数退避重试，attempts 为总尝试次数。
// retryIf 为 nil 时除 context 错误外都重试。
func WithRetry(attempts uint, delay time.Duration, retryIf func(error) bool) Option {
	return func(o *mqcore.Options) {
		o.Retry = mqcore.RetryPolicy{Attempts: attempts, Delay: delay, If: retryIf}
	}
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

// Send 把 ctx 中的诊断信息写入 msg 属性后同步发送。
func Send(ctx context.Context, p Producer, msg *pulsar.ProducerMessage, opts ...Option) (pulsar.MessageID, error) {
	if p == nil {
		return nil, ErrNilClient
	}
	if msg == nil {
		return nil, ErrNilMessage
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if msg.Properties == nil {
		msg.Properties = make(map[string]string)
	}
	var id pulsar.MessageID
	err := mqcore.Send(ctx, buildOptions(opts), component, p.Topic(), msg.Properties, func() error {
		var err error
		id, err = p.Send(ctx, msg)
		return err
	})
	return id, err
}

// Propagate 包装 h：先从消息属性恢复诊断上下文，再执行 h。
func Propagate(h Handler, opts ...Option) Handler {
	o := buildOptions(opts)
	return func(ctx context.Context, msg pulsar.Message) error {
		if h == nil {
			return ErrNilHandler
		}
		if msg == nil {
			return ErrNilMessage
		}
		return mqcore.Receive(ctx, o, component, msg.Topic(), msg.Properties(),
			func(ctx context.Context) error { return h(ctx, msg) })
	}
}
