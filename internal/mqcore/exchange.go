package mqcore

import (
	"context"
	"errors"
	"time"

	retry "github.com/avast/retry-go/v5"

	"github.com/omeyang/xmdc/pkg/observability/xmdclog"
	"github.com/omeyang/xmdc/pkg/observability/xmetrics"
)

// Options 生产与消费共用的可选依赖。零值可用。
type Options struct {
	// Propagator nil 时使用 DefaultPropagator()
	Propagator Propagator

	// Restorer 非 nil 时，消费处理函数在其调度器上执行，
	// 执行期间 worker store 中可见消息携带的诊断条目
	Restorer *xmdclog.Restorer

	// Observer nil 时不记录跨度
	Observer xmetrics.Observer

	// Retry 发送失败时的重试策略，Attempts 不大于 1 时不重试
	Retry RetryPolicy
}

// RetryPolicy 发送重试策略。
type RetryPolicy struct {
	// Attempts 总尝试次数（包含首次）
	Attempts uint

	// Delay 初始退避间隔，按指数增长
	Delay time.Duration

	// If 判断错误是否可重试，nil 时除 context 错误外都重试
	If func(error) bool
}

// do 按策略执行 fn，返回最后一次的错误
func (p RetryPolicy) do(ctx context.Context, fn func() error) error {
	if p.Attempts <= 1 {
		return fn()
	}
	retryIf := p.If
	if retryIf == nil {
		retryIf = func(err error) bool {
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		}
	}
	return retry.New(
		retry.Context(ctx),
		retry.Attempts(p.Attempts),
		retry.Delay(p.Delay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(retryIf),
		retry.LastErrorOnly(true),
	).Do(fn)
}

func (o Options) propagator() Propagator {
	if o.Propagator == nil {
		return DefaultPropagator()
	}
	return o.Propagator
}

// Send 在生产者跨度内把 ctx 注入 headers，然后按 o.Retry 调用 send。
func Send(ctx context.Context, o Options, component, topic string, headers map[string]string, send func() error) error {
	ctx, span := xmetrics.Start(orBackground(ctx), o.Observer, xmetrics.SpanOptions{
		Component: component,
		Operation: "produce",
		Kind:      xmetrics.KindProducer,
		Attrs:     []xmetrics.Attr{xmetrics.String("topic", topic)},
	})
	o.propagator().Inject(ctx, headers)
	err := o.Retry.do(ctx, send)
	span.End(xmetrics.Result{Err: err})
	return err
}

// Receive 从 headers 提取诊断信息，在消费者跨度内执行 handle。
//
// 配置了 Restorer 时 handle 在其调度器上执行，返回值与 panic 语义同 Restorer.Run。
func Receive(ctx context.Context, o Options, component, topic string, headers map[string]string, handle xmdclog.Action) error {
	if handle == nil {
		return ErrNilHandler
	}
	ctx = o.propagator().Extract(orBackground(ctx), headers)
	ctx, span := xmetrics.Start(ctx, o.Observer, xmetrics.SpanOptions{
		Component: component,
		Operation: "consume",
		Kind:      xmetrics.KindConsumer,
		Attrs:     []xmetrics.Attr{xmetrics.String("topic", topic)},
	})

	var err error
	defer func() { span.End(xmetrics.Result{Err: err}) }()
	if o.Restorer != nil {
		err = o.Restorer.Run(ctx, nil, handle)
	} else {
		err = handle(ctx)
	}
	return err
}
