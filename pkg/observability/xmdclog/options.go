package xmdclog

import (
	"fmt"

	"github.com/omeyang/xmdc/pkg/context/xmdc"
	"github.com/omeyang/xmdc/pkg/lifecycle/xsched"
	"github.com/omeyang/xmdc/pkg/observability/xmetrics"
)

// Option 门面与 Restorer 的可选配置。
//
// NewRestorer 只使用 WithResolver 与 WithObserver，其余选项被忽略。
type Option func(*options)

type options struct {
	key       string
	keySet    bool
	scheduler xsched.Scheduler
	backend   Backend
	resolver  xmdc.Resolver
	observer  xmetrics.Observer
	err       error
}

func (o *options) apply(opts []Option) error {
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o.err
}

// WithContextKey 显式指定 logger 的载体 key，覆盖配置中的值。
//
// 空白 key 使构造失败并返回 ErrInvalidConfig。
func WithContextKey(key string) Option {
	return func(o *options) {
		if err := xmdc.ValidateKey(key); err != nil && o.err == nil {
			o.err = fmt.Errorf("%w: context key %q: %w", ErrInvalidConfig, key, err)
			return
		}
		o.key, o.keySet = key, true
	}
}

// WithScheduler 使用外部调度器，覆盖配置中的调度器设置。
// 外部调度器由调用方负责关闭。nil 被忽略。
func WithScheduler(s xsched.Scheduler) Option {
	return func(o *options) {
		if s != nil {
			o.scheduler = s
		}
	}
}

// WithBackend 使用外部后端，覆盖配置中的后端设置。nil 被忽略。
func WithBackend(b Backend) Option {
	return func(o *options) {
		if b != nil {
			o.backend = b
		}
	}
}

// WithResolver 设置环境执行上下文的解析方式，默认直接使用调用方 ctx。
func WithResolver(r xmdc.Resolver) Option {
	return func(o *options) {
		o.resolver = r
	}
}

// WithObserver 为每次派发记录观测跨度。
func WithObserver(obs xmetrics.Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}
