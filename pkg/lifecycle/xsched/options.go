package xsched

import "log/slog"

// Option 定义 Pool 可选配置函数类型。
type Option func(*options)

type options struct {
	logger      *slog.Logger
	name        string
	nonBlocking bool
}

func defaultOptions() options {
	return options{
		logger: slog.Default(),
		name:   "pool",
	}
}

// WithLogger 设置自定义日志记录器。
// 默认使用 slog.Default()。传入 nil 将被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName 设置调度器名称，用于日志和指标区分来源。空字符串被忽略。
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithNonBlocking 队列满时立即返回 ErrQueueFull，而不是等待空位。
func WithNonBlocking() Option {
	return func(o *options) {
		o.nonBlocking = true
	}
}
