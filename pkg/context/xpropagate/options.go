package xpropagate

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/omeyang/xmdc/pkg/context/xmdc"
)

// Option 中间件与拦截器选项。
type Option func(*config)

type config struct {
	requestIDKey   string
	requestIDEntry string
	generate       func() string
	logger         *slog.Logger
	decode         xmdc.DecodeFunc
}

func newConfig(opts []Option) *config {
	cfg := &config{
		generate: uuid.NewString,
		logger:   slog.Default(),
		decode:   xmdc.Decode,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithRequestIDEntry 保证接收到的请求在 carrierKey 载体中带有 entry 条目。
//
// 缺失时优先使用 X-Request-ID 头，其次生成一个 UUID。
// 任一参数为空白时不启用。
func WithRequestIDEntry(carrierKey, entry string) Option {
	return func(c *config) {
		if strings.TrimSpace(carrierKey) == "" || strings.TrimSpace(entry) == "" {
			return
		}
		c.requestIDKey, c.requestIDEntry = carrierKey, entry
	}
}

// WithIDGenerator 替换请求 ID 生成函数，默认 uuid.NewString。nil 被忽略。
func WithIDGenerator(fn func() string) Option {
	return func(c *config) {
		if fn != nil {
			c.generate = fn
		}
	}
}

// WithLogger 设置记录编码失败的 logger，默认 slog.Default()。nil 被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDecodeCache 服务端用容量为 size 的 LRU 缓存头值的解析结果。
// 载体不可变，相同头值可以共享解析结果。size 不大于 0 时不启用。
func WithDecodeCache(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.decode = newDecodeCache(size)
		}
	}
}
