package xmdclog

import (
	"fmt"
	"strings"

	"github.com/omeyang/xmdc/pkg/config/xconf"
	"github.com/omeyang/xmdc/pkg/context/xmdc"
	"github.com/omeyang/xmdc/pkg/lifecycle/xsched"
	"github.com/omeyang/xmdc/pkg/observability/xlog"
	"github.com/omeyang/xmdc/pkg/observability/xrotate"
)

// 调度器类型
const (
	// SchedulerDefault 进程级默认调度器（xsched.Default）
	SchedulerDefault = "default"
	// SchedulerImmediate 在调用方 goroutine 上同步执行
	SchedulerImmediate = "immediate"
	// SchedulerPool logger 独占的 worker pool，随 Close 关闭
	SchedulerPool = "pool"
)

const (
	defaultPoolQueueSize = 1024
	defaultPoolWorkers   = 4
)

// Config 门面配置。
type Config struct {
	// ContextKey 载体 key；空字符串表示使用 xmdc.DefaultKey()，
	// 非空但全是空白字符视为配置错误
	ContextKey string `koanf:"context_key"`

	Scheduler SchedulerConfig `koanf:"scheduler"`

	// Backend 为 nil 时使用 xlog.Default()
	Backend *BackendConfig `koanf:"backend"`
}

// SchedulerConfig 调度器配置。
type SchedulerConfig struct {
	// Kind default（缺省）/ immediate / pool
	Kind        string `koanf:"kind"`
	Name        string `koanf:"name"`
	Workers     int    `koanf:"workers"`
	QueueSize   int    `koanf:"queue_size"`
	NonBlocking bool   `koanf:"non_blocking"`
}

// BackendConfig xlog 后端配置。
type BackendConfig struct {
	Name        string   `koanf:"name"`
	Level       string   `koanf:"level"`
	Format      string   `koanf:"format"`
	AddSource   bool     `koanf:"add_source"`
	File        string   `koanf:"file"`
	MaxSizeMB   int      `koanf:"max_size_mb"`
	MaxBackups  int      `koanf:"max_backups"`
	DenyMarkers []string `koanf:"deny_markers"`
}

// DefaultConfig 返回默认配置：默认 key、默认调度器、默认后端。
func DefaultConfig() Config {
	return Config{Scheduler: SchedulerConfig{Kind: SchedulerDefault}}
}

// Validate 校验配置，错误均包装 ErrInvalidConfig。
func (c Config) Validate() error {
	if c.ContextKey != "" {
		if err := xmdc.ValidateKey(c.ContextKey); err != nil {
			return fmt.Errorf("%w: context key %q: %w", ErrInvalidConfig, c.ContextKey, err)
		}
	}
	if err := c.Scheduler.validate(); err != nil {
		return err
	}
	if c.Backend != nil {
		return c.Backend.validate()
	}
	return nil
}

// key 返回生效的载体 key
func (c Config) key() string {
	if c.ContextKey == "" {
		return xmdc.DefaultKey()
	}
	return c.ContextKey
}

func (s SchedulerConfig) kind() string {
	k := strings.ToLower(strings.TrimSpace(s.Kind))
	if k == "" {
		return SchedulerDefault
	}
	return k
}

func (s SchedulerConfig) validate() error {
	switch s.kind() {
	case SchedulerDefault, SchedulerImmediate:
		return nil
	case SchedulerPool:
		if s.Workers < 0 || s.QueueSize < 0 {
			return fmt.Errorf("%w: negative pool size (workers=%d, queue_size=%d)", ErrInvalidConfig, s.Workers, s.QueueSize)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown scheduler kind %q", ErrInvalidConfig, s.Kind)
	}
}

// build 返回调度器以及是否由 logger 持有（需要在 Close 时关闭）
func (s SchedulerConfig) build() (xsched.Scheduler, bool, error) {
	switch s.kind() {
	case SchedulerImmediate:
		return xsched.Immediate(), false, nil
	case SchedulerPool:
		workers, queue := s.Workers, s.QueueSize
		if workers == 0 {
			workers = defaultPoolWorkers
		}
		if queue == 0 {
			queue = defaultPoolQueueSize
		}
		opts := []xsched.Option{xsched.WithName(s.Name)}
		if s.NonBlocking {
			opts = append(opts, xsched.WithNonBlocking())
		}
		p, err := xsched.NewPool(workers, queue, opts...)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return p, true, nil
	default:
		return xsched.Default(), false, nil
	}
}

func (b *BackendConfig) validate() error {
	if strings.TrimSpace(b.Level) != "" {
		if _, err := xlog.ParseLevel(b.Level); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	switch strings.ToLower(strings.TrimSpace(b.Format)) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown backend format %q", ErrInvalidConfig, b.Format)
	}
	if b.MaxSizeMB < 0 || b.MaxBackups < 0 {
		return fmt.Errorf("%w: negative rotation settings", ErrInvalidConfig)
	}
	return nil
}

// build 构建 xlog 后端，返回其清理函数
func (b *BackendConfig) build() (Backend, func() error, error) {
	builder := xlog.New().
		SetName(b.Name).
		SetLevelString(b.Level).
		SetFormat(b.Format).
		SetAddSource(b.AddSource).
		SetDenyMarkers(b.DenyMarkers...)
	if b.File != "" {
		var opts []xrotate.Option
		if b.MaxSizeMB > 0 {
			opts = append(opts, xrotate.WithMaxSize(b.MaxSizeMB))
		}
		if b.MaxBackups > 0 {
			opts = append(opts, xrotate.WithMaxBackups(b.MaxBackups))
		}
		builder = builder.SetRotation(b.File, opts...)
	}
	logger, cleanup, err := builder.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: backend: %w", ErrInvalidConfig, err)
	}
	return logger, cleanup, nil
}

// LoadConfig 从 xconf 的 path 节点读取配置，未出现的字段保留 DefaultConfig 的值。
// path 为空时读取根节点。
func LoadConfig(src xconf.Config, path string) (Config, error) {
	cfg := DefaultConfig()
	if src == nil {
		return cfg, nil
	}
	if err := src.Unmarshal(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
