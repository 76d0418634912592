package xmdclog

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/omeyang/xmdc/pkg/context/xmdc"
	"github.com/omeyang/xmdc/pkg/lifecycle/xsched"
	"github.com/omeyang/xmdc/pkg/observability/xlog"
)

// Backend 门面委托的底层 logger。xlog.LoggerWithLevel 满足此接口。
type Backend interface {
	// Name 返回 logger 名称
	Name() string

	// Enabled 检查级别是否启用
	Enabled(ctx context.Context, level xlog.Level) bool

	// MarkerEnabled 检查级别与 marker 组合是否启用
	MarkerEnabled(ctx context.Context, level xlog.Level, marker *xlog.Marker) bool

	// Emit 写入一条日志
	Emit(ctx context.Context, e xlog.Entry) error
}

// Logger 诊断上下文感知的日志门面。
//
// 每次写日志都经由 Restorer 派发：调用点执行上下文中的载体在后端写入期间
// 恢复到执行单元的 xlocal.Store，写入结束后清除。级别判断直接询问后端。
//
// Logger 可并发使用。
type Logger struct {
	key      string
	backend  Backend
	restorer *Restorer
	bound    []xmdc.MDC
	owner    *owner
}

// owner 持有 logger 自行创建的资源，由所有派生 logger 共享
type owner struct {
	once    sync.Once
	closers []func() error
	err     error
}

func (o *owner) add(fn func() error) {
	if fn != nil {
		o.closers = append(o.closers, fn)
	}
}

func (o *owner) close() error {
	o.once.Do(func() {
		var errs []error
		// 调度器先于后端关闭，排空的任务仍能写入
		for _, fn := range o.closers {
			errs = append(errs, fn())
		}
		o.err = errors.Join(errs...)
	})
	return o.err
}

// New 使用 DefaultConfig 创建 Logger。
func New(opts ...Option) (*Logger, error) {
	return NewFromConfig(DefaultConfig(), opts...)
}

// NewFromConfig 根据配置创建 Logger。
//
// 载体 key 空白、调度器或后端配置无效时返回 ErrInvalidConfig，不会返回可用的 Logger。
// Logger 自行创建的 pool 和轮转文件在 Close 时释放。
func NewFromConfig(cfg Config, opts ...Option) (*Logger, error) {
	var o options
	if err := o.apply(opts); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	key := cfg.key()
	if o.keySet {
		key = o.key
	}

	own := &owner{}
	scheduler := o.scheduler
	if scheduler == nil {
		s, owned, err := cfg.Scheduler.build()
		if err != nil {
			return nil, err
		}
		if owned {
			own.add(s.Close)
		}
		scheduler = s
	}

	backend := o.backend
	if backend == nil {
		if cfg.Backend != nil {
			b, cleanup, err := cfg.Backend.build()
			if err != nil {
				_ = own.close()
				return nil, err
			}
			own.add(cleanup)
			backend = b
		} else {
			backend = xlog.Default()
		}
	}

	restorer, err := NewRestorer(scheduler, key, WithResolver(o.resolver), WithObserver(o.observer))
	if err != nil {
		_ = own.close()
		return nil, err
	}
	return &Logger{
		key:      key,
		backend:  backend,
		restorer: restorer,
		owner:    own,
	}, nil
}

// Name 返回后端 logger 的名称。
func (l *Logger) Name() string { return l.backend.Name() }

// ContextKey 返回 logger 的载体 key。
func (l *Logger) ContextKey() string { return l.key }

// Scheduler 返回派发使用的调度器。
func (l *Logger) Scheduler() xsched.Scheduler { return l.restorer.Scheduler() }

// Backend 返回底层 logger。
func (l *Logger) Backend() Backend { return l.backend }

// Restorer 返回 logger 使用的 Restorer。
func (l *Logger) Restorer() *Restorer { return l.restorer }

// WithMDC 返回绑定了额外载体的派生 logger，每次写日志时按顺序合并到执行上下文。
//
// 派生 logger 与原 logger 共享资源，关闭任一个即全部关闭。
func (l *Logger) WithMDC(carriers ...xmdc.MDC) *Logger {
	if len(carriers) == 0 {
		return l
	}
	bound := make([]xmdc.MDC, 0, len(l.bound)+len(carriers))
	bound = append(bound, l.bound...)
	bound = append(bound, carriers...)
	return &Logger{
		key:      l.key,
		backend:  l.backend,
		restorer: l.restorer,
		bound:    bound,
		owner:    l.owner,
	}
}

// ReadMDC 返回调用点执行上下文中 logger key 对应的载体，缺失时为空载体。
func (l *Logger) ReadMDC(ctx context.Context) xmdc.MDC {
	return xmdc.Read(l.restorer.Context(ctx, l.bound...), l.key)
}

// Snapshot 返回在 ctx 下写日志时会恢复到 Store 中的条目。
func (l *Logger) Snapshot(ctx context.Context) map[string]string {
	return l.restorer.Entries(l.restorer.Context(ctx, l.bound...))
}

// IsEnabled 检查级别是否启用。
func (l *Logger) IsEnabled(ctx context.Context, level xlog.Level) bool {
	return l.backend.Enabled(orBackground(ctx), level)
}

// IsEnabledMarker 检查级别与 marker 组合是否启用。
func (l *Logger) IsEnabledMarker(ctx context.Context, level xlog.Level, marker *xlog.Marker) bool {
	return l.backend.MarkerEnabled(orBackground(ctx), level, marker)
}

// Log 以任意级别写日志。marker、err 可为 nil；args 非空时 msg 作为 fmt 格式模板。
func (l *Logger) Log(ctx context.Context, level xlog.Level, marker *xlog.Marker, err error, msg string, args ...any) error {
	return l.log(ctx, xlog.Entry{Level: level, Marker: marker, Err: err, Msg: msg, Args: args})
}

// LogAttrs 以任意级别写带属性的日志。
func (l *Logger) LogAttrs(ctx context.Context, level xlog.Level, marker *xlog.Marker, err error, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: level, Marker: marker, Err: err, Msg: msg, Attrs: attrs})
}

// Close 释放 logger 自行创建的调度器与后端资源。多次调用是安全的。
func (l *Logger) Close() error {
	return l.owner.close()
}

// log 是所有写日志方法的唯一出口，调用深度固定
func (l *Logger) log(ctx context.Context, e xlog.Entry) error {
	var pcs [1]uintptr
	// runtime.Callers, log, 公开方法
	runtime.Callers(3, pcs[:])
	e.PC = pcs[0]
	e.Time = time.Now()
	return l.restorer.Run(ctx, l.bound, func(exec context.Context) error {
		return l.backend.Emit(exec, e)
	})
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
