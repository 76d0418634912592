package xlog

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// 编译时接口检查
var (
	_ Logger          = (*xlogger)(nil)
	_ Leveler         = (*xlogger)(nil)
	_ Emitter         = (*xlogger)(nil)
	_ LoggerWithLevel = (*xlogger)(nil)
)

// stackPool 堆栈缓冲区池
var stackPool = sync.Pool{
	New: func() any {
		buf := make([]byte, initialStackSize)
		return &buf
	},
}

const (
	initialStackSize = 4096
	maxStackSize     = 64 * 1024
)

// xlogger Logger 接口的实现
//
// 派生 logger（With/WithGroup）共享 levelVar、errorCount 和 inErrorHandler。
type xlogger struct {
	name           string
	handler        slog.Handler
	levelVar       *slog.LevelVar
	denyMarkers    []string
	onError        func(error)
	errorCount     *atomic.Uint64
	addSource      bool
	inErrorHandler *atomic.Bool
}

// callerPC 仅在启用 AddSource 时捕获调用者位置
// skip 从 callerPC 的调用方开始计数
func (l *xlogger) callerPC(skip int) uintptr {
	if !l.addSource {
		return 0
	}
	var pcs [1]uintptr
	// Callers(0) → callerPC(1) → 调用方(2)
	runtime.Callers(2+skip, pcs[:])
	return pcs[0]
}

// logWithSkip 通用日志方法
// extraSkip: 业务代码与 logWithSkip 之间的中间帧数
//
//go:noinline
func (l *xlogger) logWithSkip(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr, extraSkip int) {
	if !l.handler.Enabled(ctx, level) {
		return
	}
	r := slog.NewRecord(time.Now(), level, msg, l.callerPC(2+extraSkip))
	r.AddAttrs(attrs...)
	if err := l.handler.Handle(ctx, r); err != nil {
		l.handleError(err)
	}
}

//go:noinline
func (l *xlogger) log(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	l.logWithSkip(ctx, level, msg, attrs, 1)
}

// markerAllowed marker 未命中屏蔽列表时返回 true
func (l *xlogger) markerAllowed(m *Marker) bool {
	if m == nil {
		return true
	}
	for _, name := range l.denyMarkers {
		if m.Contains(name) {
			return false
		}
	}
	return true
}

// Name 实现 Emitter
func (l *xlogger) Name() string { return l.name }

// MarkerEnabled 实现 Emitter
func (l *xlogger) MarkerEnabled(ctx context.Context, level Level, marker *Marker) bool {
	return l.handler.Enabled(ctx, slog.Level(level)) && l.markerAllowed(marker)
}

// Emit 实现 Emitter
//
// 写入失败时同样计入错误计数并触发 onError，再把错误返回给调用方。
func (l *xlogger) Emit(ctx context.Context, e Entry) error {
	if !l.MarkerEnabled(ctx, e.Level, e.Marker) {
		return nil
	}
	if err := l.handler.Handle(ctx, e.record()); err != nil {
		l.handleError(err)
		return err
	}
	return nil
}

// handleError 处理 Handler.Handle 失败
//
// onError 回调内再次触发日志错误时跳过回调，只计数；回调 panic 被隔离。
func (l *xlogger) handleError(err error) {
	l.errorCount.Add(1)
	if l.onError == nil {
		return
	}
	if l.inErrorHandler.CompareAndSwap(false, true) {
		defer l.inErrorHandler.Store(false)
		l.safeOnError(err)
	}
}

func (l *xlogger) safeOnError(err error) {
	defer func() {
		if r := recover(); r != nil {
			l.errorCount.Add(1)
		}
	}()
	l.onError(err)
}

// Trace 记录 Trace 级别日志
func (l *xlogger) Trace(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.Level(LevelTrace), msg, attrs)
}

// Debug 记录 Debug 级别日志
func (l *xlogger) Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelDebug, msg, attrs)
}

// Info 记录 Info 级别日志
func (l *xlogger) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelInfo, msg, attrs)
}

// Warn 记录 Warn 级别日志
func (l *xlogger) Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelWarn, msg, attrs)
}

// Error 记录 Error 级别日志
func (l *xlogger) Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelError, msg, attrs)
}

// Stack 记录带完整堆栈的错误日志
//
//go:noinline
func (l *xlogger) Stack(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.stackWithSkip(ctx, msg, attrs, 0)
}

//go:noinline
func (l *xlogger) stackWithSkip(ctx context.Context, msg string, attrs []slog.Attr, extraSkip int) {
	if !l.handler.Enabled(ctx, slog.LevelError) {
		return
	}

	r := slog.NewRecord(time.Now(), slog.LevelError, msg, l.callerPC(2+extraSkip))
	r.AddAttrs(attrs...)
	r.AddAttrs(slog.String(KeyStack, captureStack()))

	if err := l.handler.Handle(ctx, r); err != nil {
		l.handleError(err)
	}
}

// captureStack 返回当前 goroutine 的堆栈，缓冲区不足时翻倍扩展至 maxStackSize
func captureStack() string {
	bufp, ok := stackPool.Get().(*[]byte)
	if !ok {
		buf := make([]byte, initialStackSize)
		bufp = &buf
	}
	buf := *bufp
	n := runtime.Stack(buf, false)
	for n == len(buf) && len(buf) < maxStackSize {
		buf = make([]byte, min(len(buf)*2, maxStackSize))
		n = runtime.Stack(buf, false)
	}
	// 归还前先拷贝，未扩展时 buf 与池中缓冲区共享底层数组
	s := string(buf[:n])
	stackPool.Put(bufp)
	return s
}

func (l *xlogger) derive(h slog.Handler) *xlogger {
	cp := *l
	cp.handler = h
	return &cp
}

// With 返回带额外属性的派生 Logger
func (l *xlogger) With(attrs ...slog.Attr) Logger {
	if len(attrs) == 0 {
		return l
	}
	return l.derive(l.handler.WithAttrs(attrs))
}

// WithGroup 返回带分组的派生 Logger
func (l *xlogger) WithGroup(name string) Logger {
	if name == "" {
		return l
	}
	return l.derive(l.handler.WithGroup(name))
}

// SetLevel 实现 Leveler
func (l *xlogger) SetLevel(level Level) {
	l.levelVar.Set(slog.Level(level))
}

// GetLevel 实现 Leveler
func (l *xlogger) GetLevel() Level {
	return Level(l.levelVar.Level())
}

// Enabled 实现 Leveler
func (l *xlogger) Enabled(ctx context.Context, level Level) bool {
	return l.handler.Enabled(ctx, slog.Level(level))
}
