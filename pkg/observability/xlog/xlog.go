package xlog

import (
	"context"
	"log/slog"
)

// Logger 日志接口
//
// 所有方法都需要 context.Context 参数，诊断条目随 context 传播。
// 方法签名只接受 slog.Attr，保证类型安全。
type Logger interface {
	// Trace 记录 Trace 级别日志
	Trace(ctx context.Context, msg string, attrs ...slog.Attr)

	// Debug 记录 Debug 级别日志
	Debug(ctx context.Context, msg string, attrs ...slog.Attr)

	// Info 记录 Info 级别日志
	Info(ctx context.Context, msg string, attrs ...slog.Attr)

	// Warn 记录 Warn 级别日志
	Warn(ctx context.Context, msg string, attrs ...slog.Attr)

	// Error 记录 Error 级别日志
	Error(ctx context.Context, msg string, attrs ...slog.Attr)

	// Stack 记录带当前 goroutine 堆栈的错误日志
	Stack(ctx context.Context, msg string, attrs ...slog.Attr)

	// With 返回带额外属性的派生 Logger，共享父级的级别
	With(attrs ...slog.Attr) Logger

	// WithGroup 返回带分组的派生 Logger
	WithGroup(name string) Logger
}

// Leveler 级别控制接口
type Leveler interface {
	// SetLevel 动态设置日志级别
	SetLevel(level Level)

	// GetLevel 获取当前日志级别
	GetLevel() Level

	// Enabled 检查指定级别是否启用
	Enabled(ctx context.Context, level Level) bool
}

// Emitter 结构化条目写入接口，供门面使用。
type Emitter interface {
	// Name 返回 logger 名称
	Name() string

	// MarkerEnabled 检查指定级别和 marker 组合是否启用
	MarkerEnabled(ctx context.Context, level Level, marker *Marker) bool

	// Emit 写入一条日志。未启用的条目被丢弃并返回 nil；写入失败返回错误。
	Emit(ctx context.Context, e Entry) error
}

// LoggerWithLevel 组合接口，Build() 返回此接口。
type LoggerWithLevel interface {
	Logger
	Leveler
	Emitter
}
