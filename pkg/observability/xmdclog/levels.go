package xmdclog

import (
	"context"
	"log/slog"

	"github.com/omeyang/xmdc/pkg/observability/xlog"
)

// 每个级别提供相同的调用形态：
//   - X(ctx, msg, attrs...)
//   - Xf(ctx, format, args...)
//   - XErr(ctx, err, msg, attrs...)
//   - XMarker / XMarkerf / XMarkerErr：带 marker 的对应形态
//   - XEnabled / XEnabledMarker：级别判断，不经过 Restorer
//
// 写日志方法返回后端写入错误或派发错误。

// Trace 写 Trace 级别日志。
func (l *Logger) Trace(ctx context.Context, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelTrace, Msg: msg, Attrs: attrs})
}

// Tracef 按 format 与 args 格式化后写 Trace 级别日志。
func (l *Logger) Tracef(ctx context.Context, format string, args ...any) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelTrace, Msg: format, Args: args})
}

// TraceErr 写附带 err 的 Trace 级别日志。
func (l *Logger) TraceErr(ctx context.Context, err error, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelTrace, Err: err, Msg: msg, Attrs: attrs})
}

// TraceMarker 写带 marker 的 Trace 级别日志。
func (l *Logger) TraceMarker(ctx context.Context, marker *xlog.Marker, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelTrace, Marker: marker, Msg: msg, Attrs: attrs})
}

// TraceMarkerf 写带 marker 的格式化 Trace 级别日志。
func (l *Logger) TraceMarkerf(ctx context.Context, marker *xlog.Marker, format string, args ...any) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelTrace, Marker: marker, Msg: format, Args: args})
}

// TraceMarkerErr 写带 marker 且附带 err 的 Trace 级别日志。
func (l *Logger) TraceMarkerErr(ctx context.Context, marker *xlog.Marker, err error, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelTrace, Marker: marker, Err: err, Msg: msg, Attrs: attrs})
}

// TraceEnabled 报告后端是否启用 Trace 级别，不经过 Restorer。
func (l *Logger) TraceEnabled(ctx context.Context) bool {
	return l.IsEnabled(ctx, xlog.LevelTrace)
}

// TraceEnabledMarker 报告后端是否对 marker 启用 Trace 级别，不经过 Restorer。
func (l *Logger) TraceEnabledMarker(ctx context.Context, marker *xlog.Marker) bool {
	return l.IsEnabledMarker(ctx, xlog.LevelTrace, marker)
}

// Debug 写 Debug 级别日志。
func (l *Logger) Debug(ctx context.Context, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelDebug, Msg: msg, Attrs: attrs})
}

// Debugf 按 format 与 args 格式化后写 Debug 级别日志。
func (l *Logger) Debugf(ctx context.Context, format string, args ...any) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelDebug, Msg: format, Args: args})
}

// DebugErr 写附带 err 的 Debug 级别日志。
func (l *Logger) DebugErr(ctx context.Context, err error, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelDebug, Err: err, Msg: msg, Attrs: attrs})
}

// DebugMarker 写带 marker 的 Debug 级别日志。
func (l *Logger) DebugMarker(ctx context.Context, marker *xlog.Marker, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelDebug, Marker: marker, Msg: msg, Attrs: attrs})
}

// DebugMarkerf 写带 marker 的格式化 Debug 级别日志。
func (l *Logger) DebugMarkerf(ctx context.Context, marker *xlog.Marker, format string, args ...any) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelDebug, Marker: marker, Msg: format, Args: args})
}

// DebugMarkerErr 写带 marker 且附带 err 的 Debug 级别日志。
func (l *Logger) DebugMarkerErr(ctx context.Context, marker *xlog.Marker, err error, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelDebug, Marker: marker, Err: err, Msg: msg, Attrs: attrs})
}

// DebugEnabled 报告后端是否启用 Debug 级别，不经过 Restorer。
func (l *Logger) DebugEnabled(ctx context.Context) bool {
	return l.IsEnabled(ctx, xlog.LevelDebug)
}

// DebugEnabledMarker 报告后端是否对 marker 启用 Debug 级别，不经过 Restorer。
func (l *Logger) DebugEnabledMarker(ctx context.Context, marker *xlog.Marker) bool {
	return l.IsEnabledMarker(ctx, xlog.LevelDebug, marker)
}

// Info 写 Info 级别日志。
func (l *Logger) Info(ctx context.Context, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelInfo, Msg: msg, Attrs: attrs})
}

// Infof 按 format 与 args 格式化后写 Info 级别日志。
func (l *Logger) Infof(ctx context.Context, format string, args ...any) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelInfo, Msg: format, Args: args})
}

// InfoErr 写附带 err 的 Info 级别日志。
func (l *Logger) InfoErr(ctx context.Context, err error, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelInfo, Err: err, Msg: msg, Attrs: attrs})
}

// InfoMarker 写带 marker 的 Info 级别日志。
func (l *Logger) InfoMarker(ctx context.Context, marker *xlog.Marker, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelInfo, Marker: marker, Msg: msg, Attrs: attrs})
}

// InfoMarkerf 写带 marker 的格式化 Info 级别日志。
func (l *Logger) InfoMarkerf(ctx context.Context, marker *xlog.Marker, format string, args ...any) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelInfo, Marker: marker, Msg: format, Args: args})
}

// InfoMarkerErr 写带 marker 且附带 err 的 Info 级别日志。
func (l *Logger) InfoMarkerErr(ctx context.Context, marker *xlog.Marker, err error, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelInfo, Marker: marker, Err: err, Msg: msg, Attrs: attrs})
}

// InfoEnabled 报告后端是否启用 Info 级别，不经过 Restorer。
func (l *Logger) InfoEnabled(ctx context.Context) bool {
	return l.IsEnabled(ctx, xlog.LevelInfo)
}

// InfoEnabledMarker 报告后端是否对 marker 启用 Info 级别，不经过 Restorer。
func (l *Logger) InfoEnabledMarker(ctx context.Context, marker *xlog.Marker) bool {
	return l.IsEnabledMarker(ctx, xlog.LevelInfo, marker)
}

// Warn 写 Warn 级别日志。
func (l *Logger) Warn(ctx context.Context, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelWarn, Msg: msg, Attrs: attrs})
}

// Warnf 按 format 与 args 格式化后写 Warn 级别日志。
func (l *Logger) Warnf(ctx context.Context, format string, args ...any) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelWarn, Msg: format, Args: args})
}

// WarnErr 写附带 err 的 Warn 级别日志。
func (l *Logger) WarnErr(ctx context.Context, err error, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelWarn, Err: err, Msg: msg, Attrs: attrs})
}

// WarnMarker 写带 marker 的 Warn 级别日志。
func (l *Logger) WarnMarker(ctx context.Context, marker *xlog.Marker, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelWarn, Marker: marker, Msg: msg, Attrs: attrs})
}

// WarnMarkerf 写带 marker 的格式化 Warn 级别日志。
func (l *Logger) WarnMarkerf(ctx context.Context, marker *xlog.Marker, format string, args ...any) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelWarn, Marker: marker, Msg: format, Args: args})
}

// WarnMarkerErr 写带 marker 且附带 err 的 Warn 级别日志。
func (l *Logger) WarnMarkerErr(ctx context.Context, marker *xlog.Marker, err error, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelWarn, Marker: marker, Err: err, Msg: msg, Attrs: attrs})
}

// WarnEnabled 报告后端是否启用 Warn 级别，不经过 Restorer。
func (l *Logger) WarnEnabled(ctx context.Context) bool {
	return l.IsEnabled(ctx, xlog.LevelWarn)
}

// WarnEnabledMarker 报告后端是否对 marker 启用 Warn 级别，不经过 Restorer。
func (l *Logger) WarnEnabledMarker(ctx context.Context, marker *xlog.Marker) bool {
	return l.IsEnabledMarker(ctx, xlog.LevelWarn, marker)
}

// Error 写 Error 级别日志。
func (l *Logger) Error(ctx context.Context, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelError, Msg: msg, Attrs: attrs})
}

// Errorf 按 format 与 args 格式化后写 Error 级别日志。
func (l *Logger) Errorf(ctx context.Context, format string, args ...any) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelError, Msg: format, Args: args})
}

// ErrorErr 写附带 err 的 Error 级别日志。
func (l *Logger) ErrorErr(ctx context.Context, err error, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelError, Err: err, Msg: msg, Attrs: attrs})
}

// ErrorMarker 写带 marker 的 Error 级别日志。
func (l *Logger) ErrorMarker(ctx context.Context, marker *xlog.Marker, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelError, Marker: marker, Msg: msg, Attrs: attrs})
}

// ErrorMarkerf 写带 marker 的格式化 Error 级别日志。
func (l *Logger) ErrorMarkerf(ctx context.Context, marker *xlog.Marker, format string, args ...any) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelError, Marker: marker, Msg: format, Args: args})
}

// ErrorMarkerErr 写带 marker 且附带 err 的 Error 级别日志。
func (l *Logger) ErrorMarkerErr(ctx context.Context, marker *xlog.Marker, err error, msg string, attrs ...slog.Attr) error {
	return l.log(ctx, xlog.Entry{Level: xlog.LevelError, Marker: marker, Err: err, Msg: msg, Attrs: attrs})
}

// ErrorEnabled 报告后端是否启用 Error 级别，不经过 Restorer。
func (l *Logger) ErrorEnabled(ctx context.Context) bool {
	return l.IsEnabled(ctx, xlog.LevelError)
}

// ErrorEnabledMarker 报告后端是否对 marker 启用 Error 级别，不经过 Restorer。
func (l *Logger) ErrorEnabledMarker(ctx context.Context, marker *xlog.Marker) bool {
	return l.IsEnabledMarker(ctx, xlog.LevelError, marker)
}
