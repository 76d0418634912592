package xlog

import (
	"log/slog"
	"time"
)

// 常用属性 Key
const (
	// KeyError 错误字段
	KeyError = "error"

	// KeyStack 堆栈字段
	KeyStack = "stack"

	// KeyMarker marker 字段
	KeyMarker = "marker"

	// KeyLogger logger 名称字段
	KeyLogger = "logger"

	// KeyDuration 耗时字段
	KeyDuration = "duration"

	// KeyComponent 组件名称字段
	KeyComponent = "component"
)

// Err 创建错误属性，err 为 nil 时返回空属性（会被 slog 忽略）。
//
//	if err != nil {
//	    logger.Error(ctx, "operation failed", xlog.Err(err))
//	}
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Duration 创建耗时属性
func Duration(d time.Duration) slog.Attr {
	return slog.Duration(KeyDuration, d)
}

// Component 创建组件名称属性
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}
