package xmdc

import (
	"context"
	"log/slog"
)

// AppendAttrs 将 ctx 中所有载体的条目平铺追加到 attrs。
//
// 多个载体含同名条目时，按载体写入顺序后者覆盖前者，输出按名称排序。
func AppendAttrs(attrs []slog.Attr, ctx context.Context) []slog.Attr {
	carriers := Carriers(ctx)
	switch len(carriers) {
	case 0:
		return attrs
	case 1:
		return carriers[0].AppendAttrs(attrs)
	}
	return MDC{entries: Flatten(carriers...)}.AppendAttrs(attrs)
}

// Attrs 返回 ctx 中所有载体平铺后的 slog.Attr 切片，没有条目时返回 nil。
func Attrs(ctx context.Context) []slog.Attr {
	attrs := AppendAttrs(nil, ctx)
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}
