package xlog

import (
	"fmt"
	"log/slog"
	"time"
)

// Entry 一条待写入的日志。
type Entry struct {
	Level  Level
	Marker *Marker

	// Msg 消息；Args 非空时作为 fmt 格式模板
	Msg  string
	Args []any

	Err   error
	Attrs []slog.Attr

	// PC 调用位置，0 表示未知
	PC uintptr

	// Time 为零值时使用写入时刻
	Time time.Time
}

// Message 返回最终消息文本。
func (e Entry) Message() string {
	if len(e.Args) == 0 {
		return e.Msg
	}
	return fmt.Sprintf(e.Msg, e.Args...)
}

// record 将条目转换为 slog.Record
func (e Entry) record() slog.Record {
	t := e.Time
	if t.IsZero() {
		t = time.Now()
	}
	r := slog.NewRecord(t, slog.Level(e.Level), e.Message(), e.PC)
	if e.Marker != nil {
		r.AddAttrs(slog.String(KeyMarker, e.Marker.Name()))
	}
	r.AddAttrs(e.Attrs...)
	if e.Err != nil {
		r.AddAttrs(Err(e.Err))
	}
	return r
}
