package xlog_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/omeyang/xmdc/pkg/observability/xlog"
)

func TestDefault_LazyInit(t *testing.T) {
	xlog.ResetDefault()
	t.Cleanup(xlog.ResetDefault)

	l := xlog.Default()
	if l == nil {
		t.Fatal("Default() = nil")
	}
	if xlog.Default() != l {
		t.Error("Default() should return the same instance")
	}
}

func TestGlobal_Functions(t *testing.T) {
	t.Cleanup(xlog.ResetDefault)

	var buf bytes.Buffer
	logger, _, err := xlog.New().SetOutput(&buf).SetLevel(xlog.LevelTrace).SetAddSource(true).Build()
	if err != nil {
		t.Fatal(err)
	}
	xlog.SetDefault(logger)
	xlog.SetDefault(nil)

	ctx := context.Background()
	xlog.Trace(ctx, "g-trace")
	xlog.Debug(ctx, "g-debug")
	xlog.Info(ctx, "g-info")
	xlog.Warn(ctx, "g-warn")
	xlog.Error(ctx, "g-error")
	xlog.Stack(ctx, "g-stack")

	out := buf.String()
	for _, want := range []string{"g-trace", "g-debug", "g-info", "g-warn", "g-error", "g-stack"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Count(out, "global_test.go") < 6 {
		t.Errorf("source should point at the test file for every global call:\n%s", out)
	}
}

// recordingLogger 非 xlogger 实现，验证全局函数的回退路径
type recordingLogger struct {
	xlog.LoggerWithLevel
	calls []string
}

func (r *recordingLogger) Trace(_ context.Context, msg string, _ ...slog.Attr) {
	r.calls = append(r.calls, "trace:"+msg)
}
func (r *recordingLogger) Debug(_ context.Context, msg string, _ ...slog.Attr) {
	r.calls = append(r.calls, "debug:"+msg)
}
func (r *recordingLogger) Info(_ context.Context, msg string, _ ...slog.Attr) {
	r.calls = append(r.calls, "info:"+msg)
}
func (r *recordingLogger) Warn(_ context.Context, msg string, _ ...slog.Attr) {
	r.calls = append(r.calls, "warn:"+msg)
}
func (r *recordingLogger) Error(_ context.Context, msg string, _ ...slog.Attr) {
	r.calls = append(r.calls, "error:"+msg)
}
func (r *recordingLogger) Stack(_ context.Context, msg string, _ ...slog.Attr) {
	r.calls = append(r.calls, "stack:"+msg)
}

func TestGlobal_FallbackNonXlogger(t *testing.T) {
	t.Cleanup(xlog.ResetDefault)
	rec := &recordingLogger{}
	xlog.SetDefault(rec)

	ctx := context.Background()
	xlog.Trace(ctx, "a")
	xlog.Debug(ctx, "b")
	xlog.Info(ctx, "c")
	xlog.Warn(ctx, "d")
	xlog.Error(ctx, "e")
	xlog.Stack(ctx, "f")

	want := []string{"trace:a", "debug:b", "info:c", "warn:d", "error:e", "stack:f"}
	if strings.Join(rec.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}
