package xmdclog

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/omeyang/xmdc/pkg/context/xlocal"
	"github.com/omeyang/xmdc/pkg/context/xmdc"
	"github.com/omeyang/xmdc/pkg/lifecycle/xsched"
	"github.com/omeyang/xmdc/pkg/observability/xlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// countingScheduler 统计派发次数
type countingScheduler struct {
	xsched.Scheduler
	n atomic.Int32
}

func (s *countingScheduler) Schedule(ctx context.Context, task xsched.Task) error {
	s.n.Add(1)
	return s.Scheduler.Schedule(ctx, task)
}

func newMockLogger(t *testing.T, opts ...Option) (*Logger, *MockBackend) {
	t.Helper()
	ctrl := gomock.NewController(t)
	backend := NewMockBackend(ctrl)
	opts = append([]Option{WithBackend(backend), WithScheduler(xsched.Immediate())}, opts...)
	l, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l, backend
}

// =============================================================================
// 构造测试
// =============================================================================

func TestNew_BlankContextKeyFails(t *testing.T) {
	for _, key := range []string{"", " ", "\t", "  \n "} {
		l, err := New(WithContextKey(key), WithScheduler(xsched.Immediate()))
		require.ErrorIs(t, err, ErrInvalidConfig, "key %q", key)
		assert.Nil(t, l)
	}

	_, err := NewFromConfig(Config{ContextKey: "   "}, WithScheduler(xsched.Immediate()))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNew_ReportsExactKey(t *testing.T) {
	l, _ := newMockLogger(t, WithContextKey("request"))
	assert.Equal(t, "request", l.ContextKey())

	l, err := NewFromConfig(Config{ContextKey: "cfg-key"}, WithScheduler(xsched.Immediate()), WithBackend(xlog.Default()))
	require.NoError(t, err)
	assert.Equal(t, "cfg-key", l.ContextKey())
}

func TestNew_DefaultKey(t *testing.T) {
	t.Cleanup(ResetDefaults)
	l, _ := newMockLogger(t)
	assert.Equal(t, xmdc.DefaultContextKey, l.ContextKey())

	require.NoError(t, SetDefaults(Defaults{ContextKey: "ctx"}))
	l, _ = newMockLogger(t)
	assert.Equal(t, "ctx", l.ContextKey())
}

func TestNew_Accessors(t *testing.T) {
	l, backend := newMockLogger(t)
	backend.EXPECT().Name().Return("orders")

	assert.Equal(t, "orders", l.Name())
	assert.Equal(t, "immediate", l.Scheduler().Name())
	assert.Same(t, backend, l.Backend())
	assert.Equal(t, l.ContextKey(), l.Restorer().Key())
}

// =============================================================================
// 委托测试
// =============================================================================

func TestLogger_InfoSeesRestoredStore(t *testing.T) {
	l, backend := newMockLogger(t, WithContextKey("mdc"))

	store := xlocal.NewMap()
	ctx := xlocal.WithStore(context.Background(), store)
	ctx = xmdc.Put(ctx, xmdc.NewWithKey("mdc", map[string]string{"traceId": "abc"}))

	backend.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, e xlog.Entry) error {
		s, ok := xlocal.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, map[string]string{"traceId": "abc"}, s.Snapshot())
		assert.Equal(t, "hello", e.Message())
		return nil
	})

	require.NoError(t, l.Info(ctx, "hello"))
	assert.Zero(t, store.Len())
}

func TestLogger_BackendErrorUnchanged(t *testing.T) {
	l, backend := newMockLogger(t)
	want := errors.New("disk full")
	backend.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(want)

	assert.Same(t, want, l.Error(context.Background(), "x"))
}

func TestLogger_BackendPanicRethrown(t *testing.T) {
	l, backend := newMockLogger(t)
	store := xlocal.NewMap()
	ctx := xlocal.WithStore(context.Background(), store)
	ctx = xmdc.Put(ctx, xmdc.NewWithKey(l.ContextKey(), map[string]string{"a": "1"}))

	backend.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, xlog.Entry) error {
		panic("backend exploded")
	})

	assert.PanicsWithValue(t, "backend exploded", func() { _ = l.Warn(ctx, "x") })
	assert.Zero(t, store.Len())
}

func TestLogger_CancelledContextNeverEmits(t *testing.T) {
	l, _ := newMockLogger(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// 后端没有设置期望，任何调用都会让测试失败
	assert.ErrorIs(t, l.Info(ctx, "dropped"), context.Canceled)
}

func TestLogger_LevelVariants(t *testing.T) {
	marker := xlog.GetMarker("AUDIT")
	cause := errors.New("cause")
	attr := slog.String("k", "v")

	tests := []struct {
		name string
		call func(l *Logger, ctx context.Context) error
		want xlog.Entry
	}{
		{"Trace", func(l *Logger, ctx context.Context) error { return l.Trace(ctx, "m", attr) },
			xlog.Entry{Level: xlog.LevelTrace, Msg: "m", Attrs: []slog.Attr{attr}}},
		{"Debugf", func(l *Logger, ctx context.Context) error { return l.Debugf(ctx, "n=%d", 1) },
			xlog.Entry{Level: xlog.LevelDebug, Msg: "n=%d", Args: []any{1}}},
		{"InfoErr", func(l *Logger, ctx context.Context) error { return l.InfoErr(ctx, cause, "m") },
			xlog.Entry{Level: xlog.LevelInfo, Msg: "m", Err: cause}},
		{"WarnMarker", func(l *Logger, ctx context.Context) error { return l.WarnMarker(ctx, marker, "m") },
			xlog.Entry{Level: xlog.LevelWarn, Msg: "m", Marker: marker}},
		{"ErrorMarkerf", func(l *Logger, ctx context.Context) error { return l.ErrorMarkerf(ctx, marker, "%s", "x") },
			xlog.Entry{Level: xlog.LevelError, Msg: "%s", Args: []any{"x"}, Marker: marker}},
		{"TraceMarkerErr", func(l *Logger, ctx context.Context) error { return l.TraceMarkerErr(ctx, marker, cause, "m", attr) },
			xlog.Entry{Level: xlog.LevelTrace, Msg: "m", Marker: marker, Err: cause, Attrs: []slog.Attr{attr}}},
		{"Tracef", func(l *Logger, ctx context.Context) error { return l.Tracef(ctx, "t") },
			xlog.Entry{Level: xlog.LevelTrace, Msg: "t"}},
		{"TraceErr", func(l *Logger, ctx context.Context) error { return l.TraceErr(ctx, cause, "m") },
			xlog.Entry{Level: xlog.LevelTrace, Msg: "m", Err: cause}},
		{"TraceMarker", func(l *Logger, ctx context.Context) error { return l.TraceMarker(ctx, marker, "m") },
			xlog.Entry{Level: xlog.LevelTrace, Msg: "m", Marker: marker}},
		{"TraceMarkerf", func(l *Logger, ctx context.Context) error { return l.TraceMarkerf(ctx, marker, "m") },
			xlog.Entry{Level: xlog.LevelTrace, Msg: "m", Marker: marker}},
		{"Debug", func(l *Logger, ctx context.Context) error { return l.Debug(ctx, "m") },
			xlog.Entry{Level: xlog.LevelDebug, Msg: "m"}},
		{"DebugErr", func(l *Logger, ctx context.Context) error { return l.DebugErr(ctx, cause, "m") },
			xlog.Entry{Level: xlog.LevelDebug, Msg: "m", Err: cause}},
		{"DebugMarker", func(l *Logger, ctx context.Context) error { return l.DebugMarker(ctx, marker, "m") },
			xlog.Entry{Level: xlog.LevelDebug, Msg: "m", Marker: marker}},
		{"DebugMarkerf", func(l *Logger, ctx context.Context) error { return l.DebugMarkerf(ctx, marker, "m") },
			xlog.Entry{Level: xlog.LevelDebug, Msg: "m", Marker: marker}},
		{"DebugMarkerErr", func(l *Logger, ctx context.Context) error { return l.DebugMarkerErr(ctx, marker, cause, "m") },
			xlog.Entry{Level: xlog.LevelDebug, Msg: "m", Marker: marker, Err: cause}},
		{"Info", func(l *Logger, ctx context.Context) error { return l.Info(ctx, "m") },
			xlog.Entry{Level: xlog.LevelInfo, Msg: "m"}},
		{"Infof", func(l *Logger, ctx context.Context) error { return l.Infof(ctx, "m") },
			xlog.Entry{Level: xlog.LevelInfo, Msg: "m"}},
		{"InfoMarker", func(l *Logger, ctx context.Context) error { return l.InfoMarker(ctx, marker, "m") },
			xlog.Entry{Level: xlog.LevelInfo, Msg: "m", Marker: marker}},
		{"InfoMarkerf", func(l *Logger, ctx context.Context) error { return l.InfoMarkerf(ctx, marker, "m") },
			xlog.Entry{Level: xlog.LevelInfo, Msg: "m", Marker: marker}},
		{"InfoMarkerErr", func(l *Logger, ctx context.Context) error { return l.InfoMarkerErr(ctx, marker, cause, "m") },
			xlog.Entry{Level: xlog.LevelInfo, Msg: "m", Marker: marker, Err: cause}},
		{"Warn", func(l *Logger, ctx context.Context) error { return l.Warn(ctx, "m") },
			xlog.Entry{Level: xlog.LevelWarn, Msg: "m"}},
		{"Warnf", func(l *Logger, ctx context.Context) error { return l.Warnf(ctx, "m") },
			xlog.Entry{Level: xlog.LevelWarn, Msg: "m"}},
		{"WarnErr", func(l *Logger, ctx context.Context) error { return l.WarnErr(ctx, cause, "m") },
			xlog.Entry{Level: xlog.LevelWarn, Msg: "m", Err: cause}},
		{"WarnMarkerf", func(l *Logger, ctx context.Context) error { return l.WarnMarkerf(ctx, marker, "m") },
			xlog.Entry{Level: xlog.LevelWarn, Msg: "m", Marker: marker}},
		{"WarnMarkerErr", func(l *Logger, ctx context.Context) error { return l.WarnMarkerErr(ctx, marker, cause, "m") },
			xlog.Entry{Level: xlog.LevelWarn, Msg: "m", Marker: marker, Err: cause}},
		{"Error", func(l *Logger, ctx context.Context) error { return l.Error(ctx, "m") },
			xlog.Entry{Level: xlog.LevelError, Msg: "m"}},
		{"Errorf", func(l *Logger, ctx context.Context) error { return l.Errorf(ctx, "m") },
			xlog.Entry{Level: xlog.LevelError, Msg: "m"}},
		{"ErrorErr", func(l *Logger, ctx context.Context) error { return l.ErrorErr(ctx, cause, "m") },
			xlog.Entry{Level: xlog.LevelError, Msg: "m", Err: cause}},
		{"ErrorMarker", func(l *Logger, ctx context.Context) error { return l.ErrorMarker(ctx, marker, "m") },
			xlog.Entry{Level: xlog.LevelError, Msg: "m", Marker: marker}},
		{"ErrorMarkerErr", func(l *Logger, ctx context.Context) error { return l.ErrorMarkerErr(ctx, marker, cause, "m") },
			xlog.Entry{Level: xlog.LevelError, Msg: "m", Marker: marker, Err: cause}},
		{"Log", func(l *Logger, ctx context.Context) error { return l.Log(ctx, xlog.LevelWarn, marker, cause, "m %d", 2) },
			xlog.Entry{Level: xlog.LevelWarn, Msg: "m %d", Args: []any{2}, Marker: marker, Err: cause}},
		{"LogAttrs", func(l *Logger, ctx context.Context) error { return l.LogAttrs(ctx, xlog.LevelInfo, nil, nil, "m", attr) },
			xlog.Entry{Level: xlog.LevelInfo, Msg: "m", Attrs: []slog.Attr{attr}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, backend := newMockLogger(t)
			var got xlog.Entry
			backend.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e xlog.Entry) error {
				got = e
				return nil
			})

			require.NoError(t, tt.call(l, context.Background()))
			assert.Equal(t, tt.want.Level, got.Level)
			assert.Equal(t, tt.want.Msg, got.Msg)
			assert.Equal(t, tt.want.Args, got.Args)
			assert.Same(t, tt.want.Marker, got.Marker)
			assert.Equal(t, tt.want.Err, got.Err)
			assert.Equal(t, tt.want.Attrs, got.Attrs)
			assert.NotZero(t, got.PC)
			assert.False(t, got.Time.IsZero())
		})
	}
}

func TestLogger_CallerPC(t *testing.T) {
	l, backend := newMockLogger(t)
	var pc uintptr
	backend.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e xlog.Entry) error {
		pc = e.PC
		return nil
	})

	require.NoError(t, l.Info(context.Background(), "where"))
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	assert.True(t, strings.HasSuffix(frame.Function, "TestLogger_CallerPC"), frame.Function)
}

func TestLogger_EnabledBypassesScheduler(t *testing.T) {
	sched := &countingScheduler{Scheduler: xsched.Immediate()}
	l, backend := newMockLogger(t, WithScheduler(sched))
	marker := xlog.GetMarker("AUDIT")
	ctx := context.Background()

	backend.EXPECT().Enabled(ctx, xlog.LevelInfo).Return(true)
	backend.EXPECT().Enabled(ctx, xlog.LevelDebug).Return(false)
	backend.EXPECT().Enabled(ctx, xlog.LevelTrace).Return(false)
	backend.EXPECT().Enabled(ctx, xlog.LevelWarn).Return(true)
	backend.EXPECT().Enabled(ctx, xlog.LevelError).Return(true)
	backend.EXPECT().MarkerEnabled(ctx, xlog.LevelWarn, marker).Return(false)
	backend.EXPECT().MarkerEnabled(ctx, xlog.LevelError, marker).Return(true)
	backend.EXPECT().MarkerEnabled(ctx, xlog.LevelTrace, marker).Return(true)
	backend.EXPECT().MarkerEnabled(ctx, xlog.LevelDebug, marker).Return(true)
	backend.EXPECT().MarkerEnabled(ctx, xlog.LevelInfo, marker).Return(true)

	assert.True(t, l.InfoEnabled(ctx))
	assert.False(t, l.DebugEnabled(ctx))
	assert.False(t, l.TraceEnabled(ctx))
	assert.True(t, l.WarnEnabled(ctx))
	assert.True(t, l.ErrorEnabled(ctx))
	assert.False(t, l.WarnEnabledMarker(ctx, marker))
	assert.True(t, l.ErrorEnabledMarker(ctx, marker))
	assert.True(t, l.TraceEnabledMarker(ctx, marker))
	assert.True(t, l.DebugEnabledMarker(ctx, marker))
	assert.True(t, l.InfoEnabledMarker(ctx, marker))
	assert.Zero(t, sched.n.Load())
}

func TestLogger_WithMDC(t *testing.T) {
	l, backend := newMockLogger(t, WithContextKey("mdc"))
	bound := l.WithMDC(xmdc.NewWithKey("service", map[string]string{"svc": "orders"}))
	assert.Same(t, l, l.WithMDC())

	ctx := xmdc.Put(context.Background(), xmdc.NewWithKey("mdc", map[string]string{"traceId": "abc"}))
	assert.Equal(t, map[string]string{"traceId": "abc", "svc": "orders"}, bound.Snapshot(ctx))
	assert.Equal(t, map[string]string{"traceId": "abc"}, l.Snapshot(ctx))
	assert.Equal(t, "abc", func() string { v, _ := bound.ReadMDC(ctx).Get("traceId"); return v }())

	backend.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ xlog.Entry) error {
		s, _ := xlocal.FromContext(ctx)
		assert.Equal(t, "orders", func() string { v, _ := s.Get("svc"); return v }())
		return nil
	})
	require.NoError(t, bound.Info(ctx, "bound"))
}

func TestLogger_ReadMDCAbsent(t *testing.T) {
	l, _ := newMockLogger(t, WithContextKey("mdc"))
	m := l.ReadMDC(context.Background())
	assert.True(t, m.IsEmpty())
	assert.Equal(t, "mdc", m.Key())
}
