package xmdclog

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/omeyang/xmdc/pkg/context/xlocal"
	"github.com/omeyang/xmdc/pkg/context/xmdc"
	"github.com/omeyang/xmdc/pkg/lifecycle/xsched"
	"github.com/omeyang/xmdc/pkg/observability/xmetrics"
)

// Action 在恢复了诊断条目的执行单元上运行的动作。
//
// ctx 为派生执行上下文，携带执行单元的 xlocal.Store。
type Action func(ctx context.Context) error

// Restorer 将执行上下文中的载体恢复到执行单元的 Store 中，
// 仅在 action 执行期间可见。
//
// Restorer 是不可变的，可并发使用。
type Restorer struct {
	scheduler xsched.Scheduler
	key       string
	resolver  xmdc.Resolver
	observer  xmetrics.Observer
}

// NewRestorer 创建 Restorer。
//
// scheduler 为 nil 时使用 xsched.Default()；key 为空白时返回 ErrInvalidConfig。
// key 对应的载体在条目同名时优先于其他载体。
func NewRestorer(scheduler xsched.Scheduler, key string, opts ...Option) (*Restorer, error) {
	if err := xmdc.ValidateKey(key); err != nil {
		return nil, fmt.Errorf("%w: context key %q: %w", ErrInvalidConfig, key, err)
	}
	var o options
	if err := o.apply(opts); err != nil {
		return nil, err
	}
	if scheduler == nil {
		scheduler = xsched.Default()
	}
	return &Restorer{
		scheduler: scheduler,
		key:       key,
		resolver:  o.resolver,
		observer:  o.observer,
	}, nil
}

// Key 返回优先载体的 key。
func (r *Restorer) Key() string { return r.key }

// Scheduler 返回派发使用的调度器。
func (r *Restorer) Scheduler() xsched.Scheduler { return r.scheduler }

// Context 返回 ctx 解析出的环境执行上下文合并 carriers 后的派生上下文。
func (r *Restorer) Context(ctx context.Context, carriers ...xmdc.MDC) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return xmdc.Put(xmdc.Resolve(ctx, r.resolver), carriers...)
}

// Entries 返回派生上下文中将被恢复的条目。
func (r *Restorer) Entries(exec context.Context) map[string]string {
	carriers := xmdc.Carriers(exec)
	ordered := make([]xmdc.MDC, 0, len(carriers))
	var own xmdc.MDC
	found := false
	for _, c := range carriers {
		if c.Key() == r.key {
			own, found = c, true
			continue
		}
		ordered = append(ordered, c)
	}
	if found {
		ordered = append(ordered, own)
	}
	return xmdc.Flatten(ordered...)
}

// Run 合并 carriers 后将 action 派发到调度器，等待其完成并返回其结果。
//
// ctx 在派发前已取消时 action 不会执行，返回 ctx.Err()。
// action 返回后（包括返回错误或 panic）Store 恢复到执行前的状态；
// action 的 panic 在调用方 goroutine 上以原值重新抛出。
func (r *Restorer) Run(ctx context.Context, carriers []xmdc.MDC, action Action) error {
	if action == nil {
		return ErrNilAction
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	exec, span := r.start(ctx, carriers)
	entries := r.Entries(exec)

	result := make(chan outcome, 1)
	if err := r.scheduler.Schedule(ctx, func(store xlocal.Store) {
		result <- restore(exec, store, entries, action)
	}); err != nil {
		span.End(xmetrics.Result{Err: err})
		return err
	}

	var out outcome
	select {
	case out = <-result:
	case <-ctx.Done():
		select {
		case out = <-result:
		default:
			span.End(xmetrics.Result{Err: ctx.Err()})
			return ctx.Err()
		}
	}
	span.End(out.result())
	if out.panicked != nil {
		panic(out.panicked.Value)
	}
	return out.err
}

// Go 将 action 派发到调度器后立即返回。
//
// 返回的通道在 action 完成后收到且仅收到一个结果：action 的错误，
// 或 panic 时的 *PanicError。派发失败时直接返回错误，通道为 nil。
func (r *Restorer) Go(ctx context.Context, carriers []xmdc.MDC, action Action) (<-chan error, error) {
	if action == nil {
		return nil, ErrNilAction
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	exec, span := r.start(ctx, carriers)
	entries := r.Entries(exec)

	done := make(chan error, 1)
	if err := r.scheduler.Schedule(ctx, func(store xlocal.Store) {
		out := restore(exec, store, entries, action)
		span.End(out.result())
		if out.panicked != nil {
			done <- out.panicked
		} else {
			done <- out.err
		}
		close(done)
	}); err != nil {
		span.End(xmetrics.Result{Err: err})
		return nil, err
	}
	return done, nil
}

func (r *Restorer) start(ctx context.Context, carriers []xmdc.MDC) (context.Context, xmetrics.Span) {
	exec := r.Context(ctx, carriers...)
	return xmetrics.Start(exec, r.observer, xmetrics.SpanOptions{
		Component: "xmdclog",
		Operation: "restore",
		Kind:      xmetrics.KindInternal,
		Attrs: []xmetrics.Attr{
			xmetrics.String("scheduler", r.scheduler.Name()),
			xmetrics.String("context_key", r.key),
		},
	})
}

type outcome struct {
	err      error
	panicked *PanicError
}

func (o outcome) result() xmetrics.Result {
	if o.panicked != nil {
		return xmetrics.Result{Err: o.panicked}
	}
	return xmetrics.Result{Err: o.err}
}

// restore 在 store 上写入 entries，执行 action，然后恢复 store 原有的状态。
func restore(exec context.Context, store xlocal.Store, entries map[string]string, action Action) (out outcome) {
	prev := make(map[string]string, len(entries))
	var absent []string
	for name := range entries {
		if v, ok := store.Get(name); ok {
			prev[name] = v
		} else {
			absent = append(absent, name)
		}
	}

	store.SetAll(entries)
	defer func() {
		for _, name := range absent {
			store.Remove(name)
		}
		store.SetAll(prev)
		if v := recover(); v != nil {
			out.panicked = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()

	out.err = action(xlocal.WithStore(exec, store))
	return out
}
