package xmdc

import "context"

// Resolver 从任务上下文中取出环境执行上下文。
//
// 返回 ok=false 表示当前没有环境执行上下文，调用方应从空上下文开始。
type Resolver func(ctx context.Context) (exec context.Context, ok bool)

// Identity 直接把任务上下文作为执行上下文，是默认的 Resolver。
func Identity(ctx context.Context) (context.Context, bool) {
	return ctx, ctx != nil
}

// nestedKey 嵌套执行上下文的存放位置
type nestedKey struct{ name any }

// WithNested 把 exec 作为嵌套执行上下文挂到 ctx 上，name 区分不同的挂载点。
//
// 适用于任务上下文与诊断上下文分开传递的场景，配合 NestedResolver 使用。
func WithNested(ctx context.Context, name any, exec context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, nestedKey{name}, exec)
}

// NestedResolver 返回读取 WithNested 挂载点的 Resolver。
func NestedResolver(name any) Resolver {
	return func(ctx context.Context) (context.Context, bool) {
		if ctx == nil {
			return nil, false
		}
		exec, ok := ctx.Value(nestedKey{name}).(context.Context)
		return exec, ok && exec != nil
	}
}

// Resolve 使用 r 取出环境执行上下文；没有时返回 context.Background()。
//
// r 为 nil 时使用 Identity。
func Resolve(ctx context.Context, r Resolver) context.Context {
	if r == nil {
		r = Identity
	}
	if exec, ok := r(ctx); ok && exec != nil {
		return exec
	}
	return context.Background()
}
