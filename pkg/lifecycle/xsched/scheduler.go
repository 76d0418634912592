package xsched

import (
	"context"

	"github.com/omeyang/xmdc/pkg/context/xlocal"
)

// Task 在某个执行单元上运行的任务，store 为该执行单元私有的诊断存储。
type Task func(store xlocal.Store)

// Scheduler 任务调度器。
type Scheduler interface {
	// Name 返回调度器名称。
	Name() string

	// Schedule 将任务交给某个执行单元。
	//
	// 返回 nil 表示任务已被接收并将运行；任务本身的结果由调用方自行收集。
	// 任务无法被接收时返回错误（已关闭、队列满或 ctx 在交接前取消）。
	Schedule(ctx context.Context, task Task) error

	// Close 释放调度器资源，等待已接收的任务完成。
	Close() error
}

// immediate 在调用方 goroutine 上同步执行任务。
type immediate struct{}

// Immediate 返回同步调度器。
//
// 任务使用 ctx 上挂载的存储（见 xlocal.WithStore）；没有时为本次调用
// 新建一个空存储。嵌套在 Pool 任务内部的调用因此共享外层 worker 的存储。
func Immediate() Scheduler { return immediate{} }

func (immediate) Name() string { return "immediate" }

func (immediate) Schedule(ctx context.Context, task Task) error {
	if ctx == nil {
		return ErrNilContext
	}
	if task == nil {
		return ErrNilTask
	}
	store, ok := xlocal.FromContext(ctx)
	if !ok {
		store = xlocal.NewMap()
	}
	task(store)
	return nil
}

func (immediate) Close() error { return nil }
