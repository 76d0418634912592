package xsched

import "errors"

var (
	// ErrPoolStopped 表示 pool 已关闭，无法提交任务。
	ErrPoolStopped = errors.New("xsched: pool is stopped")

	// ErrQueueFull 表示任务队列已满（仅非阻塞模式）。
	ErrQueueFull = errors.New("xsched: queue is full")

	// ErrInvalidWorkers 表示 worker 数量无效。
	ErrInvalidWorkers = errors.New("xsched: invalid worker count")

	// ErrInvalidQueueSize 表示队列大小无效。
	ErrInvalidQueueSize = errors.New("xsched: invalid queue size")

	// ErrNilTask 表示任务为 nil。
	ErrNilTask = errors.New("xsched: nil task")

	// ErrNilContext 表示 context 参数为 nil。
	ErrNilContext = errors.New("xsched: nil context")
)
