// Package xsched 提供诊断恢复所用的任务调度器。
//
// Scheduler 把任务交给某个执行单元运行，并把该执行单元私有的
// xlocal.Store 传给任务。任务运行期间写入存储的条目只对同一执行单元可见。
//
// 两种实现：
//   - Immediate：在调用方 goroutine 上同步执行
//   - Pool：固定数量的 worker goroutine，每个 worker 持有一个 Store
//
// Pool 的特性：
//   - 可配置的 worker 数量（[1, 65536]）和队列大小（[1, 16777216]）
//   - 默认阻塞提交，等待队列空位或 ctx 取消；WithNonBlocking 时队列满返回 ErrQueueFull
//   - 优雅关闭（处理完队列中的任务后退出），Shutdown(ctx) 支持超时
//   - panic 恢复（单个任务失败不影响 pool，含堆栈跟踪日志）
//   - 任务结束后 Store 仍有残留条目时记录告警并清空
//
// # 注意事项
//
//   - Close/Shutdown 不可在任务内调用，否则会死锁
//   - 任务不应长期阻塞，否则占用 worker
//
// 进程级默认调度器见 Default/SetDefault/ResetDefault。
package xsched
