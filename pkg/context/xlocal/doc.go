// Package xlocal 提供执行单元（worker goroutine）私有的诊断存储。
//
// 日志后端只认识当前执行单元的存储：调度器为每个 worker 持有一个 Store，
// 任务运行期间把诊断条目写入其中，结束时清理，并通过 context 把 Store
// 交给后端读取。Go 没有 goroutine 本地变量，这里用“worker 持有 + context 传递”
// 代替。
//
// 存储只应被其所属 worker 写入；读取方通过 FromContext 获得只读快照。
package xlocal
