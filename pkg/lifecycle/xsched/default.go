package xsched

import (
	"runtime"
	"sync"
)

// defaultQueueSize 默认调度器的队列大小
const defaultQueueSize = 1024

var (
	defaultMu    sync.Mutex
	defaultSched Scheduler
	// defaultOwned 默认调度器由本包懒创建，ResetDefault 时负责关闭
	defaultOwned bool
)

// Default 返回进程级默认调度器。
//
// 首次调用时懒创建一个 GOMAXPROCS 个 worker 的 Pool。
func Default() Scheduler {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultSched == nil {
		// 参数在合法范围内，NewPool 不会失败
		p, err := NewPool(runtime.GOMAXPROCS(0), defaultQueueSize, WithName("default"))
		if err != nil {
			return Immediate()
		}
		defaultSched = p
		defaultOwned = true
	}
	return defaultSched
}

// SetDefault 替换进程级默认调度器，nil 被忽略。
//
// 传入的调度器由调用方负责关闭；此前懒创建的默认 Pool 会被关闭。
func SetDefault(s Scheduler) {
	if s == nil {
		return
	}
	defaultMu.Lock()
	prev, owned := defaultSched, defaultOwned
	defaultSched, defaultOwned = s, false
	defaultMu.Unlock()
	if owned && prev != nil {
		_ = prev.Close()
	}
}

// ResetDefault 清除默认调度器，下次 Default 时重新创建（主要用于测试）。
func ResetDefault() {
	defaultMu.Lock()
	prev, owned := defaultSched, defaultOwned
	defaultSched, defaultOwned = nil, false
	defaultMu.Unlock()
	if owned && prev != nil {
		_ = prev.Close()
	}
}
