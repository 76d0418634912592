package xsched

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/omeyang/xmdc/pkg/context/xlocal"
)

const (
	maxWorkers   = 1 << 16
	maxQueueSize = 1 << 24
)

// Pool 固定数量 worker 的调度器，每个 worker 持有一个私有 Store。
type Pool struct {
	opts      options
	workers   int
	queueSize int
	queue     chan Task

	// mu 保护 closed 与 queue 的关闭；Schedule 持读锁发送
	mu       sync.RWMutex
	closed   bool
	stopping chan struct{}
	stopOnce sync.Once

	wg   sync.WaitGroup
	done chan struct{}
}

// NewPool 创建并启动 pool。
//
// workers 取值 [1, 65536]，queueSize 取值 [1, 16777216]。
func NewPool(workers, queueSize int, opts ...Option) (*Pool, error) {
	if workers < 1 || workers > maxWorkers {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}
	if queueSize < 1 || queueSize > maxQueueSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQueueSize, queueSize)
	}
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	p := &Pool{
		opts:      o,
		workers:   workers,
		queueSize: queueSize,
		queue:     make(chan Task, queueSize),
		stopping:  make(chan struct{}),
		done:      make(chan struct{}),
	}
	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	go func() {
		p.wg.Wait()
		close(p.done)
	}()
	return p, nil
}

// Name 返回 pool 名称。
func (p *Pool) Name() string { return p.opts.name }

// Workers 返回 worker 数量。
func (p *Pool) Workers() int { return p.workers }

// QueueSize 返回队列大小。
func (p *Pool) QueueSize() int { return p.queueSize }

// Schedule 实现 Scheduler。
func (p *Pool) Schedule(ctx context.Context, task Task) error {
	if ctx == nil {
		return ErrNilContext
	}
	if task == nil {
		return ErrNilTask
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolStopped
	}

	if p.opts.nonBlocking {
		select {
		case p.queue <- task:
			return nil
		case <-p.stopping:
			return ErrPoolStopped
		default:
			return ErrQueueFull
		}
	}

	select {
	case p.queue <- task:
		return nil
	case <-p.stopping:
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close 关闭 pool 并等待队列中的任务处理完成。
func (p *Pool) Close() error {
	return p.Shutdown(context.Background())
}

// Shutdown 关闭 pool，在 ctx 取消前等待 worker 退出。
//
// 超时返回 ctx.Err()，残留 worker 仍会处理完队列，可通过 Done 等待。
// 多次调用是安全的。
func (p *Pool) Shutdown(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	p.stopOnce.Do(func() {
		// 先唤醒阻塞中的提交方，再关闭队列
		close(p.stopping)
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()
	})

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done 在所有 worker 退出后关闭。
func (p *Pool) Done() <-chan struct{} { return p.done }

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	store := xlocal.NewMap()
	for task := range p.queue {
		p.run(id, task, store)
	}
}

func (p *Pool) run(id int, task Task, store xlocal.Store) {
	defer func() {
		if r := recover(); r != nil {
			p.opts.logger.Error("xsched: task panic recovered",
				slog.String("scheduler", p.opts.name),
				slog.Int("worker", id),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
		if n := store.Len(); n > 0 {
			p.opts.logger.Warn("xsched: task left entries in worker store",
				slog.String("scheduler", p.opts.name),
				slog.Int("worker", id),
				slog.Int("entries", n),
			)
			store.Clear()
		}
	}()
	task(store)
}
