package xrun

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// HTTPServerInterface *http.Server 满足该接口。
type HTTPServerInterface interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServer 运行 server，ctx 取消后在 shutdownTimeout 内优雅关闭。
// shutdownTimeout 不大于 0 时等待所有在途请求完成。
func HTTPServer(server HTTPServerInterface, shutdownTimeout time.Duration) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if server == nil {
			return ErrNilServer
		}
		shutdownErrCh := make(chan error, 1)
		listenDone := make(chan struct{})

		go func() {
			select {
			case <-ctx.Done():
				shutdownErrCh <- shutdownWithin(server.Shutdown, shutdownTimeout)
			case <-listenDone:
			}
		}()

		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			select {
			case shutdownErr := <-shutdownErrCh:
				return shutdownErr
			case <-ctx.Done():
				return <-shutdownErrCh
			default:
				// 外部直接关闭，ctx 未取消
				close(listenDone)
				return nil
			}
		}
		close(listenDone)
		return err
	}
}

// Shutdowner 支持带超时关闭的资源，如 *xsched.Pool。
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// Shutdown 等待 ctx 取消后在 timeout 内关闭 s，返回关闭结果。
func Shutdown(s Shutdowner, timeout time.Duration) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if s == nil {
			return ErrNilServer
		}
		<-ctx.Done()
		return shutdownWithin(s.Shutdown, timeout)
	}
}

func shutdownWithin(fn func(context.Context) error, timeout time.Duration) error {
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return fn(ctx)
}
