package xpropagate

import (
	"context"
	"net/http"
	"strings"

	"github.com/omeyang/xmdc/pkg/context/xmdc"
)

// InjectHTTPHeader 将 ctx 中的载体写入 h。
//
// 返回编码失败的载体汇总错误，其余载体照常写入。
func InjectHTTPHeader(ctx context.Context, h http.Header) error {
	if h == nil {
		return nil
	}
	headers := make(map[string]string)
	err := xmdc.Inject(ctx, headers)
	for name, value := range headers {
		h.Set(name, value)
	}
	return err
}

// ExtractHTTPHeader 解析 h 中的载体头并合并进 ctx。
func ExtractHTTPHeader(ctx context.Context, h http.Header) context.Context {
	return xmdc.Extract(ctx, fromHTTPHeader(h))
}

func fromHTTPHeader(h http.Header) map[string]string {
	headers := make(map[string]string)
	for name, values := range h {
		if len(values) > 0 && strings.HasPrefix(strings.ToLower(name), xmdc.HeaderPrefix) {
			headers[name] = values[0]
		}
	}
	return headers
}

// InjectToRequest 将 ctx 中的载体写入 req 的请求头。
func InjectToRequest(ctx context.Context, req *http.Request) error {
	if req == nil {
		return nil
	}
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	return InjectHTTPHeader(ctx, req.Header)
}

// HTTPMiddleware 返回服务端中间件：解析请求头中的载体写入请求 context。
//
// 启用 WithRequestIDEntry 时同时在响应头 X-Request-ID 中回写请求 ID。
func HTTPMiddleware(opts ...Option) func(http.Handler) http.Handler {
	cfg := newConfig(opts)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := xmdc.ExtractFunc(r.Context(), fromHTTPHeader(r.Header), cfg.decode)
			ctx, id := cfg.ensureRequestID(ctx, strings.TrimSpace(r.Header.Get(HeaderRequestID)))
			if id != "" {
				w.Header().Set(HeaderRequestID, id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Transport 包装 http.RoundTripper，发送前把请求 context 中的载体写入请求头。
//
// base 为 nil 时使用 http.DefaultTransport。
func Transport(base http.RoundTripper, opts ...Option) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &transport{base: base, cfg: newConfig(opts)}
}

type transport struct {
	base http.RoundTripper
	cfg  *config
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	headers := t.cfg.inject(req.Context())
	if len(headers) == 0 {
		return t.base.RoundTrip(req)
	}
	// RoundTripper 不能修改原请求
	clone := req.Clone(req.Context())
	for name, value := range headers {
		clone.Header.Set(name, value)
	}
	return t.base.RoundTrip(clone)
}
