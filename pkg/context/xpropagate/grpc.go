package xpropagate

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/omeyang/xmdc/pkg/context/xmdc"
)

// metaRequestID gRPC 惯例的小写请求 ID 键
const metaRequestID = "x-request-id"

// InjectOutgoingContext 将 ctx 中的载体写入 outgoing metadata，返回派生 context。
//
// 已有的 outgoing metadata 被复制后再修改。返回编码失败的载体汇总错误。
func InjectOutgoingContext(ctx context.Context) (context.Context, error) {
	headers := make(map[string]string)
	err := xmdc.Inject(ctx, headers)
	return withOutgoing(ctx, headers), err
}

// ExtractIncomingContext 解析 incoming metadata 中的载体并合并进 ctx。
func ExtractIncomingContext(ctx context.Context) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ctx
	}
	return xmdc.Extract(ctx, fromMetadata(md))
}

// UnaryServerInterceptor 返回一元服务端拦截器。
func UnaryServerInterceptor(opts ...Option) grpc.UnaryServerInterceptor {
	cfg := newConfig(opts)
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		return handler(cfg.serverContext(ctx), req)
	}
}

// StreamServerInterceptor 返回流式服务端拦截器。
func StreamServerInterceptor(opts ...Option) grpc.StreamServerInterceptor {
	cfg := newConfig(opts)
	return func(srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		return handler(srv, &serverStream{ServerStream: ss, ctx: cfg.serverContext(ss.Context())})
	}
}

// UnaryClientInterceptor 返回一元客户端拦截器。编码失败的载体记录日志后跳过。
func UnaryClientInterceptor(opts ...Option) grpc.UnaryClientInterceptor {
	cfg := newConfig(opts)
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, callOpts ...grpc.CallOption) error {
		return invoker(withOutgoing(ctx, cfg.inject(ctx)), method, req, reply, cc, callOpts...)
	}
}

// StreamClientInterceptor 返回流式客户端拦截器。
func StreamClientInterceptor(opts ...Option) grpc.StreamClientInterceptor {
	cfg := newConfig(opts)
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, callOpts ...grpc.CallOption) (grpc.ClientStream, error) {
		return streamer(withOutgoing(ctx, cfg.inject(ctx)), desc, cc, method, callOpts...)
	}
}

// serverContext 解析载体并补齐请求 ID
func (c *config) serverContext(ctx context.Context) context.Context {
	var fallback string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		ctx = xmdc.ExtractFunc(ctx, fromMetadata(md), c.decode)
		if v := md.Get(metaRequestID); len(v) > 0 {
			fallback = strings.TrimSpace(v[0])
		}
	}
	ctx, _ = c.ensureRequestID(ctx, fallback)
	return ctx
}

// serverStream 覆盖 Context 的 ServerStream
type serverStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *serverStream) Context() context.Context { return s.ctx }

func withOutgoing(ctx context.Context, headers map[string]string) context.Context {
	if len(headers) == 0 {
		return ctx
	}
	md, ok := metadata.FromOutgoingContext(ctx)
	if ok {
		md = md.Copy()
	} else {
		md = metadata.MD{}
	}
	for name, value := range headers {
		md.Set(name, value)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

func fromMetadata(md metadata.MD) map[string]string {
	headers := make(map[string]string)
	for name, values := range md {
		if len(values) > 0 && strings.HasPrefix(name, xmdc.HeaderPrefix) {
			headers[name] = values[0]
		}
	}
	return headers
}
