// Package xpropagate 在进程之间传播诊断载体。
//
// 每个载体编码为一个传输头：头名为 xmdc.HeaderName(key)（"x-mdc-" + 小写 key），
// 头值为 xmdc.Encode 的结果。接收方解析所有此类头并合并进请求 context，
// 无法解析的头被跳过，不会让请求失败。
//
// HTTP：
//
//	mux := http.NewServeMux()
//	handler := xpropagate.HTTPMiddleware(xpropagate.WithRequestIDEntry("mdc", "requestId"))(mux)
//
//	// 客户端
//	_ = xpropagate.InjectToRequest(ctx, req)
//
// gRPC：
//
//	grpc.NewServer(
//	    grpc.UnaryInterceptor(xpropagate.UnaryServerInterceptor()),
//	    grpc.StreamInterceptor(xpropagate.StreamServerInterceptor()),
//	)
//	grpc.NewClient(target,
//	    grpc.WithUnaryInterceptor(xpropagate.UnaryClientInterceptor()),
//	    grpc.WithStreamInterceptor(xpropagate.StreamClientInterceptor()),
//	)
package xpropagate
