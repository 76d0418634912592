// Package xmetrics 提供统一的观测接口（metrics + tracing）。
//
// 业务代码只依赖 Observer/Span/Attr，默认实现基于 OpenTelemetry。
//
//	obs, _ := xmetrics.NewOTelObserver()
//	ctx, span := xmetrics.Start(ctx, obs, xmetrics.SpanOptions{
//		Component: "xmdclog",
//		Operation: "restore",
//	})
//	defer span.End(xmetrics.Result{Err: err})
//
// # 与诊断上下文联动
//
// OTel Observer 开始跨度后，把 trace_id/span_id/trace_flags 写入 ctx 中
// key 为 TraceCarrierKey 的 xmdc 载体，日志因此能带上追踪标识；
// 当 ctx 中没有活跃 span 但有该载体时，以载体中的标识作为远程父 span。
//
// # 指标
//
//   - xmdc.operation.total
//   - xmdc.operation.duration
//
// 统一属性：component / operation / status。
package xmetrics
