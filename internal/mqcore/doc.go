// Package mqcore 提供 xkafka 与 xpulsar 共用的消息头传播实现。
//
// 本包是 internal 包，外部用户通过 xkafka/xpulsar 使用。
//
// 消息头抽象为 map[string]string：
//   - CarrierPropagator：诊断载体，每个载体一个 x-mdc-<key> 头
//   - OTelPropagator：W3C traceparent/tracestate，与 trace 载体双向同步
//   - Composite：按顺序组合多个 Propagator
package mqcore
