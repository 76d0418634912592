// Package mq 提供消息队列相关的子包。
//
// 子包列表：
//   - xkafka: 在 Kafka 消息头中传播诊断上下文
//   - xpulsar: 在 Pulsar 消息属性中传播诊断上下文
//
// 内部包：
//   - internal/mqcore: 共享的传播器与生产/消费跨度
//
// 两个子包的默认传播器同时携带 xmdc 载体与 W3C trace context；
// 消费侧可配置 xmdclog.Restorer，处理函数在 worker store 中看到消息携带的诊断条目。
package mq
