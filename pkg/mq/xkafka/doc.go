// Package xkafka 在 Kafka 消息头中传播诊断上下文。
//
// 基于 confluent-kafka-go，只负责消息头的注入与提取，不封装生产者与消费者：
//   - InjectHeaders/ExtractHeaders：ctx 与 kafka.Header 之间的转换
//   - Produce：注入后交给任意 Producer 发送
//   - Propagate：包装消费处理函数，在 worker store 中恢复诊断条目后执行
//
// 默认 Propagator 同时传播 xmdc 载体（x-mdc-* 头）与 W3C traceparent。
package xkafka
