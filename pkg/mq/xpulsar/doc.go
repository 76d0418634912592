// Package xpulsar 在 Pulsar 消息属性中传播诊断上下文。
//
// 与 xkafka 对称：InjectProperties/ExtractProperties 转换 ctx 与消息属性，
// Send 注入后发送，Propagate 包装消费处理函数。
package xpulsar
