// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志，基于 log/slog 扩展，支持标记与诊断条目注入
//   - xmdclog: 诊断上下文桥接门面，在调度器 worker 上恢复条目后委派给 xlog
//   - xmetrics: 统一可观测性接口，OTel 实现与 trace 载体同步
//   - xrotate: 日志文件轮转
//
// 设计原则：
//   - 遵循 OpenTelemetry 语义规范
//   - 诊断条目只在一次日志调用期间可见
//   - 支持动态级别控制
package observability
