// Package context 提供诊断上下文相关的子包。
//
// 子包列表：
//   - xmdc: 诊断载体（MDC）及其在 context.Context 中的存取、跨进程编解码
//   - xlocal: worker 持有的线程本地式条目存储
//   - xpropagate: HTTP/gRPC 中间件，在传输头中传播载体
//
// 设计原则：
//   - 载体不可变，随 context.Context 传递，不使用全局变量
//   - 条目只在执行期间写入 worker store，执行结束后恢复原值
package context
