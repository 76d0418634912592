// Package xrun 管理 xmdcctl 等进程内服务的并发运行与协调关闭。
//
// Group 基于 errgroup：任一服务返回错误、收到系统信号或父 ctx 取消时，
// 其余服务都收到取消信号。Run 额外注册信号监听，信号退出时返回 *SignalError。
//
// 内置服务函数：
//   - HTTPServer：ctx 取消后优雅关闭 HTTP 服务
//   - Shutdown：ctx 取消后在超时内关闭调度器等资源
package xrun
