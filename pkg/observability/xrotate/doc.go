// Package xrotate 提供按大小轮转的日志文件输出。
//
// Rotator 实现 io.WriteCloser，可直接作为 xlog 的输出目标；
// 额外的 Rotate 方法用于手动轮转（如收到 SIGHUP 时）。
//
// 当前实现基于 lumberjack v2，见 NewLumberjack。
package xrotate
