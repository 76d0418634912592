// Package xmdc 提供诊断上下文（MDC）载体以及它与 context.Context 之间的桥接。
//
// 载体（MDC）是一个带 key 的不可变字符串映射。一个执行上下文中可以同时存在
// 多个载体，每个 key 最多一个；写入同 key 的载体会整体替换旧值。
//
// # 核心功能
//
// 载体：
//   - New / NewWithKey / Empty : 构造（复制调用方的映射）
//   - With / Without / WithKey : 派生新载体
//   - Get / Entries / Names     : 只读访问
//
// 桥接：
//   - Read(ctx, key)        : 读取，缺失或结构不符时返回空载体
//   - Put(ctx, carriers...) : 写入，返回派生 context，原 context 不变
//   - Carriers / Keys        : 枚举 context 中的载体
//   - Resolve / NestedResolver : 从任务 context 取出环境执行上下文
//
// 跨进程：
//   - Encode / Decode   : 单个载体与传输头值互转（基于 W3C baggage）
//   - Inject / Extract  : 在 map[string]string 头集合上批量编解码
//
// # 默认 key
//
// 未显式指定 key 的构造使用进程级默认 key，出厂值为 "mdc"，
// 可通过 SetDefaultKey 替换。空白 key 在被消费的位置（写入、编码、
// 构建 logger）返回 ErrBlankKey。
//
// # 哨兵错误
//
//	ErrBlankKey         - key 为空或仅包含空白字符
//	ErrMalformedCarrier - 编码/解码失败
package xmdc
