// Package xlog 提供基于 log/slog 的结构化日志后端。
//
// 它是诊断上下文门面（xmdclog）背后的默认后端，也可以单独使用。
//
// # 核心能力
//
//   - 五个级别：Trace/Debug/Info/Warn/Error，支持运行时动态调整
//   - Marker：带引用关系的命名标记，可按名称屏蔽
//   - Entry/Emit：门面以结构化条目的形式把日志交给后端，写入失败返回错误
//   - EnrichHandler：从 context 读取诊断条目并注入日志
//   - 日志轮转：通过 xrotate（lumberjack）写文件
//
// # 诊断条目来源
//
// EnrichHandler 优先读取 context 上挂载的执行单元存储（xlocal）；
// 没有存储时退化为直接读取 context 中的 xmdc 载体。
//
// # 使用
//
//	logger, cleanup, err := xlog.New().
//		SetLevel(xlog.LevelDebug).
//		SetFormat("json").
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
//	logger.Info(ctx, "started", slog.Int("port", 8080))
package xlog
