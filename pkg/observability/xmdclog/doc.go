// Package xmdclog 提供诊断上下文感知的日志门面。
//
// 调用方把诊断条目（xmdc.MDC）放进 context.Context，日志调用可能在另一个
// goroutine 上执行（xsched 调度器），后端渲染时读取执行单元的 xlocal.Store。
// Restorer 负责两者之间的同步：
//
//  1. 将调用方载体合并进环境执行上下文
//  2. 派发到调度器
//  3. 执行前把载体条目写入执行单元的 Store，key 对应的载体优先
//  4. 执行后恢复 Store 原有状态，无论成功、失败还是 panic
//
// 基本用法：
//
//	logger, err := xmdclog.New(xmdclog.WithContextKey("mdc"))
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	ctx = xmdc.Put(ctx, xmdc.NewWithKey("mdc", map[string]string{"traceId": "abc"}))
//	_ = logger.Info(ctx, "order created")
//
// 配置可以通过 Config 显式构造，也可以用 LoadConfig 从 xconf 读取。
// 载体 key 空白时构造失败并返回 ErrInvalidConfig。
package xmdclog
