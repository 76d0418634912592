package xpulsar

import "github.com/omeyang/xmdc/internal/mqcore"

// 重导出共享错误（xkafka 和 xpulsar 共同使用）
var (
	// ErrNilClient 表示传入的客户端为空。
	ErrNilClient = mqcore.ErrNilClient

	// ErrNilMessage 表示传入的消息为空。
	ErrNilMessage = mqcore.ErrNilMessage

	// ErrNilHandler 表示传入的处理函数为空。
	ErrNilHandler = mqcore.ErrNilHandler
)
