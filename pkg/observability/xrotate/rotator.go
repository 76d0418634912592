package xrotate

import "io"

var _ io.WriteCloser = (Rotator)(nil)

// Rotator 日志轮转器，所有实现必须并发安全。
//
// Close 之后调用 Write 或 Rotate 返回 ErrClosed，重复 Close 也返回 ErrClosed。
type Rotator interface {
	Write(p []byte) (n int, err error)
	Close() error

	// Rotate 关闭当前文件并重命名为备份，随后写入新文件
	Rotate() error
}
