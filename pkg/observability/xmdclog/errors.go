package xmdclog

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig 配置无效（空白 key、未知调度器类型、非法级别等）
	ErrInvalidConfig = errors.New("xmdclog: invalid config")

	// ErrNilAction Restorer 收到 nil action
	ErrNilAction = errors.New("xmdclog: nil action")
)

// PanicError action 在执行单元上 panic 时，Go 的完成信号携带此错误。
type PanicError struct {
	// Value recover() 得到的原始值
	Value any
	// Stack panic 发生时执行单元的堆栈
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("xmdclog: action panicked: %v", e.Value)
}

// Unwrap Value 为 error 时返回它。
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
