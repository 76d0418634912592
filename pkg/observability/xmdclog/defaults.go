package xmdclog

import (
	"fmt"

	"github.com/omeyang/xmdc/pkg/context/xmdc"
	"github.com/omeyang/xmdc/pkg/lifecycle/xsched"
	"github.com/omeyang/xmdc/pkg/observability/xlog"
)

// Defaults 进程级默认值，供未显式配置的 Logger 使用。
// 零值字段保持当前默认值不变。
type Defaults struct {
	ContextKey string
	Scheduler  xsched.Scheduler
	Backend    xlog.LoggerWithLevel
}

// SetDefaults 设置进程级默认值，只影响之后创建的 Logger。
//
// ContextKey 非空但全是空白字符时返回 ErrInvalidConfig，且不修改任何默认值。
func SetDefaults(d Defaults) error {
	if d.ContextKey != "" {
		if err := xmdc.ValidateKey(d.ContextKey); err != nil {
			return fmt.Errorf("%w: context key %q: %w", ErrInvalidConfig, d.ContextKey, err)
		}
		if err := xmdc.SetDefaultKey(d.ContextKey); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if d.Scheduler != nil {
		xsched.SetDefault(d.Scheduler)
	}
	if d.Backend != nil {
		xlog.SetDefault(d.Backend)
	}
	return nil
}

// ResetDefaults 恢复进程级默认值，主要用于测试。
func ResetDefaults() {
	xmdc.ResetDefaultKey()
	xsched.ResetDefault()
	xlog.ResetDefault()
}
