package xconf

import (
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvKey 将环境变量名映射为配置键。
//
// 去掉前缀后转为小写，双下划线表示层级，单下划线保留在字段名中：
//
//	XMDC_LOGGING__CONTEXT_KEY        -> logging.context_key
//	XMDC_LOGGING__SCHEDULER__WORKERS -> logging.scheduler.workers
func EnvKey(prefix, delim, name string) string {
	name = strings.TrimPrefix(name, prefix)
	name = strings.Trim(strings.ToLower(name), "_")
	return strings.ReplaceAll(name, "__", delim)
}

// loadEnv 叠加环境变量覆盖层
func loadEnv(k *koanf.Koanf, opts *Options) error {
	if opts.EnvPrefix == "" {
		return nil
	}
	prefix, delim := opts.EnvPrefix, opts.Delim
	return k.Load(env.Provider(prefix, delim, func(name string) string {
		return EnvKey(prefix, delim, name)
	}), nil)
}
