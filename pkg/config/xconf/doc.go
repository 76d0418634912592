// Package xconf 基于 koanf 的配置加载。
//
// 支持 YAML（.yaml/.yml）与 JSON（.json），可以从文件（New）或字节数据
// （NewFromBytes）创建。WithEnvPrefix 启用环境变量覆盖层：
//
//	cfg, err := xconf.New("/etc/xmdc/config.yaml", xconf.WithEnvPrefix("XMDC_"))
//	// XMDC_LOGGING__BACKEND__LEVEL=debug 覆盖 logging.backend.level
//
// 文件配置支持 Reload 和基于 fsnotify 的 Watch，重载会重新应用环境变量覆盖层。
// Reload 生成新的 koanf 实例后原子替换，Client() 之前返回的实例保持旧数据。
package xconf
