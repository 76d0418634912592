package xconf

import "github.com/knadh/koanf/v2"

// Format 配置数据格式。
type Format string

const (
	// FormatYAML YAML 格式，K8s ConfigMap 推荐使用。
	FormatYAML Format = "yaml"

	// FormatJSON JSON 格式。
	FormatJSON Format = "json"
)

// Config 配置源。
//
// 加载顺序：文件或字节数据，然后是环境变量覆盖层（设置了 WithEnvPrefix 时）。
// 基础读取操作直接使用 Client() 返回的 koanf 实例。
type Config interface {
	// Client 返回当前的 koanf 实例。Reload 后旧实例仍可用，但数据是旧的。
	Client() *koanf.Koanf

	// Unmarshal 将 path 节点反序列化到 target，path 为空时使用整个配置。
	// target 中已有的值在配置缺失对应字段时保留。
	Unmarshal(path string, target any) error

	// MustUnmarshal 与 Unmarshal 相同，失败时 panic。
	MustUnmarshal(path string, target any)

	// Reload 重新读取文件并重新应用环境变量覆盖层。
	// 从字节数据创建的 Config 返回 ErrReloadUnsupported。
	Reload() error

	// Path 返回配置文件路径，从字节数据创建时为空。
	Path() string

	// Format 返回配置格式。
	Format() Format
}
