package config

// 偏好存储后端
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// PreferenceConfig 个性化偏好存储配置
type PreferenceConfig struct {
	Backend   string `yaml:"backend"`    // memory 或 sqlite
	DSN       string `yaml:"dsn"`        // sqlite数据库文件
	KeyPrefix string `yaml:"key_prefix"` // 存储键前缀
}

func (c *PreferenceConfig) applyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendMemory
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "assistant:personalize:"
	}
}

// Validate 验证偏好存储配置
func (c *PreferenceConfig) Validate() error {
	switch c.Backend {
	case BackendMemory:
		return nil
	case BackendSQLite:
		if c.DSN == "" {
			return ErrEmptyDSN
		}
		return nil
	default:
		return ErrUnknownBackend
	}
}
