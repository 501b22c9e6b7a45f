package config

import "time"

// AssistantConfig 对话助手配置
type AssistantConfig struct {
	ThinkingMin time.Duration `yaml:"thinking_min"` // 最短思考延迟
	ThinkingMax time.Duration `yaml:"thinking_max"` // 最长思考延迟
	MaxHistory  int           `yaml:"max_history"`  // 每个会话保留的消息数
}

func (c *AssistantConfig) applyDefaults() {
	if c.ThinkingMin == 0 && c.ThinkingMax == 0 {
		c.ThinkingMin = 600 * time.Millisecond
		c.ThinkingMax = 1500 * time.Millisecond
	}
	if c.MaxHistory == 0 {
		c.MaxHistory = 100
	}
}

// Validate 验证助手配置
func (c *AssistantConfig) Validate() error {
	if c.ThinkingMin < 0 || c.ThinkingMax < 0 || c.ThinkingMin > c.ThinkingMax {
		return ErrInvalidThinkingTime
	}
	if c.MaxHistory < 0 {
		return ErrInvalidMaxHistory
	}
	return nil
}
