package assistant

import (
	"context"
	"strings"
)

// DefaultPersonalize 未保存偏好时默认使用用户名
const DefaultPersonalize = true

var (
	optOutPhrases = []string{
		"don't use my name",
		"dont use my name",
		"do not use my name",
		"stop using my name",
		"no name",
		"generic greeting",
	}
	optInPhrases = []string{
		"you can use my name",
		"it's ok to use my name",
		"its ok to use my name",
		"use my name",
		"personalize greeting",
	}
)

// PreferenceStore 偏好持久化端口
type PreferenceStore interface {
	Get(ctx context.Context, key string) (value bool, found bool, err error)
	Set(ctx context.Context, key string, value bool) error
}

// DetectPreferenceToggle 检测消息中的个性化开关指令。
// 先检查退出指令，因为 "don't use my name" 包含 "use my name"。
func DetectPreferenceToggle(text string) (value bool, ok bool) {
	t := normalizeApostrophes(strings.ToLower(text))
	for _, p := range optOutPhrases {
		if strings.Contains(t, p) {
			return false, true
		}
	}
	for _, p := range optInPhrases {
		if strings.Contains(t, p) {
			return true, true
		}
	}
	return false, false
}

func normalizeApostrophes(s string) string {
	return strings.NewReplacer("’", "'", "‘", "'").Replace(s)
}

// Preference 某个用户的个性化偏好，通过 PreferenceStore 读写
type Preference struct {
	store PreferenceStore
	key   string
}

// NewPreference 创建偏好访问器，key 为稳定的用户标识
func NewPreference(store PreferenceStore, key string) *Preference {
	return &Preference{store: store, key: key}
}

// Load 读取偏好。未保存或读取失败时返回默认值 true，
// 返回的 error 仅用于记录日志，value 始终可用。
func (p *Preference) Load(ctx context.Context) (bool, error) {
	if p.store == nil {
		return DefaultPersonalize, nil
	}
	v, found, err := p.store.Get(ctx, p.key)
	if err != nil {
		return DefaultPersonalize, err
	}
	if !found {
		return DefaultPersonalize, nil
	}
	return v, nil
}

// Save 保存偏好
func (p *Preference) Save(ctx context.Context, value bool) error {
	if p.store == nil {
		return nil
	}
	return p.store.Set(ctx, p.key, value)
}

// Key 返回存储键
func (p *Preference) Key() string {
	return p.key
}
