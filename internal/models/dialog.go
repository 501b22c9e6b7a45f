package models

import (
	"context"
	"time"
)

// Role 消息角色
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message 对话消息，创建后不再修改
type Message struct {
	ID        string    `json:"id"`        // 消息ID
	Role      Role      `json:"role"`      // 消息角色：user/assistant
	Text      string    `json:"text"`      // 消息内容
	Timestamp time.Time `json:"timestamp"` // 创建时间
}

// UserContext 每次调用由外部提供的用户上下文
type UserContext struct {
	DisplayNameFragment string `json:"display_name_fragment,omitempty"` // 邮箱本地部分
	LocationPath        string `json:"location_path"`                   // 当前页面路由
	IsAuthenticated     bool   `json:"is_authenticated"`                // 是否已登录
}

// Turn 一轮用户输入
type Turn struct {
	SessionID string      // 会话ID
	UserKey   string      // 偏好存储使用的稳定用户标识，为空时使用会话ID
	Text      string      // 用户消息
	User      UserContext // 用户上下文
}

// DialogService 对话服务接口
type DialogService interface {
	// ProcessMessage 处理用户消息并返回助手回复
	ProcessMessage(ctx context.Context, turn Turn) (*Message, error)

	// GetHistory 获取对话历史
	GetHistory(sessionID string) []Message

	// ClearHistory 清除对话历史
	ClearHistory(sessionID string)

	// CloseSession 关闭会话，取消正在等待的回复
	CloseSession(sessionID string)
}
