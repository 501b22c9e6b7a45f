package models

// FrameType WebSocket帧类型
type FrameType string

const (
	FrameTyping FrameType = "typing" // 助手正在思考
	FrameReply  FrameType = "reply"  // 助手回复
	FrameError  FrameType = "error"  // 错误信息
)

// ChatRequest 聊天请求，HTTP和WebSocket共用
type ChatRequest struct {
	SessionID     string `json:"session_id"`
	Text          string `json:"text"`
	Email         string `json:"email,omitempty"`
	Authenticated bool   `json:"authenticated"`
	LocationPath  string `json:"location_path"`
}

// ChatResponse 聊天响应
type ChatResponse struct {
	SessionID string   `json:"session_id"`
	Reply     *Message `json:"reply"`
}

// ChatFrame WebSocket下行帧
type ChatFrame struct {
	Type      FrameType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
	Reply     *Message  `json:"reply,omitempty"`
	Error     string    `json:"error,omitempty"`
}
