package assistant

import (
	"strings"

	"dataset_assistant/internal/models"
)

const (
	// memoryWindow 引擎只读取最近的这几条消息
	memoryWindow = 5
	// topicWindow 话题检测使用的助手消息数
	topicWindow = 2
)

// RecentTopicSignal 取最近5条消息中最近2条助手消息，转小写后拼接。
func RecentTopicSignal(history []models.Message) string {
	window := history
	if len(window) > memoryWindow {
		window = window[len(window)-memoryWindow:]
	}

	var assistant []string
	for _, msg := range window {
		if msg.Role == models.RoleAssistant {
			assistant = append(assistant, msg.Text)
		}
	}
	if len(assistant) > topicWindow {
		assistant = assistant[len(assistant)-topicWindow:]
	}
	return strings.ToLower(strings.Join(assistant, " "))
}

// lastAssistantText 返回历史中最近一条助手消息
func lastAssistantText(history []models.Message) (string, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == models.RoleAssistant {
			return history[i].Text, true
		}
	}
	return "", false
}
