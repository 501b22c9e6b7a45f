package assistant

import (
	"strings"

	"dataset_assistant/internal/models"
)

// Result 一次应答的结果
type Result struct {
	Intent Intent
	Text   string
}

// Respond 执行一次完整的 分类→合成→润色 流程。
// history 为本条用户消息之前的对话记录，personalize 为当前生效的个性化偏好。
func Respond(userText string, user models.UserContext, history []models.Message, personalize bool) string {
	return Run(userText, user, history, personalize).Text
}

// Run 与 Respond 相同，同时返回命中的意图
func Run(userText string, user models.UserContext, history []models.Message, personalize bool) Result {
	intent := Classify(userText, RecentTopicSignal(history))
	raw := Synthesize(intent, user, history, personalize)
	return Result{
		Intent: intent,
		Text:   Refine(raw, userText, history),
	}
}

// NameFragmentFromEmail 取邮箱类标识的本地部分作为称呼
func NameFragmentFromEmail(email string) string {
	email = strings.TrimSpace(email)
	if i := strings.IndexByte(email, '@'); i >= 0 {
		email = email[:i]
	}
	return email
}
