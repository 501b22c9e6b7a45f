// Package assistant 实现数据集市场助手的对话响应引擎：
// 意图分类、回复合成与回复润色，全部为确定性的纯函数。
package assistant

// Intent 用户消息的意图类别
type Intent string

// 数据集领域类型，按固定顺序匹配
const (
	IntentHandwritten Intent = "handwritten"
	IntentAudio       Intent = "audio"
	IntentVideo       Intent = "video"
	IntentImages      Intent = "images"
	IntentText        Intent = "text"
	IntentSensor      Intent = "sensor"
	IntentFinancial   Intent = "financial"
	IntentMedical     Intent = "medical"
)

// 对话意图
const (
	IntentGreeting            Intent = "greeting"
	IntentNameOrigin          Intent = "name_origin"
	IntentProCuratorApply     Intent = "pro_curator_apply"
	IntentProCuratorHire      Intent = "pro_curator_hire"
	IntentProCuratorOverview  Intent = "pro_curator_overview"
	IntentCurationQuality     Intent = "curation_quality"
	IntentPricing             Intent = "pricing"
	IntentBountyPost          Intent = "bounty_post"
	IntentBountySubmit        Intent = "bounty_submit"
	IntentBountyOverview      Intent = "bounty_overview"
	IntentDashboardNav        Intent = "dashboard_nav"
	IntentGeneralNav          Intent = "general_nav"
	IntentStripePayment       Intent = "stripe_payment"
	IntentUpload              Intent = "upload"
	IntentPurchase            Intent = "purchase"
	IntentOnboarding          Intent = "onboarding"
	IntentPageHelp            Intent = "page_help"
	IntentPricingContinuation Intent = "pricing_continuation"
	IntentBountyContinuation  Intent = "bounty_continuation"
	IntentFallback            Intent = "fallback"
)

// DomainTypes 领域类型的固定枚举顺序
var DomainTypes = []Intent{
	IntentHandwritten,
	IntentAudio,
	IntentVideo,
	IntentImages,
	IntentText,
	IntentSensor,
	IntentFinancial,
	IntentMedical,
}

// IsDomain 是否为数据集领域类型
func (i Intent) IsDomain() bool {
	for _, d := range DomainTypes {
		if i == d {
			return true
		}
	}
	return false
}
