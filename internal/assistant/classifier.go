package assistant

import (
	"regexp"
	"strings"
)

// rule 意图优先级表中的一项
type rule struct {
	intent Intent
	match  func(text, topic string) bool
}

// domainPatterns 领域类型关键词，键的遍历顺序由 DomainTypes 决定
var domainPatterns = map[Intent]*regexp.Regexp{
	IntentHandwritten: regexp.MustCompile(`(?i)\b(handwrit\w*|hand-written|ocr|calligraph\w*|scanned (notes|forms|letters))\b`),
	IntentAudio:       regexp.MustCompile(`(?i)\b(audio|speech|voice|sound|podcasts?|music|recordings?)\b`),
	IntentVideo:       regexp.MustCompile(`(?i)\b(videos?|footage|clips?|movies?|films?)\b`),
	IntentImages:      regexp.MustCompile(`(?i)\b(images?|photos?|pictures?|imagery|computer vision)\b`),
	IntentText:        regexp.MustCompile(`(?i)\b(text|nlp|corpus|corpora|transcripts?|chat logs?)\b`),
	IntentSensor:      regexp.MustCompile(`(?i)\b(sensors?|iot|telemetry|accelerometer|lidar|gps)\b`),
	IntentFinancial:   regexp.MustCompile(`(?i)\b(financial|finance|stocks?|trading|crypto|banking)\b`),
	IntentMedical:     regexp.MustCompile(`(?i)\b(medical|clinical|patients?|health ?care|x-?rays?|mri|radiology)\b`),
}

var (
	greetingPattern   = regexp.MustCompile(`(?i)^\s*(hi|hello|hey|howdy|hiya|greetings|yo|good (morning|afternoon|evening))\b`)
	nameOriginPattern = regexp.MustCompile(`(?i)how (do|did|does) you know my name|where did you get my name|why do you know my name`)

	proCuratorPattern = regexp.MustCompile(`(?i)\bpro[\s-]?curators?\b|\bprofessional curators?\b|\bexpert curators?\b`)
	applyPattern      = regexp.MustCompile(`(?i)\b(become|apply|join|sign up)\b`)
	hirePattern       = regexp.MustCompile(`(?i)\b(request|hire|find|need|get)\b`)

	curationPattern = regexp.MustCompile(`(?i)\b(curat\w*|quality|clean\w*|label\w*|annotat\w*|dedup\w*|format\w*)\b`)
	pricingPattern  = regexp.MustCompile(`(?i)\b(pric\w*|cost\w*|how much|charge|worth)\b`)

	bountyPattern       = regexp.MustCompile(`(?i)\bbount(y|ies)\b`)
	bountyPostPattern   = regexp.MustCompile(`(?i)\b(post|create|make|start|open|launch)\b`)
	bountySubmitPattern = regexp.MustCompile(`(?i)\b(submit|apply|respond|fulfill|claim|answer)\b`)

	dashboardPattern  = regexp.MustCompile(`(?i)\bdashboard\b`)
	navigationPattern = regexp.MustCompile(`(?i)\bwhere (do|can|is|are) (i|my)\b|\bhow do i (get|go|find|navigate)\b|\bnavigat\w*\b`)

	paymentPattern    = regexp.MustCompile(`(?i)\b(stripe|payments?|payouts?|earnings?|get paid|bank)\b`)
	uploadPattern     = regexp.MustCompile(`(?i)\b(upload\w*|sell\w*|publish\w*|list my)\b|\bcreate (a |my )?(new )?dataset\b`)
	purchasePattern   = regexp.MustCompile(`(?i)\b(buy\w*|purchas\w*|download\w*|checkout|acquire)\b`)
	onboardingPattern = regexp.MustCompile(`(?i)\b(start\w*|begin\w*|first time|new here|get going)\b`)
	pageHelpPattern   = regexp.MustCompile(`(?i)what can i do here|what is this page|what's this page|help with this page|what do i do here`)

	pricingTopicPattern = regexp.MustCompile(`pric(e|ing)`)
	bountyTopicPattern  = regexp.MustCompile(`bount(y|ies)`)
	continuationPattern = regexp.MustCompile(`(?i)^\s*(yes|yeah|yep|yup|sure|ok|okay|please|go on|continue|more|tell me more|sounds good|and\b|what else|definitely|absolutely)`)
)

// rules 对话意图的固定优先级表，首个命中者胜出。
// 这是优先级表而非独立规则集合，顺序不可调整。
var rules = []rule{
	{IntentGreeting, func(t, _ string) bool { return greetingPattern.MatchString(t) }},
	{IntentNameOrigin, func(t, _ string) bool { return nameOriginPattern.MatchString(t) }},
	{IntentProCuratorApply, func(t, _ string) bool {
		return proCuratorPattern.MatchString(t) && applyPattern.MatchString(t)
	}},
	{IntentProCuratorHire, func(t, _ string) bool {
		return proCuratorPattern.MatchString(t) && hirePattern.MatchString(t)
	}},
	{IntentProCuratorOverview, func(t, _ string) bool { return proCuratorPattern.MatchString(t) }},
	{IntentCurationQuality, func(t, _ string) bool { return curationPattern.MatchString(t) }},
	{IntentPricing, func(t, _ string) bool { return pricingPattern.MatchString(t) }},
	{IntentBountyPost, func(t, _ string) bool {
		return bountyPattern.MatchString(t) && bountyPostPattern.MatchString(t)
	}},
	{IntentBountySubmit, func(t, _ string) bool {
		return bountyPattern.MatchString(t) && bountySubmitPattern.MatchString(t)
	}},
	{IntentBountyOverview, func(t, _ string) bool { return bountyPattern.MatchString(t) }},
	{IntentDashboardNav, func(t, _ string) bool { return dashboardPattern.MatchString(t) }},
	{IntentGeneralNav, func(t, _ string) bool { return navigationPattern.MatchString(t) }},
	{IntentStripePayment, func(t, _ string) bool { return paymentPattern.MatchString(t) }},
	{IntentUpload, func(t, _ string) bool { return uploadPattern.MatchString(t) }},
	{IntentPurchase, func(t, _ string) bool { return purchasePattern.MatchString(t) }},
	{IntentOnboarding, func(t, _ string) bool { return onboardingPattern.MatchString(t) }},
	{IntentPageHelp, func(t, _ string) bool { return pageHelpPattern.MatchString(t) }},
	{IntentPricingContinuation, func(t, topic string) bool {
		return pricingTopicPattern.MatchString(topic) && isContinuation(t)
	}},
	{IntentBountyContinuation, func(t, topic string) bool {
		return bountyTopicPattern.MatchString(topic) && isContinuation(t)
	}},
}

// Classify 将用户消息映射为唯一意图。
// recentTopic 为 RecentTopicSignal 的结果。领域类型总是优先于对话意图。
func Classify(text, recentTopic string) Intent {
	if d, ok := classifyDomain(text); ok {
		return d
	}
	for _, r := range rules {
		if r.match(text, recentTopic) {
			return r.intent
		}
	}
	return IntentFallback
}

// classifyDomain 按固定顺序返回第一个命中的领域类型
func classifyDomain(text string) (Intent, bool) {
	for _, d := range DomainTypes {
		if domainPatterns[d].MatchString(text) {
			return d, true
		}
	}
	return "", false
}

func isContinuation(text string) bool {
	t := strings.TrimSpace(text)
	return t != "" && continuationPattern.MatchString(t)
}
