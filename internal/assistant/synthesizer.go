package assistant

import (
	"fmt"
	"strings"

	"dataset_assistant/internal/models"
)

// fallbackOpening 兜底回复的固定首行，润色阶段会去掉它
const fallbackOpening = "Hmm, I'm not quite sure what you're asking."

// launchPlaybook 全面模式末尾的一行上线建议
const launchPlaybook = "🚀 Launch playbook: publish a free demo, collect feedback, then unlock the standard and premium tiers."

// synthInput 合成回复所需的全部输入
type synthInput struct {
	intent      Intent
	user        models.UserContext
	topic       string
	personalize bool
}

type template func(in synthInput) string

var templates = map[Intent]template{
	IntentGreeting:            greetingReply,
	IntentNameOrigin:          nameOriginReply,
	IntentProCuratorApply:     proCuratorApplyReply,
	IntentProCuratorHire:      proCuratorHireReply,
	IntentProCuratorOverview:  proCuratorOverviewReply,
	IntentCurationQuality:     curationReply,
	IntentPricing:             pricingReply,
	IntentBountyPost:          bountyPostReply,
	IntentBountySubmit:        bountySubmitReply,
	IntentBountyOverview:      bountyOverviewReply,
	IntentDashboardNav:        dashboardReply,
	IntentGeneralNav:          navigationReply,
	IntentStripePayment:       stripeReply,
	IntentUpload:              uploadReply,
	IntentPurchase:            purchaseReply,
	IntentOnboarding:          onboardingReply,
	IntentPageHelp:            pageHelpReply,
	IntentPricingContinuation: pricingContinuationReply,
	IntentBountyContinuation:  bountyContinuationReply,
	IntentFallback:            fallbackReply,
}

// Synthesize 根据意图、用户上下文、历史与个性化偏好生成原始回复。
// 只读偏好，不产生副作用，结果总是非空。
func Synthesize(intent Intent, user models.UserContext, history []models.Message, personalize bool) string {
	in := synthInput{
		intent:      intent,
		user:        user,
		topic:       RecentTopicSignal(history),
		personalize: personalize,
	}

	var out string
	if intent.IsDomain() {
		out = domainReply(in)
	} else if tpl, ok := templates[intent]; ok {
		out = tpl(in)
	}
	if strings.TrimSpace(out) == "" {
		out = fallbackReply(in)
	}
	return out
}

// displayName 仅在已登录且允许个性化时返回用户名
func (in synthInput) displayName() (string, bool) {
	name := strings.TrimSpace(in.user.DisplayNameFragment)
	if !in.user.IsAuthenticated || !in.personalize || name == "" {
		return "", false
	}
	return name, true
}

func domainReply(in synthInput) string {
	p, ok := AdviceProfile(in.intent)
	if !ok {
		return fallbackReply(in)
	}
	if pricingTopicPattern.MatchString(in.topic) {
		return pricingSnapshot(p)
	}
	return comprehensiveAdvice(p)
}

func pricingSnapshot(p DatasetAdviceProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Pricing snapshot for %s datasets:\n", p.Emoji, p.Label)
	fmt.Fprintf(&b, "• Demo: %s\n", p.Pricing.Demo)
	fmt.Fprintf(&b, "• Standard: %s\n", p.Pricing.Standard)
	fmt.Fprintf(&b, "• Premium: %s\n\n", p.Pricing.Premium)
	fmt.Fprintf(&b, "Why people pay: %s\n\n", p.ValueDrivers)
	b.WriteString("Tips:\n")
	for _, tip := range p.Tips {
		fmt.Fprintf(&b, "• %s\n", tip)
	}
	fmt.Fprintf(&b, "\nNext step: %s", p.NextStep)
	return b.String()
}

func comprehensiveAdvice(p DatasetAdviceProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s **Curating %s datasets**\n\n", p.Emoji, p.Label)
	b.WriteString("Curation checklist:\n")
	for i, item := range p.Checklist {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	b.WriteString("\n💰 Pricing tiers:\n")
	fmt.Fprintf(&b, "• Demo: %s\n", p.Pricing.Demo)
	fmt.Fprintf(&b, "• Standard: %s\n", p.Pricing.Standard)
	fmt.Fprintf(&b, "• Premium: %s\n\n", p.Pricing.Premium)
	fmt.Fprintf(&b, "What drives value: %s\n\n", p.ValueDrivers)
	b.WriteString("Tips:\n")
	for _, tip := range p.Tips {
		fmt.Fprintf(&b, "• %s\n", tip)
	}
	b.WriteString("\n")
	b.WriteString(launchPlaybook)
	return b.String()
}

func greetingReply(in synthInput) string {
	if name, ok := in.displayName(); ok {
		return fmt.Sprintf("Hey %s! 👋 Great to see you. I can help you curate, price and sell datasets, "+
			"post or answer bounties, or find your way around. What are you working on today?", name)
	}
	return "Hey there! 👋 I can help you curate, price and sell datasets, " +
		"post or answer bounties, or find your way around. What are you working on today?"
}

func nameOriginReply(synthInput) string {
	return "Good question! 🔒 I only see the part of your account email before the @, and I use it to say hi. " +
		"Nothing else about you is shared with me. If you'd rather I keep things generic, just say \"don't use my name\" " +
		"and say \"you can use my name\" to switch it back."
}

func proCuratorApplyReply(synthInput) string {
	return "Love that you want to become a **Pro Curator**! 🏅\n\n" +
		"1. Open the Pro Curators page from the main menu\n" +
		"2. Fill in your profile with your specialties and past datasets\n" +
		"3. Link a few examples of your curation work\n" +
		"4. Submit your application for review\n\n" +
		"Once approved, buyers can hire you directly for cleaning, labeling and packaging jobs."
}

func proCuratorHireReply(synthInput) string {
	return "Need an expert to shape up your data? 🤝\n\n" +
		"1. Go to the Pro Curators page\n" +
		"2. Browse curator profiles by specialty and rating\n" +
		"3. Click \"Request curation\" and describe your dataset and goals\n" +
		"4. Agree on scope and price, then track progress from your dashboard\n\n" +
		"Tip: the clearer your brief, the faster you'll get accurate quotes."
}

func proCuratorOverviewReply(synthInput) string {
	return "**Pro Curators** are vetted data specialists on the marketplace. 🏅\n\n" +
		"They clean, label, validate and package raw data into listings buyers trust. " +
		"You can hire one to polish your dataset, or apply to become one if you know your way around data. " +
		"Want to hire a curator or apply to be one?"
}

func curationReply(synthInput) string {
	return "Great datasets are made in curation! 🧹 Here's a solid checklist:\n\n" +
		"1. Remove duplicates and corrupted records\n" +
		"2. Standardize formats, units and naming\n" +
		"3. Label consistently and document your schema\n" +
		"4. Strip personal or sensitive information\n" +
		"5. Write a data card: source, collection method, license and known limitations\n" +
		"6. Include a small sample so buyers can check quality\n\n" +
		"Tell me your data type (audio, images, text, sensor...) and I'll get more specific."
}

func pricingReply(synthInput) string {
	return "**Pricing is an art**, not a science! 💰\n\n" +
		"A three-tier approach works well:\n" +
		"• Demo: free or nearly free, a small sample that proves quality\n" +
		"• Standard: the core dataset at a fair price for most buyers\n" +
		"• Premium: full volume, richer labels or commercial rights\n\n" +
		"Look at comparable listings, weigh how hard your data was to collect, and adjust after the first few sales. " +
		"What kind of data are you pricing?"
}

func bountyPostReply(synthInput) string {
	return "Posting a bounty is easy! 🎯\n\n" +
		"1. Open the Bounties page and click \"Post a bounty\"\n" +
		"2. Describe exactly what data you need, including format and volume\n" +
		"3. Set your budget and deadline\n" +
		"4. Publish, then review submissions as they come in\n\n" +
		"Specific requirements attract better submissions."
}

func bountySubmitReply(synthInput) string {
	return "Nice, responding to a bounty is a great way to earn! 💸\n\n" +
		"1. Browse open bounties on the Bounties page\n" +
		"2. Read the requirements and deadline carefully\n" +
		"3. Prepare a sample that matches the requested format\n" +
		"4. Submit your response with a short note on how you collected the data\n\n" +
		"The poster reviews submissions and pays out through Stripe when they accept yours."
}

func bountyOverviewReply(synthInput) string {
	return "Think of it this way: bounties are basically job postings for data! 🎯\n\n" +
		"Buyers post what they need, with a budget and deadline, and curators respond with datasets that fit. " +
		"You can post a bounty when you can't find the data you need, or submit to one to earn. " +
		"Want to post one or respond to one?"
}

func dashboardReply(synthInput) string {
	return "Your dashboard is your home base. 📊\n\n" +
		"• My Datasets: listings you've uploaded and their sales\n" +
		"• Purchases: everything you've bought, ready to download\n" +
		"• Bounties: ones you've posted or responded to\n" +
		"• Earnings: payouts and Stripe status\n\n" +
		"Open it any time from the menu in the top right."
}

func navigationReply(synthInput) string {
	return "Happy to point you in the right direction! 🧭\n\n" +
		"• Browse datasets from the Marketplace link\n" +
		"• Post or answer bounties from the Bounties page\n" +
		"• Manage uploads, purchases and earnings from your Dashboard\n" +
		"• Find experts on the Pro Curators page\n\n" +
		"What are you trying to get to?"
}

func stripeReply(synthInput) string {
	return "Payments run through **Stripe**. 💳\n\n" +
		"1. Go to your dashboard and click \"Connect Stripe\"\n" +
		"2. Complete Stripe's onboarding with your payout details\n" +
		"3. Once connected, earnings from sales and bounties are paid out automatically\n\n" +
		"You can check payout status and history under Earnings."
}

func uploadReply(synthInput) string {
	return "Let's get your dataset listed! 📤\n\n" +
		"1. Click \"Upload dataset\" from your dashboard\n" +
		"2. Add a clear title, description and data type\n" +
		"3. Upload your files and a free sample\n" +
		"4. Set your pricing tiers and license\n" +
		"5. Publish, and your listing goes live in the marketplace\n\n" +
		"Good descriptions and samples sell far better than raw files alone."
}

func purchaseReply(synthInput) string {
	return "Buying data is simple. 🛒\n\n" +
		"1. Find a dataset in the marketplace\n" +
		"2. Check the sample and data card\n" +
		"3. Pick a tier and check out securely with Stripe\n" +
		"4. Download it any time from Purchases in your dashboard\n\n" +
		"Not finding what you need? You can post a bounty instead."
}

func onboardingReply(in synthInput) string {
	greeting := "Welcome aboard! 🚀"
	if name, ok := in.displayName(); ok {
		greeting = fmt.Sprintf("Welcome aboard, %s! 🚀", name)
	}
	return greeting + " Here's the quickest way to get going:\n\n" +
		"1. Browse the marketplace to see what sells\n" +
		"2. Upload a dataset, or post a bounty for data you need\n" +
		"3. Connect Stripe so you can get paid\n" +
		"4. Ask me about curation or pricing for your data type\n\n" +
		"Where would you like to start?"
}

func pageHelpReply(in synthInput) string {
	path := strings.ToLower(strings.TrimSpace(in.user.LocationPath))
	switch {
	case strings.HasPrefix(path, "/dashboard"):
		return "You're on your dashboard. 📊 Here you can manage your uploads, check purchases, " +
			"follow your bounties and see your earnings."
	case strings.HasPrefix(path, "/bounties"):
		return "This is the Bounties board. 🎯 You can browse open requests, submit data to one, " +
			"or post your own bounty."
	case strings.HasPrefix(path, "/upload"), strings.HasPrefix(path, "/sell"):
		return "This is the upload page. 📤 Fill in your dataset details, add files and a sample, " +
			"then set pricing and publish."
	case strings.HasPrefix(path, "/pro-curators"), strings.HasPrefix(path, "/curators"):
		return "This is the Pro Curators page. 🏅 Browse experts to hire, or apply to become one yourself."
	case strings.HasPrefix(path, "/datasets"), strings.HasPrefix(path, "/marketplace"):
		return "You're in the marketplace. 🛒 Search and filter datasets, open one to see its sample, " +
			"and buy the tier that fits."
	default:
		return "From here you can browse datasets, post or answer bounties, upload your own data, " +
			"or open your dashboard. 🧭 Ask me about any of them."
	}
}

func pricingContinuationReply(synthInput) string {
	return "A few more pricing tips: 💡\n\n" +
		"• Start a little lower to earn early reviews, then raise prices\n" +
		"• Bundle documentation and samples into the standard tier\n" +
		"• Reserve commercial licenses for premium\n" +
		"• Revisit prices after your first five sales\n\n" +
		"Tell me your data type and I'll suggest concrete numbers."
}

func bountyContinuationReply(synthInput) string {
	return "More on bounties: 🎯\n\n" +
		"• Clear budgets and deadlines get more responses\n" +
		"• Attach an example record so submitters know the format\n" +
		"• You only pay for submissions you accept\n\n" +
		"Want help writing a bounty description?"
}

func fallbackReply(synthInput) string {
	return fallbackOpening + "\n" +
		"Here's what I can help with:\n" +
		"• Curating and cleaning datasets\n" +
		"• Pricing your data\n" +
		"• Posting or answering bounties\n" +
		"• Hiring or becoming a Pro Curator\n" +
		"• Uploading and selling datasets\n" +
		"• Buying and downloading data\n" +
		"• Stripe payouts and earnings\n" +
		"• Finding your way around the dashboard\n\n" +
		"You can also ask about a data type, like audio, images, text or medical data."
}
