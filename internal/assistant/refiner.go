package assistant

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"dataset_assistant/internal/models"
)

const (
	openingTokens   = 6
	fragmentLimit   = 6
	defaultResponse = "How can I help you with your datasets today?"
)

var (
	softeners = []string{
		"As I mentioned",
		"Just to recap",
		"Building on that",
		"To circle back",
	}
	followUps = []string{
		"Want me to go deeper on any of these?",
		"Does that help with what you're working on?",
		"Should I walk you through the next step?",
		"Anything else you'd like to know about this?",
	}

	fragmentSplit  = regexp.MustCompile(`[\n.!?]+`)
	excessNewlines = regexp.MustCompile(`\n{3,}`)
)

// refineState 润色流水线在各步骤之间传递的状态
type refineState struct {
	text     string
	userText string
	history  []models.Message
	// baseLen 为清理步骤完成后的文本长度，用作追问选择的键
	baseLen int
}

type refineStep func(s refineState) refineState

// cleanupSteps 先于重复检测执行，避免模板残留导致误判
var cleanupSteps = []refineStep{
	trimMarkup,
	stripFallbackOpening,
}

var shapingSteps = []refineStep{
	avoidRepetition,
	injectFollowUp,
	collapseNewlines,
}

// Refine 对合成的回复做确定性的后处理，结果总是非空
func Refine(raw, userText string, history []models.Message) string {
	s := refineState{text: raw, userText: userText, history: history}
	for _, step := range cleanupSteps {
		s = step(s)
	}
	s.baseLen = utf8.RuneCountInString(s.text)
	for _, step := range shapingSteps {
		s = step(s)
	}
	if strings.TrimSpace(s.text) == "" {
		return defaultResponse
	}
	return s.text
}

func trimMarkup(s refineState) refineState {
	s.text = strings.TrimSpace(strings.ReplaceAll(s.text, "**", ""))
	return s
}

func stripFallbackOpening(s refineState) refineState {
	if !strings.HasPrefix(s.text, fallbackOpening) {
		return s
	}
	rest := strings.TrimPrefix(s.text, fallbackOpening)
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[i+1:]
	} else {
		rest = ""
	}
	s.text = strings.TrimSpace(rest)
	return s
}

func avoidRepetition(s refineState) refineState {
	last, ok := lastAssistantText(s.history)
	if !ok || s.text == "" {
		return s
	}
	if !sameOpening(s.text, last) {
		return s
	}
	softener := softeners[len(s.history)%len(softeners)]
	s.text = softener + ". " + s.text
	return s
}

func sameOpening(a, b string) bool {
	x, y := openingWords(a), openingWords(b)
	if len(x) == 0 || len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

func openingWords(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	if len(words) > openingTokens {
		words = words[:openingTokens]
	}
	return words
}

func injectFollowUp(s refineState) refineState {
	if strings.HasSuffix(strings.TrimRight(s.text, " \t\r\n"), "?") {
		return s
	}
	if countFragments(s.text) <= fragmentLimit {
		return s
	}
	q := followUps[(len(s.history)+s.baseLen)%len(followUps)]
	s.text = strings.TrimRight(s.text, " \t\r\n") + "\n\n" + q
	return s
}

func countFragments(text string) int {
	n := 0
	for _, f := range fragmentSplit.Split(text, -1) {
		if strings.TrimSpace(f) != "" {
			n++
		}
	}
	return n
}

func collapseNewlines(s refineState) refineState {
	s.text = excessNewlines.ReplaceAllString(s.text, "\n\n")
	return s
}
