package assistant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"dataset_assistant/internal/models"
)

func hasSoftener(text string) bool {
	for _, s := range softeners {
		if strings.HasPrefix(text, s+". ") {
			return true
		}
	}
	return false
}

func TestRespond_Deterministic(t *testing.T) {
	history := []models.Message{
		msg(models.RoleUser, "how should I price my dataset?"),
		msg(models.RoleAssistant, "Pricing is an art, not a science!"),
	}
	inputs := []string{"hello", "audio data", "yes", "what are bounties?", "zzzz"}

	for _, text := range inputs {
		first := Respond(text, signedIn, history, true)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Respond(text, signedIn, history, true), text)
		}
	}
}

func TestRespond_GreetingUsesName(t *testing.T) {
	assert.Contains(t, Respond("hello", signedIn, nil, true), "quinby")
	assert.NotContains(t, Respond("hello", signedIn, nil, false), "quinby")
}

func TestRespond_KnownPhrases(t *testing.T) {
	tests := []struct {
		text       string
		want       string
		ignoreCase bool
	}{
		{"how should I price my dataset?", "pricing is an art", true},
		{"what are bounties?", "bounties are basically job postings", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			out := Respond(tt.text, models.UserContext{}, nil, true)
			if tt.ignoreCase {
				out = strings.ToLower(out)
			}
			assert.Contains(t, out, tt.want)
			assert.NotContains(t, out, "**")
		})
	}
}

func TestRespond_FallbackListsTopics(t *testing.T) {
	for _, text := range []string{"", "   ", "qwzx vbnm", "🙃🙃🙃"} {
		out := Respond(text, models.UserContext{}, nil, true)
		assert.NotEmpty(t, out)
		assert.False(t, strings.HasPrefix(out, fallbackOpening))
		assert.Contains(t, out, "Pricing your data")
		assert.Contains(t, out, "Posting or answering bounties")
	}
}

func TestRespond_RepeatedOpeningGetsSoftener(t *testing.T) {
	var history []models.Message

	first := Respond("hello", signedIn, history, true)
	history = append(history, msg(models.RoleUser, "hello"), msg(models.RoleAssistant, first))

	second := Respond("hello", signedIn, history, true)

	assert.False(t, hasSoftener(first))
	assert.True(t, hasSoftener(second))
	assert.True(t, strings.HasSuffix(second, first))
}

func TestRespond_LongAnswerGetsOneFollowUp(t *testing.T) {
	out := Respond("how do I post a bounty?", models.UserContext{}, nil, true)
	assert.Equal(t, 1, strings.Count(out, "?"))

	var matched int
	for _, q := range followUps {
		if strings.HasSuffix(out, q) {
			matched++
		}
	}
	assert.Equal(t, 1, matched)
}

func TestRespond_PricingContinuation(t *testing.T) {
	history := []models.Message{
		msg(models.RoleUser, "how should I price my dataset?"),
		msg(models.RoleAssistant, Respond("how should I price my dataset?", models.UserContext{}, nil, true)),
	}
	res := Run("yes", models.UserContext{}, history, true)
	assert.Equal(t, IntentPricingContinuation, res.Intent)
	assert.Contains(t, res.Text, "A few more pricing tips")
}

func TestNameFragmentFromEmail(t *testing.T) {
	assert.Equal(t, "ada.lovelace", NameFragmentFromEmail(" ada.lovelace@example.com "))
	assert.Equal(t, "ada", NameFragmentFromEmail("ada"))
	assert.Equal(t, "", NameFragmentFromEmail(""))
}
