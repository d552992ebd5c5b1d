package services

import (
	"fmt"
	"strings"

	"github.com/inneratlas/inneratlas-backend/internal/types"
)

// GuidePrompter produces the guide side of a session. Prompts are
// deterministic: the reply depends only on the session, its transcript
// length, and the named parts, so a replayed transcript reproduces the
// same guidance.
type GuidePrompter interface {
	NextPrompt(session *types.GuidedSession, messages []*types.SessionMessage, parts []*types.Part) string
}

type guidePrompter struct{}

func NewGuidePrompter() GuidePrompter {
	return guidePrompter{}
}

var openingPrompts = []string{
	"Take a moment to settle in. What is present for you right now?",
	"As you turn your attention inward, what do you notice first?",
	"Where in your body do you feel that most strongly?",
}

var deepeningPrompts = []string{
	"How do you feel toward that part of you?",
	"What does this part want you to know?",
	"What is this part afraid would happen if it stopped doing its job?",
	"What does this part need from you right now?",
}

var closingPrompts = []string{
	"Is there anything this part would like you to remember?",
	"Before we close, thank the parts that showed up today. What stays with you?",
}

func (guidePrompter) NextPrompt(session *types.GuidedSession, messages []*types.SessionMessage, parts []*types.Part) string {
	userTurns := 0
	for _, m := range messages {
		if m.Role == types.MessageRoleUser {
			userTurns++
		}
	}

	focus := focusPartName(session, parts)

	switch {
	case userTurns == 0:
		if topic := strings.TrimSpace(session.Topic); topic != "" {
			return fmt.Sprintf("Welcome. You wanted to explore %q today. %s", topic, openingPrompts[0])
		}
		return "Welcome. " + openingPrompts[0]
	case userTurns < len(openingPrompts):
		return openingPrompts[userTurns]
	case userTurns < len(openingPrompts)+len(deepeningPrompts):
		prompt := deepeningPrompts[userTurns-len(openingPrompts)]
		if focus != "" {
			return strings.Replace(prompt, "that part", focus, 1)
		}
		return prompt
	default:
		idx := (userTurns - len(openingPrompts) - len(deepeningPrompts)) % len(closingPrompts)
		return closingPrompts[idx]
	}
}

func focusPartName(session *types.GuidedSession, parts []*types.Part) string {
	if session == nil || session.CurrentFocusPartID == nil {
		return ""
	}
	for _, p := range parts {
		if p.ID == *session.CurrentFocusPartID {
			return p.Name
		}
	}
	return ""
}
