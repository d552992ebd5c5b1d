package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/inneratlas/inneratlas-backend/internal/types"
)

func sessionWithTurns(userTurns int) (*types.GuidedSession, []*types.SessionMessage) {
	session := &types.GuidedSession{ID: uuid.New(), Topic: "anger at work"}
	var messages []*types.SessionMessage
	for i := 0; i < userTurns; i++ {
		messages = append(messages,
			&types.SessionMessage{Role: types.MessageRoleUser, Content: "..."},
			&types.SessionMessage{Role: types.MessageRoleGuide, Content: "..."},
		)
	}
	return session, messages
}

func TestPromptIsDeterministic(t *testing.T) {
	p := NewGuidePrompter()
	session, messages := sessionWithTurns(2)
	first := p.NextPrompt(session, messages, nil)
	second := p.NextPrompt(session, messages, nil)
	if first != second {
		t.Fatalf("same transcript produced different prompts: %q vs %q", first, second)
	}
}

func TestOpeningPromptMentionsTopic(t *testing.T) {
	p := NewGuidePrompter()
	session, _ := sessionWithTurns(0)
	prompt := p.NextPrompt(session, nil, nil)
	if !strings.Contains(prompt, "anger at work") {
		t.Fatalf("opening prompt should name the topic, got %q", prompt)
	}
}

func TestDeepeningPromptNamesFocusPart(t *testing.T) {
	p := NewGuidePrompter()
	session, messages := sessionWithTurns(3)
	focusID := uuid.New()
	session.CurrentFocusPartID = &focusID
	parts := []*types.Part{{ID: focusID, Name: "the inner critic"}}

	prompt := p.NextPrompt(session, messages, parts)
	if !strings.Contains(prompt, "the inner critic") {
		t.Fatalf("deepening prompt should name the focus part, got %q", prompt)
	}
}

func TestLateTurnsCycleClosingPrompts(t *testing.T) {
	p := NewGuidePrompter()
	session, messages := sessionWithTurns(20)
	prompt := p.NextPrompt(session, messages, nil)
	found := false
	for _, candidate := range closingPrompts {
		if prompt == candidate {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("late prompt should come from the closing set, got %q", prompt)
	}
}
