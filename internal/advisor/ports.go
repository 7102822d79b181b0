// Package advisor runs the risk-assessment chat and the investment advice
// request against a language-model collaborator.
package advisor

import (
	"context"

	"easywealth/internal/risk"
)

// Conversation is one ongoing chat with the collaborator
type Conversation interface {
	Send(ctx context.Context, text string) (string, error)
}

// Conversationalist opens conversations seeded with a system instruction
type Conversationalist interface {
	StartConversation(ctx context.Context, instruction string) (Conversation, error)
}

type AdviceRequest struct {
	Tier    risk.Tier
	Goals   string
	Savings string
}

// Advisor produces a one-shot investment plan
type Advisor interface {
	RequestAdvice(ctx context.Context, req AdviceRequest) (string, error)
}
