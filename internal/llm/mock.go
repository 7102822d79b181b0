package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"easywealth/internal/advisor"
	"easywealth/internal/risk"
)

// Mock is an offline collaborator for local runs. It asks a fixed set of
// behavioural questions, then states a profile inferred from the answers.
type Mock struct{}

func NewMock() *Mock { return &Mock{} }

var mockQuestions = []string{
	"How would you feel if your portfolio dropped 20% overnight?",
	"Do you prefer stability over high growth?",
	"If an investment doubled in a year, would you add more or take profits?",
}

func (m *Mock) StartConversation(context.Context, string) (advisor.Conversation, error) {
	return &mockConversation{}, nil
}

func (m *Mock) RequestAdvice(_ context.Context, req advisor.AdviceRequest) (string, error) {
	equity, debt, gold := 30, 60, 10
	switch req.Tier {
	case risk.Balanced:
		equity, debt, gold = 50, 40, 10
	case risk.Aggressive:
		equity, debt, gold = 75, 15, 10
	}
	return fmt.Sprintf(
		"- Allocation: %d%% Equity, %d%% Debt, %d%% Gold\n- Start a monthly SIP into a Nifty 50 Index Fund\n- Park the debt share in PPF\n- Hold gold through Sovereign Gold Bonds",
		equity, debt, gold,
	), nil
}

type mockConversation struct {
	mu    sync.Mutex
	turns int
	score int
}

var (
	cautiousWords = []string{"panic", "sell", "stability", "stable", "safe", "worried", "nervous", "scared"}
	boldWords     = []string{"buy more", "growth", "add more", "opportunity", "excited", "double down"}
)

func (c *mockConversation) Send(_ context.Context, text string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lower := strings.ToLower(text)
	for _, w := range cautiousWords {
		if strings.Contains(lower, w) {
			c.score--
		}
	}
	for _, w := range boldWords {
		if strings.Contains(lower, w) {
			c.score++
		}
	}

	if c.turns < len(mockQuestions) {
		q := mockQuestions[c.turns]
		c.turns++
		return q, nil
	}
	c.turns++

	level := "Moderate"
	switch {
	case c.score < 0:
		level = "Low"
	case c.score > 0:
		level = "Aggressive"
	}
	return fmt.Sprintf("Thanks for sharing. Based on our chat, your risk profile is %s.", level), nil
}

// Reply is one scripted collaborator answer
type Reply struct {
	Text string
	Err  error
}

// Scripted replays canned replies in order across all of its
// conversations. It records what it was sent.
type Scripted struct {
	mu       sync.Mutex
	replies  []Reply
	advice   []Reply
	StartErr error

	Instructions []string
	Sent         []string
	AdviceAsked  []advisor.AdviceRequest
}

func NewScripted(replies ...Reply) *Scripted {
	return &Scripted{replies: replies}
}

// WithAdvice queues advice answers
func (s *Scripted) WithAdvice(replies ...Reply) *Scripted {
	s.mu.Lock()
	s.advice = append(s.advice, replies...)
	s.mu.Unlock()
	return s
}

func (s *Scripted) StartConversation(_ context.Context, instruction string) (advisor.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Instructions = append(s.Instructions, instruction)
	if s.StartErr != nil {
		return nil, s.StartErr
	}
	return scriptedConversation{s}, nil
}

func (s *Scripted) RequestAdvice(_ context.Context, req advisor.AdviceRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AdviceAsked = append(s.AdviceAsked, req)
	return next(&s.advice)
}

type scriptedConversation struct{ s *Scripted }

func (c scriptedConversation) Send(_ context.Context, text string) (string, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	c.s.Sent = append(c.s.Sent, text)
	return next(&c.s.replies)
}

func next(q *[]Reply) (string, error) {
	if len(*q) == 0 {
		return "", fmt.Errorf("scripted: no reply queued")
	}
	r := (*q)[0]
	*q = (*q)[1:]
	return r.Text, r.Err
}
