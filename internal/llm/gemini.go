// Package llm holds the language-model collaborators behind the advisor ports.
package llm

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"easywealth/internal/advisor"
	"easywealth/internal/platform/logger"
)

const DefaultModel = "gemini-2.5-flash"

// Gemini talks to the Gemini API. One client serves every conversation.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}
	logger.Named("llm").Info().Str("model", model).Msg("gemini client ready")
	return &Gemini{client: client, model: model}, nil
}

// StartConversation opens a chat whose history lives client side and is
// replayed on every turn.
func (g *Gemini) StartConversation(_ context.Context, instruction string) (advisor.Conversation, error) {
	return &geminiConversation{
		g:      g,
		system: genai.NewContentFromText(instruction, genai.RoleUser),
	}, nil
}

// RequestAdvice sends the wealth-manager prompt as a single generation
func (g *Gemini) RequestAdvice(ctx context.Context, req advisor.AdviceRequest) (string, error) {
	res, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(advisor.AdvicePrompt(req)), nil)
	if err != nil {
		return "", fmt.Errorf("gemini: generate advice: %w", err)
	}
	return res.Text(), nil
}

type geminiConversation struct {
	g      *Gemini
	system *genai.Content

	mu      sync.Mutex
	history []*genai.Content
}

func (c *geminiConversation) Send(ctx context.Context, text string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user := genai.NewContentFromText(text, genai.RoleUser)
	contents := make([]*genai.Content, 0, len(c.history)+1)
	contents = append(contents, c.history...)
	contents = append(contents, user)

	temp := float32(0.7)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: c.system,
		Temperature:       &temp,
	}
	res, err := c.g.client.Models.GenerateContent(ctx, c.g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: send message: %w", err)
	}

	reply := res.Text()
	// failed turns are not replayed
	c.history = append(contents, genai.NewContentFromText(reply, genai.RoleModel))
	return reply, nil
}
