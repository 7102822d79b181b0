package advisor

import (
	"context"
	"strings"
	"sync"

	perr "easywealth/internal/platform/errors"
	"easywealth/internal/platform/logger"
	"easywealth/internal/risk"
	"easywealth/internal/session"
)

// Service ties workspaces to their collaborator conversations. Either
// collaborator may be nil; callers then get the fallback texts.
type Service struct {
	sessions *session.Store
	chat     Conversationalist
	advisor  Advisor

	mu            sync.Mutex
	conversations map[string]Conversation
}

func NewService(sessions *session.Store, chat Conversationalist, adv Advisor) *Service {
	return &Service{
		sessions:      sessions,
		chat:          chat,
		advisor:       adv,
		conversations: make(map[string]Conversation),
	}
}

type ChatResult struct {
	Reply      session.ChatMessage `json:"reply"`
	Tier       risk.Tier           `json:"tier"`
	Classified bool                `json:"classified"`
	Degraded   bool                `json:"degraded"`
}

// Chat sends one user turn. A collaborator failure is not an error: the
// fallback reply is recorded and the tier is left alone.
func (s *Service) Chat(ctx context.Context, sessionID, text string) (ChatResult, error) {
	ws, err := s.sessions.Get(sessionID)
	if err != nil {
		return ChatResult{}, err
	}
	if strings.TrimSpace(text) == "" {
		return ChatResult{}, perr.WithField(perr.Validationf("message is required"), "text")
	}

	log := logger.C(logger.WithSession(ctx, ws.ID))
	var res ChatResult
	ws.InTurn(func() {
		ws.Append(session.RoleUser, text)

		reply, err := s.send(ctx, ws.ID, text)
		if err != nil {
			log.Warn().Err(err).Msg("risk chat collaborator failed")
			res.Reply = ws.Append(session.RoleModel, FallbackConnect)
			res.Tier = ws.Profile.Tier()
			res.Degraded = true
			return
		}
		if strings.TrimSpace(reply) == "" {
			reply = FallbackEmptyReply
		}

		res.Reply = ws.Append(session.RoleModel, reply)
		if t, ok := ws.Profile.Observe(reply); ok {
			log.Info().Str("tier", t.String()).Msg("risk profile updated")
			res.Classified = true
		}
		res.Tier = ws.Profile.Tier()
	})
	return res, nil
}

func (s *Service) send(ctx context.Context, sessionID, text string) (string, error) {
	conv, err := s.conversation(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return conv.Send(ctx, text)
}

// conversation returns the workspace's chat, starting one on first use.
// A failed start is retried on the next turn.
func (s *Service) conversation(ctx context.Context, sessionID string) (Conversation, error) {
	if s.chat == nil {
		return nil, perr.New(perr.ErrorCodeUnavailable, "no conversational collaborator configured")
	}
	s.mu.Lock()
	conv, ok := s.conversations[sessionID]
	s.mu.Unlock()
	if ok {
		return conv, nil
	}

	conv, err := s.chat.StartConversation(ctx, AssessmentInstruction)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "start conversation")
	}
	s.mu.Lock()
	s.conversations[sessionID] = conv
	s.mu.Unlock()
	return conv, nil
}

type AdviceResult struct {
	Advice   string    `json:"advice"`
	Tier     risk.Tier `json:"tier"`
	Degraded bool      `json:"degraded"`
}

// Advice asks the advisor for a plan tailored to the workspace's tier.
// The advisor view is closed until a tier is known.
func (s *Service) Advice(ctx context.Context, sessionID, goals, savings string) (AdviceResult, error) {
	ws, err := s.sessions.Get(sessionID)
	if err != nil {
		return AdviceResult{}, err
	}
	if strings.TrimSpace(goals) == "" {
		return AdviceResult{}, perr.WithField(perr.Validationf("goals are required"), "goals")
	}
	if strings.TrimSpace(savings) == "" {
		return AdviceResult{}, perr.WithField(perr.Validationf("savings are required"), "savings")
	}

	tier := ws.Profile.Tier()
	if !risk.Allows(tier, risk.ViewAdvisor) {
		return AdviceResult{}, perr.WithField(perr.Conflictf("risk profile must be assessed before requesting advice"), "tier")
	}

	res := AdviceResult{Tier: tier}
	if s.advisor == nil {
		res.Advice, res.Degraded = FallbackUnavailable, true
		return res, nil
	}

	log := logger.C(logger.WithSession(ctx, ws.ID))
	text, err := s.advisor.RequestAdvice(ctx, AdviceRequest{Tier: tier, Goals: goals, Savings: savings})
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("advice request failed")
		res.Advice, res.Degraded = FallbackAdviceError, true
	case strings.TrimSpace(text) == "":
		res.Advice, res.Degraded = FallbackEmptyAdvice, true
	default:
		res.Advice = text
	}
	return res, nil
}

// SetTier is the manual override of a workspace's profile
func (s *Service) SetTier(sessionID string, t risk.Tier) (risk.Tier, error) {
	ws, err := s.sessions.Get(sessionID)
	if err != nil {
		return risk.Unknown, err
	}
	ws.Profile.Set(t)
	return ws.Profile.Tier(), nil
}
