package advisor_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easywealth/internal/advisor"
	"easywealth/internal/llm"
	perr "easywealth/internal/platform/errors"
	"easywealth/internal/risk"
	"easywealth/internal/session"
)

func newService(chat advisor.Conversationalist, adv advisor.Advisor) (*advisor.Service, *session.Workspace) {
	store := session.NewStore()
	ws := store.Create()
	return advisor.NewService(store, chat, adv), ws
}

func TestChatClassifiesReply(t *testing.T) {
	bot := llm.NewScripted(
		llm.Reply{Text: "How would you feel about a 20% drop?"},
		llm.Reply{Text: "Based on our chat, your risk profile is Balanced (Moderate Risk)."},
	)
	svc, ws := newService(bot, nil)
	ctx := context.Background()

	res, err := svc.Chat(ctx, ws.ID, "hi")
	require.NoError(t, err)
	assert.False(t, res.Classified)
	assert.Equal(t, risk.Unknown, res.Tier)

	res, err = svc.Chat(ctx, ws.ID, "I'd hold")
	require.NoError(t, err)
	assert.True(t, res.Classified)
	assert.Equal(t, risk.Balanced, res.Tier)
	assert.Equal(t, risk.Balanced, ws.Profile.Tier())

	// one conversation per workspace, seeded with the assessment instruction
	assert.Equal(t, []string{advisor.AssessmentInstruction}, bot.Instructions)

	tr := ws.Transcript()
	require.Len(t, tr, 5)
	assert.Equal(t, session.RoleSystem, tr[0].Role)
	assert.Equal(t, session.RoleUser, tr[1].Role)
	assert.Equal(t, session.RoleModel, tr[2].Role)
	assert.Equal(t, "I'd hold", tr[3].Text)
}

func TestChatReclassifies(t *testing.T) {
	bot := llm.NewScripted(
		llm.Reply{Text: "Your risk profile is Aggressive."},
		llm.Reply{Text: "On reflection, your risk profile is Conservative."},
	)
	svc, ws := newService(bot, nil)

	_, err := svc.Chat(context.Background(), ws.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, risk.Aggressive, ws.Profile.Tier())

	_, err = svc.Chat(context.Background(), ws.ID, "b")
	require.NoError(t, err)
	assert.Equal(t, risk.Conservative, ws.Profile.Tier())
}

func TestChatFailureKeepsTier(t *testing.T) {
	bot := llm.NewScripted(
		llm.Reply{Text: "your risk profile is high"},
		llm.Reply{Text: "your risk profile is low", Err: errors.New("network down")},
	)
	svc, ws := newService(bot, nil)

	_, err := svc.Chat(context.Background(), ws.ID, "a")
	require.NoError(t, err)

	res, err := svc.Chat(context.Background(), ws.ID, "b")
	require.NoError(t, err)
	assert.True(t, res.Degraded)
	assert.False(t, res.Classified)
	assert.Equal(t, advisor.FallbackConnect, res.Reply.Text)
	assert.Equal(t, risk.Aggressive, ws.Profile.Tier())
}

func TestChatWithoutCollaborator(t *testing.T) {
	svc, ws := newService(nil, nil)
	res, err := svc.Chat(context.Background(), ws.ID, "hello")
	require.NoError(t, err)
	assert.True(t, res.Degraded)
	assert.Equal(t, advisor.FallbackConnect, res.Reply.Text)
	assert.Equal(t, risk.Unknown, ws.Profile.Tier())
}

func TestChatStartFailureIsRetried(t *testing.T) {
	bot := llm.NewScripted(llm.Reply{Text: "hello again"})
	bot.StartErr = errors.New("quota")
	svc, ws := newService(bot, nil)

	res, err := svc.Chat(context.Background(), ws.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, advisor.FallbackConnect, res.Reply.Text)

	bot.StartErr = nil
	res, err = svc.Chat(context.Background(), ws.ID, "b")
	require.NoError(t, err)
	assert.Equal(t, "hello again", res.Reply.Text)
	assert.Len(t, bot.Instructions, 2)
}

func TestChatEmptyReply(t *testing.T) {
	svc, ws := newService(llm.NewScripted(llm.Reply{Text: "  "}), nil)
	res, err := svc.Chat(context.Background(), ws.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, advisor.FallbackEmptyReply, res.Reply.Text)
	assert.False(t, res.Degraded)
}

func TestChatValidation(t *testing.T) {
	svc, ws := newService(llm.NewMock(), nil)

	_, err := svc.Chat(context.Background(), "missing", "a")
	assert.Equal(t, perr.ErrorCodeNotFound, perr.CodeOf(err))

	_, err = svc.Chat(context.Background(), ws.ID, "   ")
	assert.Equal(t, perr.ErrorCodeValidation, perr.CodeOf(err))
	assert.Len(t, ws.Transcript(), 1)
}

func TestChatTurnsAreSerialized(t *testing.T) {
	svc, ws := newService(llm.NewMock(), nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Chat(context.Background(), ws.ID, "turn")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	tr := ws.Transcript()
	require.Len(t, tr, 17)
	for i := 1; i < len(tr); i += 2 {
		assert.Equal(t, session.RoleUser, tr[i].Role)
		assert.Equal(t, session.RoleModel, tr[i+1].Role)
	}
}

func TestAdviceGatedOnTier(t *testing.T) {
	adv := llm.NewScripted().WithAdvice(llm.Reply{Text: "- 60% equity"})
	svc, ws := newService(nil, adv)

	_, err := svc.Advice(context.Background(), ws.ID, "retire early", "5L")
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeConflict, perr.CodeOf(err))
	assert.Empty(t, adv.AdviceAsked)

	_, err = svc.SetTier(ws.ID, risk.Balanced)
	require.NoError(t, err)

	res, err := svc.Advice(context.Background(), ws.ID, "retire early", "5L")
	require.NoError(t, err)
	assert.Equal(t, "- 60% equity", res.Advice)
	require.Len(t, adv.AdviceAsked, 1)
	assert.Equal(t, risk.Balanced, adv.AdviceAsked[0].Tier)
	assert.Equal(t, "5L", adv.AdviceAsked[0].Savings)
}

func TestAdviceRequiresFields(t *testing.T) {
	svc, ws := newService(nil, llm.NewMock())
	ws.Profile.Set(risk.Aggressive)

	_, err := svc.Advice(context.Background(), ws.ID, "", "5L")
	e, ok := perr.As(err)
	require.True(t, ok)
	assert.Equal(t, "goals", e.Field())

	_, err = svc.Advice(context.Background(), ws.ID, "house", " ")
	e, ok = perr.As(err)
	require.True(t, ok)
	assert.Equal(t, "savings", e.Field())
}

func TestAdviceFallbacks(t *testing.T) {
	ctx := context.Background()

	svc, ws := newService(nil, nil)
	ws.Profile.Set(risk.Conservative)
	res, err := svc.Advice(ctx, ws.ID, "g", "s")
	require.NoError(t, err)
	assert.Equal(t, advisor.FallbackUnavailable, res.Advice)

	adv := llm.NewScripted().WithAdvice(llm.Reply{Err: errors.New("boom")}, llm.Reply{Text: ""})
	svc, ws = newService(nil, adv)
	ws.Profile.Set(risk.Conservative)

	res, err = svc.Advice(ctx, ws.ID, "g", "s")
	require.NoError(t, err)
	assert.Equal(t, advisor.FallbackAdviceError, res.Advice)
	assert.True(t, res.Degraded)

	res, err = svc.Advice(ctx, ws.ID, "g", "s")
	require.NoError(t, err)
	assert.Equal(t, advisor.FallbackEmptyAdvice, res.Advice)
	assert.Len(t, adv.AdviceAsked, 2, "each request is a single attempt")
}

func TestAdvicePrompt(t *testing.T) {
	p := advisor.AdvicePrompt(advisor.AdviceRequest{Tier: risk.Aggressive, Goals: "buy a house", Savings: "10L"})
	assert.Contains(t, p, "User Risk Profile: Aggressive (High Risk)")
	assert.Contains(t, p, "Financial Goals: buy a house")
	assert.Contains(t, p, "Current Savings/Portfolio: 10L")
}
