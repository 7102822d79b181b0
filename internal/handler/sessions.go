package handler

import (
	"time"

	"github.com/valyala/fasthttp"

	"easywealth/internal/budget"
	"easywealth/internal/model"
	perr "easywealth/internal/platform/errors"
	"easywealth/internal/platform/logger"
	"easywealth/internal/platform/validate"
	"easywealth/internal/risk"
	"easywealth/internal/session"
)

const recentExpenses = 5

type dashboard struct {
	SessionID      string           `json:"session_id"`
	CreatedAt      time.Time        `json:"created_at"`
	Tier           risk.Tier        `json:"tier"`
	CallToAction   string           `json:"call_to_action"`
	Blurb          string           `json:"blurb"`
	Views          []risk.View      `json:"views"`
	Budget         budget.Summary   `json:"budget"`
	RecentExpenses []budget.Expense `json:"recent_expenses"`
	SIP            *model.SIPPlan   `json:"sip"`
	Fire           *model.FirePlan  `json:"fire"`
	TranscriptSize int              `json:"transcript_size"`
}

func newDashboard(ws *session.Workspace) dashboard {
	tier := ws.Profile.Tier()
	sit := ws.Situation()
	recent := budget.Newest(sit.Expenses)
	if len(recent) > recentExpenses {
		recent = recent[:recentExpenses]
	}
	return dashboard{
		SessionID:      ws.ID,
		CreatedAt:      ws.CreatedAt,
		Tier:           tier,
		CallToAction:   risk.CallToAction(tier),
		Blurb:          risk.Blurb(tier),
		Views:          risk.Views(tier),
		Budget:         sit.Budget,
		RecentExpenses: recent,
		SIP:            sit.SIP,
		Fire:           sit.Fire,
		TranscriptSize: len(ws.Transcript()),
	}
}

func (h *Handler) workspace(ctx *fasthttp.RequestCtx) (*session.Workspace, bool) {
	ws, err := h.sessions.Get(sessionID(ctx))
	if err != nil {
		writeError(ctx, err)
		return nil, false
	}
	return ws, true
}

func (h *Handler) HandleCreateSession(ctx *fasthttp.RequestCtx) {
	ws := h.sessions.Create()
	logger.C(logger.WithSession(reqContext(ctx), ws.ID)).Info().Msg("session created")
	writeJSON(ctx, fasthttp.StatusCreated, newDashboard(ws))
}

type sessionSummary struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	Tier      risk.Tier `json:"tier"`
}

func (h *Handler) HandleListSessions(ctx *fasthttp.RequestCtx) {
	list := h.sessions.List()
	out := make([]sessionSummary, 0, len(list))
	for _, ws := range list {
		out = append(out, sessionSummary{SessionID: ws.ID, CreatedAt: ws.CreatedAt, Tier: ws.Profile.Tier()})
	}
	writeJSON(ctx, fasthttp.StatusOK, out)
}

func (h *Handler) HandleDashboard(ctx *fasthttp.RequestCtx) {
	ws, ok := h.workspace(ctx)
	if !ok {
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, newDashboard(ws))
}

// HandleCalculation runs an instruction batch against the workspace and
// keeps whatever applied before the first critical message.
func (h *Handler) HandleCalculation(ctx *fasthttp.RequestCtx) {
	ws, ok := h.workspace(ctx)
	if !ok {
		return
	}

	var req model.CalculationRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(ctx, err)
		return
	}

	var resp *model.CalculationResponse
	ws.Calculate(func(cur model.Situation) (model.Situation, bool) {
		resp = h.engine.Process(ws.ID, cur, &req)
		end := resp.CalculationResult.EndSituation
		return end.Situation, end.InstructionIndex >= 0
	})
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

type transcriptResponse struct {
	Tier     risk.Tier             `json:"tier"`
	Messages []session.ChatMessage `json:"messages"`
}

func (h *Handler) HandleTranscript(ctx *fasthttp.RequestCtx) {
	ws, ok := h.workspace(ctx)
	if !ok {
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, transcriptResponse{Tier: ws.Profile.Tier(), Messages: ws.Transcript()})
}

type chatRequest struct {
	Text string `json:"text" validate:"required"`
}

func (h *Handler) HandleChat(ctx *fasthttp.RequestCtx) {
	var req chatRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(ctx, err)
		return
	}

	res, err := h.advisor.Chat(reqContext(ctx), sessionID(ctx), req.Text)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, res)
}

type adviceRequest struct {
	Goals   string `json:"goals" validate:"required"`
	Savings string `json:"savings" validate:"required"`
}

func (h *Handler) HandleAdvice(ctx *fasthttp.RequestCtx) {
	var req adviceRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(ctx, err)
		return
	}

	res, err := h.advisor.Advice(reqContext(ctx), sessionID(ctx), req.Goals, req.Savings)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, res)
}

type profileRequest struct {
	Tier string `json:"tier" validate:"required"`
}

// HandleProfile overrides the tier by hand
func (h *Handler) HandleProfile(ctx *fasthttp.RequestCtx) {
	var req profileRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(ctx, err)
		return
	}
	tier, err := risk.ParseTier(req.Tier)
	if err != nil {
		writeError(ctx, perr.WithField(perr.Validationf("%s", err.Error()), "tier"))
		return
	}

	if _, err := h.advisor.SetTier(sessionID(ctx), tier); err != nil {
		writeError(ctx, err)
		return
	}
	ws, ok := h.workspace(ctx)
	if !ok {
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, newDashboard(ws))
}
