package handler

import (
	"github.com/valyala/fasthttp"

	"easywealth/internal/model"
	"easywealth/internal/platform/validate"
	"easywealth/internal/projection"
)

type sipRequest struct {
	MonthlyContribution *float64 `json:"monthly_contribution" validate:"required,finite"`
	AnnualRatePercent   *float64 `json:"annual_rate_percent" validate:"required,finite"`
	Years               *int     `json:"years" validate:"required"`
}

type sipResponse struct {
	*model.SIPPlan
	Findings []projection.Finding `json:"findings"`
}

// HandleSIP projects a SIP without touching any workspace
func (h *Handler) HandleSIP(ctx *fasthttp.RequestCtx) {
	var req sipRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(ctx, err)
		return
	}

	in := projection.Input{
		MonthlyContribution: *req.MonthlyContribution,
		AnnualRatePercent:   *req.AnnualRatePercent,
		Years:               *req.Years,
	}
	series, err := projection.ProjectSeries(in)
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, sipResponse{
		SIPPlan:  model.NewSIPPlan(in, series),
		Findings: nonNil(h.bounds.CheckProjection(in)),
	})
}

type fireRequest struct {
	AnnualExpense         *float64 `json:"annual_expense" validate:"required,finite"`
	WithdrawalRatePercent *float64 `json:"withdrawal_rate_percent" validate:"required,finite"`
}

type fireResponse struct {
	*model.FirePlan
	Findings []projection.Finding `json:"findings"`
}

func (h *Handler) HandleFire(ctx *fasthttp.RequestCtx) {
	var req fireRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(ctx, err)
		return
	}

	in := projection.FireInput{
		AnnualExpense:         *req.AnnualExpense,
		WithdrawalRatePercent: *req.WithdrawalRatePercent,
	}
	res, err := projection.FireNumber(in)
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, fireResponse{
		FirePlan: model.NewFirePlan(in, res),
		Findings: nonNil(h.bounds.CheckFire(in)),
	})
}

func nonNil(f []projection.Finding) []projection.Finding {
	if f == nil {
		return []projection.Finding{}
	}
	return f
}
