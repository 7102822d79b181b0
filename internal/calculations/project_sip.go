package calculations

import (
	"easywealth/internal/model"
	"easywealth/internal/projection"
)

type ProjectSIPHandler struct {
	Bounds projection.Bounds
}

func (h *ProjectSIPHandler) Validate(state *model.Situation, ins *model.Instruction) []model.CalculationMessage {
	var in projection.Input
	if err := decodeProps(ins, &in); err != nil {
		return invalidProps(err)
	}

	if err := in.Validate(); err != nil {
		return []model.CalculationMessage{critical("INVALID_INPUT", "%s", err.Error())}
	}

	var msgs []model.CalculationMessage
	for _, f := range h.Bounds.CheckProjection(in) {
		msgs = append(msgs, warning(fieldCode(f.Field, f.Code), "%s", f.Message))
	}
	return msgs
}

func (h *ProjectSIPHandler) Apply(state *model.Situation, ins *model.Instruction) []model.CalculationMessage {
	var in projection.Input
	if err := decodeProps(ins, &in); err != nil {
		return invalidProps(err)
	}

	series, err := projection.ProjectSeries(in)
	if err != nil {
		return []model.CalculationMessage{critical("INVALID_INPUT", "%s", err.Error())}
	}

	state.SIP = model.NewSIPPlan(in, series)
	return nil
}
