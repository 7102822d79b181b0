package calculations

import (
	"easywealth/internal/model"
	"easywealth/internal/projection"
)

type PlanFireHandler struct {
	Bounds projection.Bounds
}

func (h *PlanFireHandler) Validate(state *model.Situation, ins *model.Instruction) []model.CalculationMessage {
	var in projection.FireInput
	if err := decodeProps(ins, &in); err != nil {
		return invalidProps(err)
	}

	if err := in.Validate(); err != nil {
		return []model.CalculationMessage{critical("INVALID_INPUT", "%s", err.Error())}
	}

	var msgs []model.CalculationMessage
	for _, f := range h.Bounds.CheckFire(in) {
		msgs = append(msgs, warning(fieldCode(f.Field, f.Code), "%s", f.Message))
	}
	return msgs
}

func (h *PlanFireHandler) Apply(state *model.Situation, ins *model.Instruction) []model.CalculationMessage {
	var in projection.FireInput
	if err := decodeProps(ins, &in); err != nil {
		return invalidProps(err)
	}

	res, err := projection.FireNumber(in)
	if err != nil {
		return []model.CalculationMessage{critical("INVALID_INPUT", "%s", err.Error())}
	}

	state.Fire = model.NewFirePlan(in, res)
	return nil
}
