package projection

import (
	"fmt"
	"math"
)

// Range is one slider: inclusive limits and a step. A zero Max means unbounded above.
type Range struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max,omitempty"`
	Step float64 `json:"step,omitempty"`
}

// Bounds is the calculator input policy of the UI. The engine never enforces
// it; callers use the findings to warn.
type Bounds struct {
	MonthlyContribution Range `json:"monthly_contribution"`
	AnnualRatePercent   Range `json:"annual_rate_percent"`
	Years               Range `json:"years"`
	AnnualExpense       Range `json:"annual_expense"`
	WithdrawalRate      Range `json:"withdrawal_rate_percent"`
}

// DefaultBounds mirrors the calculator sliders
func DefaultBounds() Bounds {
	return Bounds{
		MonthlyContribution: Range{Min: 500, Max: 100000, Step: 500},
		AnnualRatePercent:   Range{Min: 5, Max: 30, Step: 0.5},
		Years:               Range{Min: 1, Max: 40, Step: 1},
		AnnualExpense:       Range{},
		WithdrawalRate:      Range{Min: 2, Max: 6, Step: 0.1},
	}
}

// Finding is an input outside the slider policy
type Finding struct {
	Field   string  `json:"field"`
	Code    string  `json:"code"`
	Value   float64 `json:"value"`
	Message string  `json:"message"`
}

const stepTolerance = 1e-9

func (r Range) check(field string, v float64) []Finding {
	var out []Finding
	if v < r.Min || (r.Max > 0 && v > r.Max) {
		msg := fmt.Sprintf("%s %v is outside the supported range [%v, %v]", field, v, r.Min, r.Max)
		if r.Max == 0 {
			msg = fmt.Sprintf("%s %v is below the supported minimum %v", field, v, r.Min)
		}
		out = append(out, Finding{Field: field, Code: "OUTSIDE_RANGE", Value: v, Message: msg})
		return out
	}
	if r.Step > 0 {
		steps := (v - r.Min) / r.Step
		if math.Abs(steps-math.Round(steps)) > stepTolerance*math.Max(1, math.Abs(steps)) {
			out = append(out, Finding{
				Field:   field,
				Code:    "OFF_STEP",
				Value:   v,
				Message: fmt.Sprintf("%s %v is not a multiple of %v from %v", field, v, r.Step, r.Min),
			})
		}
	}
	return out
}

// CheckProjection reports SIP inputs outside the slider policy
func (b Bounds) CheckProjection(in Input) []Finding {
	var out []Finding
	out = append(out, b.MonthlyContribution.check("monthly_contribution", in.MonthlyContribution)...)
	out = append(out, b.AnnualRatePercent.check("annual_rate_percent", in.AnnualRatePercent)...)
	out = append(out, b.Years.check("years", float64(in.Years))...)
	return out
}

// CheckFire reports FIRE inputs outside the slider policy
func (b Bounds) CheckFire(in FireInput) []Finding {
	var out []Finding
	out = append(out, b.AnnualExpense.check("annual_expense", in.AnnualExpense)...)
	out = append(out, b.WithdrawalRate.check("withdrawal_rate_percent", in.WithdrawalRatePercent)...)
	return out
}
