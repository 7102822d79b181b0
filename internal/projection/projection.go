// Package projection computes SIP growth series and FIRE targets.
//
// Every function here is pure: inputs are validated, nothing is cached, and
// identical inputs always produce identical output.
package projection

import (
	stderrs "errors"
	"fmt"
	"math"

	perr "easywealth/internal/platform/errors"
)

// ErrInvalidInput is matched by every precondition failure returned here
var ErrInvalidInput = stderrs.New("invalid input")

// Input is a recurring monthly contribution compounded monthly
type Input struct {
	MonthlyContribution float64 `json:"monthly_contribution"`
	AnnualRatePercent   float64 `json:"annual_rate_percent"`
	Years               int     `json:"years"`
}

// Point is the position at the end of one year
type Point struct {
	Period                int     `json:"period"`
	CumulativeContributed float64 `json:"cumulative_contributed"`
	ProjectedValue        float64 `json:"projected_value"`
}

// FireInput sizes a corpus from yearly spending
type FireInput struct {
	AnnualExpense         float64 `json:"annual_expense"`
	WithdrawalRatePercent float64 `json:"withdrawal_rate_percent"`
}

// FireResult is the corpus needed to sustain the withdrawal rate
type FireResult struct {
	TargetCorpus      float64 `json:"target_corpus"`
	MonthlyWithdrawal float64 `json:"monthly_withdrawal"`
}

// MaxYears is the longest horizon the engine projects
const MaxYears = 100

func invalid(field, msg string) error {
	return perr.WithField(perr.Wrap(ErrInvalidInput, perr.ErrorCodeInvalidInput, field+" "+msg), field)
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// Validate checks the engine preconditions, not the UI slider policy
func (in Input) Validate() error {
	switch {
	case !finite(in.MonthlyContribution) || in.MonthlyContribution <= 0:
		return invalid("monthly_contribution", "must be a positive number")
	case !finite(in.AnnualRatePercent) || in.AnnualRatePercent < 0 || in.AnnualRatePercent > 100:
		return invalid("annual_rate_percent", "must be between 0 and 100")
	case in.Years < 1:
		return invalid("years", "must be at least 1")
	case in.Years > MaxYears:
		return invalid("years", fmt.Sprintf("must be at most %d", MaxYears))
	}
	return nil
}

// Validate checks the FIRE preconditions
func (in FireInput) Validate() error {
	switch {
	case !finite(in.AnnualExpense) || in.AnnualExpense <= 0:
		return invalid("annual_expense", "must be a positive number")
	case !finite(in.WithdrawalRatePercent) || in.WithdrawalRatePercent <= 0 || in.WithdrawalRatePercent > 100:
		return invalid("withdrawal_rate_percent", "must be greater than 0 and at most 100")
	}
	return nil
}

// ProjectSeries returns one point per year, periods 1..Years in order.
// The value is the future value of an annuity due at the monthly rate
// i = rate/12/100; a zero rate degenerates to plain accumulation.
func ProjectSeries(in Input) ([]Point, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p := in.MonthlyContribution
	i := in.AnnualRatePercent / 12 / 100

	series := make([]Point, 0, in.Years)
	for y := 1; y <= in.Years; y++ {
		n := float64(y * 12)

		var value float64
		if i == 0 {
			value = p * n
		} else {
			value = p * ((math.Pow(1+i, n) - 1) / i) * (1 + i)
		}

		contributed := p * 12 * float64(y)
		if !finite(contributed) || !finite(value) {
			return nil, invalid("monthly_contribution", "overflows the projection")
		}

		series = append(series, Point{
			Period:                y,
			CumulativeContributed: contributed,
			ProjectedValue:        value,
		})
	}
	return series, nil
}

// Maturity returns the last point of a series; ok is false for an empty series
func Maturity(series []Point) (Point, bool) {
	if len(series) == 0 {
		return Point{}, false
	}
	return series[len(series)-1], true
}

// FireNumber sizes the corpus as annualExpense × (100 / withdrawal rate)
func FireNumber(in FireInput) (FireResult, error) {
	if err := in.Validate(); err != nil {
		return FireResult{}, err
	}
	res := FireResult{
		TargetCorpus:      in.AnnualExpense * (100 / in.WithdrawalRatePercent),
		MonthlyWithdrawal: in.AnnualExpense / 12,
	}
	if !finite(res.TargetCorpus) || !finite(res.MonthlyWithdrawal) {
		return FireResult{}, invalid("annual_expense", "overflows the target corpus")
	}
	return res, nil
}
