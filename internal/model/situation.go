package model

import (
	"github.com/shopspring/decimal"

	"easywealth/internal/budget"
	"easywealth/internal/projection"
)

// Situation is the calculator and budget state of one workspace
type Situation struct {
	Expenses []budget.Expense `json:"expenses"`
	Budget   budget.Summary   `json:"budget"`
	SIP      *SIPPlan         `json:"sip"`
	Fire     *FirePlan        `json:"fire"`
}

type SIPPlan struct {
	Input          projection.Input   `json:"input"`
	Series         []projection.Point `json:"series"`
	Invested       decimal.Decimal    `json:"invested"`
	EstimatedValue decimal.Decimal    `json:"estimated_value"`
	Gain           decimal.Decimal    `json:"gain"`
}

type FirePlan struct {
	Input             projection.FireInput `json:"input"`
	TargetCorpus      decimal.Decimal      `json:"target_corpus"`
	MonthlyWithdrawal decimal.Decimal      `json:"monthly_withdrawal"`
}

// NewSituation opens with the starter expenses and no plans
func NewSituation() Situation {
	s := Situation{Expenses: budget.Seed()}
	s.Budget = budget.Summarize(s.Expenses)
	return s
}

// Clone deep-copies s so instructions can run against a scratch copy
func (s Situation) Clone() Situation {
	out := Situation{
		Expenses: append([]budget.Expense(nil), s.Expenses...),
		Budget: budget.Summary{
			TotalSpent: s.Budget.TotalSpent,
			ByCategory: append([]budget.CategoryTotal(nil), s.Budget.ByCategory...),
			Count:      s.Budget.Count,
		},
	}
	if out.Expenses == nil {
		out.Expenses = []budget.Expense{}
	}
	if s.SIP != nil {
		sip := *s.SIP
		sip.Series = append([]projection.Point(nil), s.SIP.Series...)
		out.SIP = &sip
	}
	if s.Fire != nil {
		fire := *s.Fire
		out.Fire = &fire
	}
	return out
}

// NewSIPPlan derives the headline figures from a series. They are whole
// currency units, as displayed.
func NewSIPPlan(in projection.Input, series []projection.Point) *SIPPlan {
	last, _ := projection.Maturity(series)
	invested := decimal.NewFromFloat(last.CumulativeContributed).Round(0)
	value := decimal.NewFromFloat(last.ProjectedValue).Round(0)
	return &SIPPlan{
		Input:          in,
		Series:         series,
		Invested:       invested,
		EstimatedValue: value,
		Gain:           value.Sub(invested),
	}
}

func NewFirePlan(in projection.FireInput, res projection.FireResult) *FirePlan {
	return &FirePlan{
		Input:             in,
		TargetCorpus:      decimal.NewFromFloat(res.TargetCorpus).Round(0),
		MonthlyWithdrawal: decimal.NewFromFloat(res.MonthlyWithdrawal).Round(2),
	}
}
