package calculations

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"easywealth/internal/budget"
	"easywealth/internal/model"
)

const dateLayout = "2006-01-02"

type addExpenseProps struct {
	Category string          `json:"category"`
	Title    string          `json:"title,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date,omitempty"`
}

type AddExpenseHandler struct {
	Now func() time.Time
}

func (h *AddExpenseHandler) Validate(state *model.Situation, ins *model.Instruction) []model.CalculationMessage {
	var props addExpenseProps
	if err := decodeProps(ins, &props); err != nil {
		return invalidProps(err)
	}

	if _, err := budget.ParseCategory(props.Category); err != nil {
		return []model.CalculationMessage{critical("INVALID_CATEGORY", "Category %q is not one of Food, Rent, Transport, Shopping, Bills", props.Category)}
	}

	if !props.Amount.IsPositive() {
		return []model.CalculationMessage{critical("INVALID_AMOUNT", "Amount must be greater than zero")}
	}

	if props.Date != "" {
		d, err := time.Parse(dateLayout, props.Date)
		if err != nil {
			return []model.CalculationMessage{critical("INVALID_DATE", "Date %q is not YYYY-MM-DD", props.Date)}
		}
		if d.After(h.Now()) {
			return []model.CalculationMessage{warning("FUTURE_DATED_EXPENSE", "Expense is dated %s, which is in the future", props.Date)}
		}
	}
	return nil
}

func (h *AddExpenseHandler) Apply(state *model.Situation, ins *model.Instruction) []model.CalculationMessage {
	var props addExpenseProps
	if err := decodeProps(ins, &props); err != nil {
		return invalidProps(err)
	}

	cat, _ := budget.ParseCategory(props.Category)
	title := strings.TrimSpace(props.Title)
	if title == "" {
		title = string(cat)
	}
	date := props.Date
	if date == "" {
		date = ins.ActualAt
	}
	if date == "" {
		date = h.Now().Format(dateLayout)
	}

	state.Expenses = append(state.Expenses, budget.Expense{
		ID:       uuid.NewString(),
		Category: cat,
		Title:    title,
		Amount:   props.Amount,
		Date:     date,
	})
	state.Budget = budget.Summarize(state.Expenses)
	return nil
}

type removeExpenseProps struct {
	ExpenseID string `json:"expense_id"`
}

type RemoveExpenseHandler struct{}

func (h *RemoveExpenseHandler) Validate(state *model.Situation, ins *model.Instruction) []model.CalculationMessage {
	var props removeExpenseProps
	if err := decodeProps(ins, &props); err != nil {
		return invalidProps(err)
	}

	for _, e := range state.Expenses {
		if e.ID == props.ExpenseID {
			return nil
		}
	}
	return []model.CalculationMessage{critical("EXPENSE_NOT_FOUND", "No expense with id %q", props.ExpenseID)}
}

func (h *RemoveExpenseHandler) Apply(state *model.Situation, ins *model.Instruction) []model.CalculationMessage {
	var props removeExpenseProps
	if err := decodeProps(ins, &props); err != nil {
		return invalidProps(err)
	}

	remaining, ok := budget.Remove(state.Expenses, props.ExpenseID)
	if !ok {
		return []model.CalculationMessage{critical("EXPENSE_NOT_FOUND", "No expense with id %q", props.ExpenseID)}
	}
	state.Expenses = remaining
	state.Budget = budget.Summarize(state.Expenses)
	return nil
}
