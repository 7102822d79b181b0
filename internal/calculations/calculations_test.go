package calculations

import (
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"easywealth/internal/model"
	"easywealth/internal/projection"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newIns(name, props string) *model.Instruction {
	return &model.Instruction{InstructionID: "i1", InstructionName: name, Properties: json.RawMessage(props)}
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry(projection.DefaultBounds(), nil)
	got := strings.Join(r.Names(), ",")
	if got != "add_expense,plan_fire,project_sip,remove_expense" {
		t.Fatalf("unexpected names %s", got)
	}
	if _, ok := r.Get("create_dossier"); ok {
		t.Fatal("expected no handler for create_dossier")
	}
}

func TestProjectSIPWarnsOffStep(t *testing.T) {
	h := &ProjectSIPHandler{Bounds: projection.DefaultBounds()}
	state := model.NewSituation()
	msgs := h.Validate(&state, newIns("project_sip", `{"monthly_contribution":5250,"annual_rate_percent":12,"years":10}`))
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Level != model.LevelWarning || msgs[0].Code != "MONTHLY_CONTRIBUTION_OFF_STEP" {
		t.Fatalf("unexpected message %+v", msgs[0])
	}
}

func TestUnknownPropertyIsCritical(t *testing.T) {
	h := &PlanFireHandler{Bounds: projection.DefaultBounds()}
	state := model.NewSituation()
	msgs := h.Validate(&state, newIns("plan_fire", `{"annual_expense":600000,"withdrawal_rate_percent":4,"inflation":6}`))
	if len(msgs) != 1 || msgs[0].Code != "INVALID_PROPERTIES" {
		t.Fatalf("expected INVALID_PROPERTIES, got %+v", msgs)
	}
}

func TestAddExpenseValidation(t *testing.T) {
	h := &AddExpenseHandler{Now: func() time.Time { return fixedNow }}
	state := model.NewSituation()

	cases := []struct {
		props string
		code  string
		level string
	}{
		{`{"category":"Travel","amount":"10"}`, "INVALID_CATEGORY", model.LevelCritical},
		{`{"category":"Food","amount":"0"}`, "INVALID_AMOUNT", model.LevelCritical},
		{`{"category":"Food","amount":"10","date":"01/03/2024"}`, "INVALID_DATE", model.LevelCritical},
		{`{"category":"Food","amount":"10","date":"2024-04-01"}`, "FUTURE_DATED_EXPENSE", model.LevelWarning},
	}
	for _, tc := range cases {
		msgs := h.Validate(&state, newIns("add_expense", tc.props))
		if len(msgs) != 1 {
			t.Fatalf("%s: expected 1 message, got %d", tc.props, len(msgs))
		}
		if msgs[0].Code != tc.code || msgs[0].Level != tc.level {
			t.Fatalf("%s: expected %s/%s, got %s/%s", tc.props, tc.level, tc.code, msgs[0].Level, msgs[0].Code)
		}
	}
}

func TestAddExpenseDefaults(t *testing.T) {
	h := &AddExpenseHandler{Now: func() time.Time { return fixedNow }}
	state := model.NewSituation()
	if msgs := h.Apply(&state, newIns("add_expense", `{"category":"bills","amount":1499.5}`)); len(msgs) != 0 {
		t.Fatalf("expected no messages, got %+v", msgs)
	}

	added := state.Expenses[len(state.Expenses)-1]
	if added.Title != "Bills" {
		t.Fatalf("expected title Bills, got %s", added.Title)
	}
	if added.Date != "2024-03-01" {
		t.Fatalf("expected date 2024-03-01, got %s", added.Date)
	}
	if state.Budget.Count != 4 {
		t.Fatalf("expected 4 expenses in summary, got %d", state.Budget.Count)
	}
}
