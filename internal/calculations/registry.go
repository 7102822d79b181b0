package calculations

import (
	"sort"
	"time"

	"easywealth/internal/projection"
)

// Registry maps instruction names to handlers
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry wires every instruction with the slider policy and a clock
func NewRegistry(bounds projection.Bounds, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{handlers: map[string]Handler{
		"project_sip":    &ProjectSIPHandler{Bounds: bounds},
		"plan_fire":      &PlanFireHandler{Bounds: bounds},
		"add_expense":    &AddExpenseHandler{Now: now},
		"remove_expense": &RemoveExpenseHandler{},
	}}
}

// Get looks up a handler by instruction name
func (r *Registry) Get(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Names lists the known instructions, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for n := range r.handlers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
