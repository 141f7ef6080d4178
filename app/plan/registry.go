package plan

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidPlan   = errors.New("invalid plan definition")
	ErrDuplicatePlan = errors.New("duplicate plan id")
	ErrEmptyCatalog  = errors.New("plan catalog is empty")
)

// Registry is a read-only plan catalog keyed by plan id. It is never mutated after
// NewRegistry returns, so a single instance can be shared by any number of goroutines.
type Registry struct {
	plans map[string]Plan
	order []string
}

var builtin = mustRegistry(builtinPlans())

// Default returns the built-in catalog.
func Default() *Registry {
	return builtin
}

func NewRegistry(plans []Plan) (*Registry, error) {
	if len(plans) == 0 {
		return nil, ErrEmptyCatalog
	}

	r := &Registry{
		plans: make(map[string]Plan, len(plans)),
		order: make([]string, 0, len(plans)),
	}
	for _, p := range plans {
		if err := validatePlan(p); err != nil {
			return nil, err
		}
		if _, exists := r.plans[p.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlan, p.ID)
		}
		r.plans[p.ID] = p.clone()
		r.order = append(r.order, p.ID)
	}

	return r, nil
}

func mustRegistry(plans []Plan) *Registry {
	r, err := NewRegistry(plans)
	if err != nil {
		panic(err)
	}
	return r
}

// GetPlanByID resolves a plan by exact id match.
func (r *Registry) GetPlanByID(planID string) (Plan, bool) {
	p, ok := r.plans[planID]
	if !ok {
		return Plan{}, false
	}
	return p.clone(), true
}

// List returns every plan in catalog order.
func (r *Registry) List() []Plan {
	out := make([]Plan, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.plans[id].clone())
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.order)
}

func validatePlan(p Plan) error {
	switch {
	case strings.TrimSpace(p.ID) == "" || p.ID != strings.TrimSpace(p.ID):
		return fmt.Errorf("%w: id must be non-empty without surrounding spaces", ErrInvalidPlan)
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: %s: name is required", ErrInvalidPlan, p.ID)
	case p.PriceINR < 0 || p.PriceMonthly < 0:
		return fmt.Errorf("%w: %s: prices must be non-negative", ErrInvalidPlan, p.ID)
	case p.MaxStores < Unlimited || p.MaxProducts < Unlimited:
		return fmt.Errorf("%w: %s: caps must be %d or non-negative", ErrInvalidPlan, p.ID, Unlimited)
	case p.TransactionFeePercent < 0 || p.TransactionFeePercent > 100:
		return fmt.Errorf("%w: %s: transaction fee percent must be within 0..100", ErrInvalidPlan, p.ID)
	}
	return nil
}

// GetPlanByID resolves a plan from the built-in catalog.
func GetPlanByID(planID string) (Plan, bool) {
	return builtin.GetPlanByID(planID)
}

// List returns the built-in catalog.
func List() []Plan {
	return builtin.List()
}
