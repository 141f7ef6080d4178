package plan

// PlanHolder is anything carrying a subscription plan id, typically a merchant account.
type PlanHolder interface {
	SubscriptionPlanID() string
}

// Subscriber is the minimal PlanHolder.
type Subscriber struct {
	SubscriptionPlan string
}

func (s Subscriber) SubscriptionPlanID() string {
	return s.SubscriptionPlan
}

// CanCreateStore denies when the holder's plan cannot be resolved.
func (r *Registry) CanCreateStore(user PlanHolder, currentStoreCount int64) bool {
	p, ok := r.resolve(user)
	if !ok {
		return false
	}
	return withinCap(p.MaxStores, currentStoreCount)
}

// CanAddProduct denies when the holder's plan cannot be resolved.
func (r *Registry) CanAddProduct(user PlanHolder, currentProductCount int64) bool {
	p, ok := r.resolve(user)
	if !ok {
		return false
	}
	return withinCap(p.MaxProducts, currentProductCount)
}

func (r *Registry) resolve(user PlanHolder) (Plan, bool) {
	if user == nil {
		return Plan{}, false
	}
	p, ok := r.plans[user.SubscriptionPlanID()]
	return p, ok
}

func withinCap(limit, current int64) bool {
	if limit == Unlimited {
		return true
	}
	return current < limit
}

func CanCreateStore(user PlanHolder, currentStoreCount int64) bool {
	return builtin.CanCreateStore(user, currentStoreCount)
}

func CanAddProduct(user PlanHolder, currentProductCount int64) bool {
	return builtin.CanAddProduct(user, currentProductCount)
}
