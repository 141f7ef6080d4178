package entity

import "time"

type Merchant struct {
	ID               uint64
	Email            string
	SubscriptionPlan string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (m *Merchant) SubscriptionPlanID() string {
	if m == nil {
		return ""
	}
	return m.SubscriptionPlan
}
