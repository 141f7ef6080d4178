package entity

import "time"

const (
	SettlementStatusFailed        int32 = 0
	SettlementStatusProcessing    int32 = 1
	SettlementStatusPendingPayout int32 = 2
	SettlementStatusSettled       int32 = 10
)

const DefaultCurrency = "INR"

type Settlement struct {
	ID            uint64
	OrderID       string
	MerchantID    uint64
	PlanID        string
	Amount        int64
	FeePercent    int32
	Fee           int64
	Payout        int64
	Currency      string
	Gateway       string
	Status        int32
	TransactionID *string
	Attempts      int32
	NextAttemptAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func SettlementStatusName(status int32) string {
	switch status {
	case SettlementStatusFailed:
		return "failed"
	case SettlementStatusProcessing:
		return "processing"
	case SettlementStatusPendingPayout:
		return "pending_payout"
	case SettlementStatusSettled:
		return "settled"
	default:
		return "unknown"
	}
}
