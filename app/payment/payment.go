package payment

import (
	"context"
	"fmt"
	"strings"
)

type ResultType string

const (
	ResultTypeSuccess  ResultType = "success"
	ResultTypeRedirect ResultType = "redirect"
	ResultTypeFailure  ResultType = "failure"
)

const (
	GatewayDemo     = "demo"
	GatewayDisabled = "disabled"
)

type Result struct {
	Type          ResultType
	TransactionID string
	PaymentURL    string
	Error         string
}

// Service transfers a settled order's payout to the merchant. A settlement can be attempted
// more than once, so implementations must treat settlementID as an idempotency key.
type Service interface {
	Name() string
	ProcessPayout(ctx context.Context, settlementID uint64, merchantID uint64, amount int64, currency string) Result
}

func NewService(name string) (Service, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case GatewayDemo:
		return NewDemoService(), nil
	case GatewayDisabled:
		return NewDisabledService(), nil
	default:
		return nil, fmt.Errorf("unknown payout gateway %q", name)
	}
}
