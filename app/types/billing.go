// Package types holds the request and response messages shared by the HTTP and gRPC
// transports. Getters are nil-safe so handlers can read optional fields without checks.
package types

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Plan struct {
	Id                    string   `json:"id"`
	Name                  string   `json:"name"`
	PriceInr              int64    `json:"price_inr"`
	PriceMonthly          int64    `json:"price_monthly"`
	MaxProducts           int64    `json:"max_products"`
	MaxStores             int64    `json:"max_stores"`
	TransactionFeePercent int32    `json:"transaction_fee_percent"`
	Features              []string `json:"features"`
}

type ListPlansRequest struct{}

type ListPlansResponse struct {
	Plans []*Plan `json:"plans"`
}

type GetPlanRequest struct {
	Id string `json:"id"`
}

func (r *GetPlanRequest) GetId() string {
	if r == nil {
		return ""
	}
	return r.Id
}

type PlanEnvelopeResponse struct {
	Plan *Plan `json:"plan"`
}

type QuoteFeeRequest struct {
	PlanId string `json:"plan_id"`
	Amount int64  `json:"amount"`
}

func (r *QuoteFeeRequest) GetPlanId() string {
	if r == nil {
		return ""
	}
	return r.PlanId
}

func (r *QuoteFeeRequest) GetAmount() int64 {
	if r == nil {
		return 0
	}
	return r.Amount
}

type FeeQuote struct {
	PlanId     string `json:"plan_id"`
	Amount     int64  `json:"amount"`
	FeePercent int32  `json:"fee_percent"`
	Fee        int64  `json:"fee"`
	Payout     int64  `json:"payout"`
	Fallback   bool   `json:"fallback"`
}

type QuoteFeeResponse struct {
	Quote *FeeQuote `json:"quote"`
}

func (r *QuoteFeeResponse) GetQuote() *FeeQuote {
	if r == nil {
		return nil
	}
	return r.Quote
}

type CheckEntitlementsRequest struct {
	PlanId       string `json:"plan_id"`
	StoreCount   int64  `json:"store_count"`
	ProductCount int64  `json:"product_count"`
}

func (r *CheckEntitlementsRequest) GetPlanId() string {
	if r == nil {
		return ""
	}
	return r.PlanId
}

func (r *CheckEntitlementsRequest) GetStoreCount() int64 {
	if r == nil {
		return 0
	}
	return r.StoreCount
}

func (r *CheckEntitlementsRequest) GetProductCount() int64 {
	if r == nil {
		return 0
	}
	return r.ProductCount
}

type GetMerchantEntitlementsRequest struct {
	MerchantId uint64 `json:"merchant_id"`
}

func (r *GetMerchantEntitlementsRequest) GetMerchantId() uint64 {
	if r == nil {
		return 0
	}
	return r.MerchantId
}

type Entitlements struct {
	MerchantId     uint64 `json:"merchant_id,omitempty"`
	PlanId         string `json:"plan_id"`
	PlanFound      bool   `json:"plan_found"`
	StoreCount     int64  `json:"store_count"`
	ProductCount   int64  `json:"product_count"`
	MaxStores      int64  `json:"max_stores"`
	MaxProducts    int64  `json:"max_products"`
	CanCreateStore bool   `json:"can_create_store"`
	CanAddProduct  bool   `json:"can_add_product"`
}

type EntitlementsResponse struct {
	Entitlements *Entitlements `json:"entitlements"`
}

func (r *EntitlementsResponse) GetEntitlements() *Entitlements {
	if r == nil {
		return nil
	}
	return r.Entitlements
}

type ChangeMerchantPlanRequest struct {
	MerchantId uint64 `json:"merchant_id"`
	PlanId     string `json:"plan_id"`
}

func (r *ChangeMerchantPlanRequest) GetMerchantId() uint64 {
	if r == nil {
		return 0
	}
	return r.MerchantId
}

func (r *ChangeMerchantPlanRequest) GetPlanId() string {
	if r == nil {
		return ""
	}
	return r.PlanId
}

type Merchant struct {
	Id               uint64 `json:"id"`
	Email            string `json:"email"`
	SubscriptionPlan string `json:"subscription_plan"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

type MerchantEnvelopeResponse struct {
	Merchant *Merchant `json:"merchant"`
}

func (r *MerchantEnvelopeResponse) GetMerchant() *Merchant {
	if r == nil {
		return nil
	}
	return r.Merchant
}

type Settlement struct {
	Id            uint64 `json:"id"`
	OrderId       string `json:"order_id"`
	MerchantId    uint64 `json:"merchant_id"`
	PlanId        string `json:"plan_id"`
	Amount        int64  `json:"amount"`
	FeePercent    int32  `json:"fee_percent"`
	Fee           int64  `json:"fee"`
	Payout        int64  `json:"payout"`
	Currency      string `json:"currency"`
	Gateway       string `json:"gateway"`
	Status        int32  `json:"status"`
	TransactionId string `json:"transaction_id,omitempty"`
	Attempts      int32  `json:"attempts"`
	NextAttemptAt string `json:"next_attempt_at,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func (s *Settlement) GetId() uint64 {
	if s == nil {
		return 0
	}
	return s.Id
}

func (s *Settlement) GetStatus() int32 {
	if s == nil {
		return 0
	}
	return s.Status
}

type SettleOrderRequest struct {
	OrderId    string `json:"order_id"`
	MerchantId uint64 `json:"merchant_id"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
}

func (r *SettleOrderRequest) GetOrderId() string {
	if r == nil {
		return ""
	}
	return r.OrderId
}

func (r *SettleOrderRequest) GetMerchantId() uint64 {
	if r == nil {
		return 0
	}
	return r.MerchantId
}

func (r *SettleOrderRequest) GetAmount() int64 {
	if r == nil {
		return 0
	}
	return r.Amount
}

func (r *SettleOrderRequest) GetCurrency() string {
	if r == nil {
		return ""
	}
	return r.Currency
}

type SettleOrderResponse struct {
	Settlement *Settlement `json:"settlement"`
	PaymentUrl string      `json:"payment_url,omitempty"`
}

func (r *SettleOrderResponse) GetSettlement() *Settlement {
	if r == nil {
		return nil
	}
	return r.Settlement
}

type GetSettlementRequest struct {
	Id uint64 `json:"id"`
}

func (r *GetSettlementRequest) GetId() uint64 {
	if r == nil {
		return 0
	}
	return r.Id
}

type SettlementEnvelopeResponse struct {
	Settlement *Settlement `json:"settlement"`
}

func (r *SettlementEnvelopeResponse) GetSettlement() *Settlement {
	if r == nil {
		return nil
	}
	return r.Settlement
}

type ListSettlementsRequest struct {
	MerchantId uint64 `json:"merchant_id"`
	HasStatus  bool   `json:"has_status"`
	Status     int32  `json:"status"`
}

func (r *ListSettlementsRequest) GetMerchantId() uint64 {
	if r == nil {
		return 0
	}
	return r.MerchantId
}

func (r *ListSettlementsRequest) GetHasStatus() bool {
	if r == nil {
		return false
	}
	return r.HasStatus
}

func (r *ListSettlementsRequest) GetStatus() int32 {
	if r == nil {
		return 0
	}
	return r.Status
}

type ListSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type ExportSettlementsRequest struct {
	MerchantId uint64
	From       string
	To         string
}

func (r *ExportSettlementsRequest) GetMerchantId() uint64 {
	if r == nil {
		return 0
	}
	return r.MerchantId
}

func (r *ExportSettlementsRequest) GetFrom() string {
	if r == nil {
		return ""
	}
	return r.From
}

func (r *ExportSettlementsRequest) GetTo() string {
	if r == nil {
		return ""
	}
	return r.To
}

type PayoutCallbackRequest struct {
	SettlementId  uint64 `json:"settlement_id"`
	Status        string `json:"status"`
	TransactionId string `json:"transaction_id"`
}

func (r *PayoutCallbackRequest) GetSettlementId() uint64 {
	if r == nil {
		return 0
	}
	return r.SettlementId
}

func (r *PayoutCallbackRequest) GetStatus() string {
	if r == nil {
		return ""
	}
	return r.Status
}

func (r *PayoutCallbackRequest) GetTransactionId() string {
	if r == nil {
		return ""
	}
	return r.TransactionId
}

type MessageResponse struct {
	Message    string      `json:"message"`
	Settlement *Settlement `json:"settlement,omitempty"`
}

func (r *MessageResponse) GetMessage() string {
	if r == nil {
		return ""
	}
	return r.Message
}
