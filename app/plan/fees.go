package plan

import "errors"

var ErrNegativeAmount = errors.New("order amount must be non-negative")

// GetTransactionFeePercent returns the plan's fee percent, or DefaultFeePercent when the
// plan is unknown.
func (r *Registry) GetTransactionFeePercent(planID string) int {
	p, ok := r.plans[planID]
	if !ok {
		return DefaultFeePercent
	}
	return p.TransactionFeePercent
}

// CalculateTransactionFee returns orderAmount * percent / 100 rounded half up to a whole
// currency unit. The result always lies in [0, orderAmount].
func (r *Registry) CalculateTransactionFee(orderAmount int64, planID string) (int64, error) {
	if orderAmount < 0 {
		return 0, ErrNegativeAmount
	}
	return feeFor(orderAmount, r.GetTransactionFeePercent(planID)), nil
}

// CalculateMerchantPayout returns what the merchant receives after the transaction fee.
func (r *Registry) CalculateMerchantPayout(orderAmount int64, planID string) (int64, error) {
	fee, err := r.CalculateTransactionFee(orderAmount, planID)
	if err != nil {
		return 0, err
	}
	return orderAmount - fee, nil
}

// feeFor splits the amount into hundreds and a remainder so that the multiplication
// cannot overflow for percent <= 100.
func feeFor(amount int64, percent int) int64 {
	pct := int64(percent)
	hundreds, rest := amount/100, amount%100
	return hundreds*pct + (rest*pct+50)/100
}

func GetTransactionFeePercent(planID string) int {
	return builtin.GetTransactionFeePercent(planID)
}

func CalculateTransactionFee(orderAmount int64, planID string) (int64, error) {
	return builtin.CalculateTransactionFee(orderAmount, planID)
}

func CalculateMerchantPayout(orderAmount int64, planID string) (int64, error) {
	return builtin.CalculateMerchantPayout(orderAmount, planID)
}
