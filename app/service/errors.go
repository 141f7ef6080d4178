package service

import "errors"

var (
	ErrPlanNotFound            = errors.New("plan not found")
	ErrMerchantNotFound        = errors.New("merchant not found")
	ErrSettlementNotFound      = errors.New("settlement not found")
	ErrSettlementAlreadyExists = errors.New("settlement already exists")
	ErrInvalidRequest          = errors.New("invalid request")
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrInvalidStatus           = errors.New("invalid status")
)
