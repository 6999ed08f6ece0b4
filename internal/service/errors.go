package service

import "errors"

var (
	// ErrPaymentNotConfigured means processor credentials are missing.
	ErrPaymentNotConfigured = errors.New("payment processor is not configured")
	ErrValidation           = errors.New("validation failed")
	ErrInvalidPlan          = errors.New("invalid plan")
	ErrForbidden            = errors.New("forbidden")
	ErrLoginRequired        = errors.New("login required")
	// ErrUpstream means the payment processor answered with an error.
	ErrUpstream = errors.New("upstream service error")
	// ErrServiceUnavailable means a store or the processor did not answer in time.
	ErrServiceUnavailable     = errors.New("service temporarily unavailable")
	ErrPaymentAlreadyRedeemed = errors.New("payment already redeemed")
)
