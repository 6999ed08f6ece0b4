package dto

import "time"

type EntitlementResponse struct {
	Plan       string     `json:"plan"`
	Status     string     `json:"status"`
	IsTrial    bool       `json:"isTrial"`
	ExpiryDate *time.Time `json:"expiryDate"`
	Tier       string     `json:"tier"`
	Tools      []string   `json:"tools"`
}

type AccessResponse struct {
	Tool    string `json:"tool"`
	Allowed bool   `json:"allowed"`
	Tier    string `json:"tier"`
}

type ConfirmPaymentRequest struct {
	OrderId   string `json:"orderId" validate:"required"`
	PaymentId string `json:"paymentId" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

type RedeemCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

// RedeemCodeResponse reports a rejected code as Activated=false, not as an
// error.
type RedeemCodeResponse struct {
	Activated   bool                 `json:"activated"`
	Message     string               `json:"message"`
	Entitlement *EntitlementResponse `json:"entitlement,omitempty"`
}

type ConfirmPaymentResponse struct {
	IsVerified  bool                 `json:"isVerified"`
	Entitlement *EntitlementResponse `json:"entitlement,omitempty"`
}
