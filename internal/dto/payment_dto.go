package dto

type CreateOrderRequest struct {
	Plan string `json:"plan" validate:"required"`
}

type OrderResponse struct {
	Id        string            `json:"id"`
	Entity    string            `json:"entity,omitempty"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	Receipt   string            `json:"receipt"`
	Status    string            `json:"status,omitempty"`
	CreatedAt int64             `json:"created_at,omitempty"`
	Notes     map[string]string `json:"notes,omitempty"`
}

type VerifyPaymentRequest struct {
	OrderId   string `json:"orderId" validate:"required"`
	PaymentId string `json:"paymentId" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

type VerifyPaymentResponse struct {
	IsVerified bool `json:"isVerified"`
}
