package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentRedemption records that a processor order has already been turned
// into an entitlement.
type PaymentRedemption struct {
	Id         uuid.UUID
	OrderId    string
	PaymentId  string
	IdentityId string
	Plan       string
	RedeemedAt time.Time
}
