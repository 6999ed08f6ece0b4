package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentRedemption struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderId    string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	PaymentId  string    `gorm:"type:varchar(64);not null"`
	IdentityId string    `gorm:"type:varchar(255);not null;index"`
	Plan       string    `gorm:"type:varchar(20);not null"`
	RedeemedAt time.Time `gorm:"not null"`
}

func (PaymentRedemption) TableName() string {
	return "payment_redemptions"
}
