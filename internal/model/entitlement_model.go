package model

import "time"

type Entitlement struct {
	IdentityId string     `gorm:"type:varchar(255);primaryKey"`
	Plan       string     `gorm:"type:varchar(20);not null;default:'none'"`
	Status     string     `gorm:"type:varchar(20);not null;default:'inactive';index"`
	IsTrial    bool       `gorm:"not null;default:false"`
	ExpiryDate *time.Time `gorm:"index"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`
}

func (Entitlement) TableName() string {
	return "entitlements"
}
