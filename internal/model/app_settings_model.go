package model

import "time"

type AppSettings struct {
	Id                 string     `gorm:"type:varchar(32);primaryKey"`
	FreemiumCode       string     `gorm:"type:varchar(6);not null"`
	FreemiumCodeExpiry *time.Time `gorm:"index"`
	MonthlyPrice       int        `gorm:"not null"`
	YearlyPrice        int        `gorm:"not null"`
	Version            int        `gorm:"not null;default:0"`
	UpdatedBy          string     `gorm:"type:varchar(255)"`
	UpdatedAt          time.Time
}

func (AppSettings) TableName() string {
	return "app_settings"
}
