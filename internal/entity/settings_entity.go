package entity

import "time"

const SettingsId = "main"

// AppSettings is the single global settings record. Version 0 means the row
// has never been written.
type AppSettings struct {
	Id                 string
	FreemiumCode       string
	FreemiumCodeExpiry *time.Time
	MonthlyPrice       int
	YearlyPrice        int
	Version            int
	UpdatedBy          string
	UpdatedAt          time.Time
}

// DefaultSettings is served whenever no valid record is available.
func DefaultSettings() *AppSettings {
	return &AppSettings{
		Id:           SettingsId,
		FreemiumCode: "239028",
		MonthlyPrice: 29,
		YearlyPrice:  199,
	}
}
