package dto

type SettingsResponse struct {
	FreemiumCode       string `json:"freemiumCode"`
	FreemiumCodeExpiry *int64 `json:"freemiumCodeExpiry"` // ms since epoch
	MonthlyPrice       int    `json:"monthlyPrice"`
	YearlyPrice        int    `json:"yearlyPrice"`
}

type UpdateSettingsRequest struct {
	ActorId      string `json:"actorId" validate:"required"`
	FreemiumCode string `json:"freemiumCode" validate:"required,len=6,numeric"`
	MonthlyPrice int    `json:"monthlyPrice" validate:"min=10,max=100"`
	YearlyPrice  int    `json:"yearlyPrice" validate:"min=99,max=500"`
}

type UpdateSettingsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
