package dto

import "time"

type AuditLogQuery struct {
	IdentityId string `query:"identityId"`
	EventType  string `query:"eventType" validate:"omitempty,oneof=ENTITLEMENT_CHANGED PAYMENT_CONFIRMED SETTINGS_UPDATED"`
	Limit      int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset     int    `query:"offset" validate:"omitempty,min=0"`
}

type AuditLogResponse struct {
	Id         string                 `json:"id"`
	EventType  string                 `json:"eventType"`
	IdentityId string                 `json:"identityId"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurredAt"`
}
