package entity

import (
	"time"

	"github.com/google/uuid"
)

type EntitlementAuditLog struct {
	Id         uuid.UUID
	EventType  string
	IdentityId string
	Payload    map[string]interface{}
	OccurredAt time.Time
}
