package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type EntitlementAuditLog struct {
	Id         uuid.UUID         `gorm:"type:uuid;primaryKey"`
	EventType  string            `gorm:"type:varchar(64);not null;index"`
	IdentityId string            `gorm:"type:varchar(255);index"`
	Payload    datatypes.JSONMap `gorm:"not null"`
	OccurredAt time.Time         `gorm:"not null;index"`
}

func (EntitlementAuditLog) TableName() string {
	return "entitlement_audit_logs"
}
