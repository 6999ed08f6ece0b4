package specification

import "gorm.io/gorm"

// ByIdentityId filters entitlement-scoped rows by their owning identity.
type ByIdentityId struct {
	IdentityId string
}

func (s ByIdentityId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("identity_id = ?", s.IdentityId)
}

type ByOrderId struct {
	OrderId string
}

func (s ByOrderId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_id = ?", s.OrderId)
}

type ByEventType struct {
	EventType string
}

func (s ByEventType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("event_type = ?", s.EventType)
}

// BySettingsId selects the settings row; there is only ever one in use.
type BySettingsId struct {
	Id string
}

func (s BySettingsId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.Id)
}
