package contract

import (
	"context"

	"docgentor-be/internal/entity"
	"docgentor-be/internal/repository/specification"
	"docgentor-be/pkg/entitlement"
)

type EntitlementRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Entitlement, error)
	Upsert(ctx context.Context, ent *entity.Entitlement) error
	Delete(ctx context.Context, identityId string) error
}

type PaymentRedemptionRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentRedemption, error)
	// Create returns ErrDuplicateRedemption when the order was already redeemed.
	Create(ctx context.Context, redemption *entity.PaymentRedemption) error
}

type EntitlementAuditRepository interface {
	Create(ctx context.Context, log *entity.EntitlementAuditLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EntitlementAuditLog, error)
}

// GuestEntitlementStore holds records for unauthenticated sessions. Entries
// vanish when the session ends; nothing here is durable.
type GuestEntitlementStore interface {
	Get(ctx context.Context, sessionId string) (entitlement.Record, bool, error)
	Save(ctx context.Context, sessionId string, rec entitlement.Record) error
	Delete(ctx context.Context, sessionId string) error
}
