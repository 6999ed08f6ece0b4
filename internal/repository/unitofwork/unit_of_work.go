package unitofwork

import (
	"context"

	"docgentor-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SettingsRepository() contract.SettingsRepository
	EntitlementRepository() contract.EntitlementRepository
	PaymentRedemptionRepository() contract.PaymentRedemptionRepository
	EntitlementAuditRepository() contract.EntitlementAuditRepository
}
