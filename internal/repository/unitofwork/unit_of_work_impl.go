package unitofwork

import (
	"context"
	"fmt"

	"docgentor-be/internal/repository/contract"
	"docgentor-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // non-nil between Begin and Commit/Rollback
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) SettingsRepository() contract.SettingsRepository {
	return implementation.NewSettingsRepository(u.getDB())
}

func (u *UnitOfWorkImpl) EntitlementRepository() contract.EntitlementRepository {
	return implementation.NewEntitlementRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PaymentRedemptionRepository() contract.PaymentRedemptionRepository {
	return implementation.NewPaymentRedemptionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) EntitlementAuditRepository() contract.EntitlementAuditRepository {
	return implementation.NewEntitlementAuditRepository(u.getDB())
}
