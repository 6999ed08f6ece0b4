package implementation

import (
	"context"
	"errors"
	"strings"

	"docgentor-be/internal/entity"
	"docgentor-be/internal/mapper"
	"docgentor-be/internal/model"
	"docgentor-be/internal/repository/contract"
	"docgentor-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

type EntitlementRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EntitlementMapper
}

func NewEntitlementRepository(db *gorm.DB) contract.EntitlementRepository {
	return &EntitlementRepositoryImpl{
		db:     db,
		mapper: mapper.NewEntitlementMapper(),
	}
}

func (r *EntitlementRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Entitlement, error) {
	var m model.Entitlement
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *EntitlementRepositoryImpl) Upsert(ctx context.Context, ent *entity.Entitlement) error {
	m := r.mapper.ToModel(ent)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "identity_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"plan", "status", "is_trial", "expiry_date", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*ent = *r.mapper.ToEntity(m)
	return nil
}

func (r *EntitlementRepositoryImpl) Delete(ctx context.Context, identityId string) error {
	return r.db.WithContext(ctx).Where("identity_id = ?", identityId).Delete(&model.Entitlement{}).Error
}

type PaymentRedemptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EntitlementMapper
}

func NewPaymentRedemptionRepository(db *gorm.DB) contract.PaymentRedemptionRepository {
	return &PaymentRedemptionRepositoryImpl{
		db:     db,
		mapper: mapper.NewEntitlementMapper(),
	}
}

func (r *PaymentRedemptionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentRedemption, error) {
	var m model.PaymentRedemption
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.RedemptionToEntity(&m), nil
}

func (r *PaymentRedemptionRepositoryImpl) Create(ctx context.Context, redemption *entity.PaymentRedemption) error {
	m := r.mapper.RedemptionToModel(redemption)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return contract.ErrDuplicateRedemption
		}
		return err
	}
	*redemption = *r.mapper.RedemptionToEntity(m)
	return nil
}

// isUniqueViolation covers drivers that do not translate errors.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

type EntitlementAuditRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EntitlementMapper
}

func NewEntitlementAuditRepository(db *gorm.DB) contract.EntitlementAuditRepository {
	return &EntitlementAuditRepositoryImpl{
		db:     db,
		mapper: mapper.NewEntitlementMapper(),
	}
}

func (r *EntitlementAuditRepositoryImpl) Create(ctx context.Context, log *entity.EntitlementAuditLog) error {
	m := r.mapper.AuditLogToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.AuditLogToEntity(m)
	return nil
}

func (r *EntitlementAuditRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EntitlementAuditLog, error) {
	var models []*model.EntitlementAuditLog
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.EntitlementAuditLog, len(models))
	for i, m := range models {
		entities[i] = r.mapper.AuditLogToEntity(m)
	}
	return entities, nil
}
