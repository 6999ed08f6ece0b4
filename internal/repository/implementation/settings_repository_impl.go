package implementation

import (
	"context"
	"errors"
	"time"

	"docgentor-be/internal/entity"
	"docgentor-be/internal/mapper"
	"docgentor-be/internal/model"
	"docgentor-be/internal/repository/contract"
	"docgentor-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SettingsMapper
}

func NewSettingsRepository(db *gorm.DB) contract.SettingsRepository {
	return &SettingsRepositoryImpl{
		db:     db,
		mapper: mapper.NewSettingsMapper(),
	}
}

func (r *SettingsRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AppSettings, error) {
	var m model.AppSettings
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SettingsRepositoryImpl) CreateIfAbsent(ctx context.Context, settings *entity.AppSettings) (bool, error) {
	m := r.mapper.ToModel(settings)
	m.Version = 1
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = time.Now()
	}

	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	*settings = *r.mapper.ToEntity(m)
	return true, nil
}

// Save writes the whole record, inserting it when no row exists yet. A
// concurrent first-read insert is absorbed by the conflict clause.
func (r *SettingsRepositoryImpl) Save(ctx context.Context, settings *entity.AppSettings) error {
	m := r.mapper.ToModel(settings)
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = time.Now()
	}
	m.Version = 1

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"freemium_code":        m.FreemiumCode,
			"freemium_code_expiry": m.FreemiumCodeExpiry,
			"monthly_price":        m.MonthlyPrice,
			"yearly_price":         m.YearlyPrice,
			"updated_by":           m.UpdatedBy,
			"updated_at":           m.UpdatedAt,
			"version":              gorm.Expr("app_settings.version + 1"),
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}

	saved, err := r.FindOne(ctx, specification.BySettingsId{Id: m.Id})
	if err != nil {
		return err
	}
	if saved != nil {
		*settings = *saved
	}
	return nil
}
