package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"docgentor-be/internal/dto"
	"docgentor-be/internal/entity"
	"docgentor-be/internal/event"
	"docgentor-be/internal/pkg/logger"
	"docgentor-be/internal/pkg/metrics"
	"docgentor-be/internal/repository/specification"
	"docgentor-be/internal/repository/unitofwork"

	"github.com/go-playground/validator/v10"
)

// errInvalidSettings marks a stored record that fails the schema. Lookup
// wraps it with ErrServiceUnavailable.
var errInvalidSettings = errors.New("invalid settings record")

// FreemiumCodeLifetime is how long a code stays redeemable after an admin
// update.
const FreemiumCodeLifetime = 7 * 24 * time.Hour

type ISettingsService interface {
	// GetSettings never fails: store outages and invalid records degrade to
	// defaults.
	GetSettings(ctx context.Context) *entity.AppSettings
	// Lookup is the strict read for callers that must not act on defaults.
	// A missing store or an invalid record both yield ErrServiceUnavailable.
	Lookup(ctx context.Context) (*entity.AppSettings, error)
	UpdateSettings(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.UpdateSettingsResponse, error)
}

// settingsSchema holds the bounds a stored record must satisfy.
type settingsSchema struct {
	FreemiumCode string `validate:"len=6,numeric"`
	MonthlyPrice int    `validate:"min=10,max=100"`
	YearlyPrice  int    `validate:"min=99,max=500"`
}

type settingsService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  event.Publisher
	logger     logger.ILogger
	validate   *validator.Validate
	timeout    time.Duration
	now        func() time.Time
}

func NewSettingsService(
	uowFactory unitofwork.RepositoryFactory,
	publisher event.Publisher,
	logger logger.ILogger,
	timeout time.Duration,
) ISettingsService {
	return &settingsService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
		validate:   validator.New(),
		timeout:    timeout,
		now:        time.Now,
	}
}

func (s *settingsService) GetSettings(ctx context.Context) *entity.AppSettings {
	settings, err := s.Lookup(ctx)
	if err != nil {
		if !errors.Is(err, errInvalidSettings) {
			metrics.SettingsDegradedTotal.WithLabelValues("unavailable").Inc()
		}
		s.logger.Warn("SETTINGS", "Settings unusable, serving defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return entity.DefaultSettings()
	}
	return settings
}

func (s *settingsService) Lookup(ctx context.Context) (*entity.AppSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	repo := s.uowFactory.NewUnitOfWork(ctx).SettingsRepository()

	current, err := repo.FindOne(ctx, specification.BySettingsId{Id: entity.SettingsId})
	if err != nil {
		return nil, storeError(err)
	}

	if current == nil {
		defaults := entity.DefaultSettings()
		defaults.UpdatedAt = s.now()
		created, err := repo.CreateIfAbsent(ctx, defaults)
		if err != nil {
			return nil, storeError(err)
		}
		if created {
			s.logger.Info("SETTINGS", "Settings record created with defaults", nil)
			current = defaults
		} else {
			// Another request created it first.
			current, err = repo.FindOne(ctx, specification.BySettingsId{Id: entity.SettingsId})
			if err != nil {
				return nil, storeError(err)
			}
			if current == nil {
				return nil, fmt.Errorf("%w: settings record vanished after create", ErrServiceUnavailable)
			}
		}
	}

	if err := s.validate.Struct(settingsSchema{
		FreemiumCode: current.FreemiumCode,
		MonthlyPrice: current.MonthlyPrice,
		YearlyPrice:  current.YearlyPrice,
	}); err != nil {
		metrics.SettingsDegradedTotal.WithLabelValues("invalid").Inc()
		s.logger.Warn("SETTINGS", "Stored settings failed validation", map[string]interface{}{
			"error":   err.Error(),
			"version": current.Version,
		})
		return nil, fmt.Errorf("%w: %w: %v", ErrServiceUnavailable, errInvalidSettings, err)
	}

	return current, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.UpdateSettingsResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	now := s.now()
	expiry := now.Add(FreemiumCodeLifetime)
	settings := &entity.AppSettings{
		Id:                 entity.SettingsId,
		FreemiumCode:       req.FreemiumCode,
		FreemiumCodeExpiry: &expiry,
		MonthlyPrice:       req.MonthlyPrice,
		YearlyPrice:        req.YearlyPrice,
		UpdatedBy:          req.ActorId,
		UpdatedAt:          now,
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.uowFactory.NewUnitOfWork(storeCtx).SettingsRepository().Save(storeCtx, settings); err != nil {
		s.logger.Error("SETTINGS", "Failed to update settings", map[string]interface{}{
			"actor_id": req.ActorId,
			"error":    err.Error(),
		})
		return nil, storeError(err)
	}

	s.logger.Info("SETTINGS", "Settings updated", map[string]interface{}{
		"actor_id":             req.ActorId,
		"monthly_price":        settings.MonthlyPrice,
		"yearly_price":         settings.YearlyPrice,
		"freemium_code_expiry": expiry,
		"version":              settings.Version,
	})
	s.publisher.PublishSettingsUpdated(ctx, req.ActorId, settings)

	return &dto.UpdateSettingsResponse{
		Success: true,
		Message: "App settings updated successfully.",
	}, nil
}

// storeError maps a failed store call to ErrServiceUnavailable, keeping
// the cause for server-side logs.
func storeError(err error) error {
	if errors.Is(err, ErrServiceUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
}

func ToSettingsResponse(s *entity.AppSettings) *dto.SettingsResponse {
	res := &dto.SettingsResponse{
		FreemiumCode: s.FreemiumCode,
		MonthlyPrice: s.MonthlyPrice,
		YearlyPrice:  s.YearlyPrice,
	}
	if s.FreemiumCodeExpiry != nil {
		ms := s.FreemiumCodeExpiry.UnixMilli()
		res.FreemiumCodeExpiry = &ms
	}
	return res
}
