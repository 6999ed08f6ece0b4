package contract

import (
	"context"

	"docgentor-be/internal/entity"
	"docgentor-be/internal/repository/specification"
)

type SettingsRepository interface {
	// FindOne returns nil, nil when the row does not exist.
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AppSettings, error)
	// CreateIfAbsent inserts the row only when none exists yet and reports
	// whether this call created it.
	CreateIfAbsent(ctx context.Context, settings *entity.AppSettings) (bool, error)
	// Save overwrites the whole row and bumps its version.
	Save(ctx context.Context, settings *entity.AppSettings) error
}
