package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/entity"
)

type SettingsRepository interface {
	// GetByUserID returns nil, nil when the user has no stored settings.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error)
	Create(ctx context.Context, settings *entity.UserSettings) error
	Update(ctx context.Context, settings *entity.UserSettings) error
}
