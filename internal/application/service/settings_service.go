package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/config"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/domain/repository"
	"github.com/sangkips/restopos-api/internal/metrics"
	"github.com/sangkips/restopos-api/pkg/tzdate"
	"go.uber.org/zap"
)

// TimezoneResolver picks the timezone used to show and group a user's data.
type TimezoneResolver interface {
	ResolveTimezone(ctx context.Context, userID uuid.UUID) (*tzdate.Converter, error)
}

type SettingsService struct {
	settingsRepo repository.SettingsRepository
	fallback     *tzdate.Converter
	currency     string
	log          *zap.Logger
	metrics      *metrics.POSMetrics
}

// NewSettingsService fails when the configured default timezone is not a
// valid IANA zone.
func NewSettingsService(
	settingsRepo repository.SettingsRepository,
	locale config.LocaleConfig,
	log *zap.Logger,
	m *metrics.POSMetrics,
) (*SettingsService, error) {
	fallback, err := tzdate.Load(locale.DefaultTimezone)
	if err != nil {
		return nil, fmt.Errorf("default timezone: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SettingsService{
		settingsRepo: settingsRepo,
		fallback:     fallback,
		currency:     locale.Currency,
		log:          log,
		metrics:      m,
	}, nil
}

func (s *SettingsService) DefaultTimezone() *tzdate.Converter {
	return s.fallback
}

// GetSettings returns the user's settings, creating defaults on first use.
func (s *SettingsService) GetSettings(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		settings = &entity.UserSettings{
			UserID:     userID,
			Language:   "en",
			Timezone:   s.fallback.Name(),
			Currency:   s.currency,
			DateFormat: "DD/MM/YYYY",
			Theme:      "light",
		}
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

type UpdateSettingsInput struct {
	UserID           uuid.UUID
	Language         string
	Timezone         string
	Currency         string
	DateFormat       string
	AutoPrintReceipt bool
	AutoPrintKOT     bool
	Theme            string
	CompactMode      bool
}

// UpdateSettings stores the user's settings. An unknown timezone is
// rejected with a *tzdate.TimezoneError and nothing is saved.
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.UserSettings, error) {
	tz, err := tzdate.Load(input.Timezone)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.UserSettings{UserID: input.UserID}
	}

	settings.Language = input.Language
	settings.Timezone = tz.Name()
	settings.Currency = input.Currency
	settings.DateFormat = input.DateFormat
	settings.AutoPrintReceipt = input.AutoPrintReceipt
	settings.AutoPrintKOT = input.AutoPrintKOT
	settings.Theme = input.Theme
	settings.CompactMode = input.CompactMode

	if settings.ID == uuid.Nil {
		err = s.settingsRepo.Create(ctx, settings)
	} else {
		err = s.settingsRepo.Update(ctx, settings)
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// ResolveTimezone returns the user's zone, or the configured default when
// the user is anonymous or has no preference. A settings store failure or a
// stored zone that no longer loads also falls back, with a warning.
func (s *SettingsService) ResolveTimezone(ctx context.Context, userID uuid.UUID) (*tzdate.Converter, error) {
	if userID == uuid.Nil {
		return s.fallback, nil
	}

	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.log.Warn("settings store unavailable, using default timezone",
			zap.String("user_id", userID.String()),
			zap.String("fallback", s.fallback.Name()),
			zap.Error(err),
		)
		s.metrics.TimezoneFallback()
		return s.fallback, nil
	}
	if settings == nil || settings.Timezone == "" {
		return s.fallback, nil
	}

	tz, err := tzdate.Load(settings.Timezone)
	if err != nil {
		s.log.Warn("stored timezone rejected, using default",
			zap.String("user_id", userID.String()),
			zap.String("timezone", settings.Timezone),
			zap.String("fallback", s.fallback.Name()),
			zap.Error(err),
		)
		s.metrics.TimezoneFallback()
		return s.fallback, nil
	}
	return tz, nil
}
