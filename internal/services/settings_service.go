package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "debtfreepro/internal/errors"
	"debtfreepro/internal/models"
)

// settingsService handles the app settings singleton.
type settingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(db *gorm.DB) SettingsServicer {
	return &settingsService{db: db}
}

// GetSettings returns the settings row, creating the defaults on first
// read.
func (s *settingsService) GetSettings() (*models.Settings, error) {
	var settings models.Settings
	err := s.db.First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	settings = models.Settings{
		ExtraPayment: 0,
		Strategy:     models.StrategyTypeSnowball,
		Currency:     "USD",
	}
	if err := s.db.Create(&settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &settings, nil
}

// UpdateSettings applies a partial update to the settings singleton.
func (s *settingsService) UpdateSettings(update SettingsUpdate) (*models.Settings, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.ExtraPayment != nil {
		if *update.ExtraPayment < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Extra payment must not be negative")
		}
		updates["extra_payment"] = *update.ExtraPayment
	}
	if update.Strategy != nil {
		if !models.ValidStrategyType(*update.Strategy) {
			return nil, apperrors.WithMessagef(apperrors.ErrInvalidInput, "Unknown strategy %q", *update.Strategy)
		}
		updates["strategy"] = *update.Strategy
	}
	if update.Currency != nil {
		updates["currency"] = *update.Currency
	}

	if len(updates) == 0 {
		return settings, nil
	}
	if err := s.db.Model(settings).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return settings, nil
}
