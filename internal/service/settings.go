package service

import (
	"errors"
	"fmt"

	"stride/internal/model"
	"stride/internal/repository"
)

var (
	ErrInvalidBarStyle = errors.New("invalid bar style")
)

// SettingsService manages the per-user UI configuration record. Reads fall
// back to the built-in defaults so a fresh account needs no setup row.
type SettingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) ByUser(userID string) (*model.Settings, error) {
	settings, err := s.repo.ByUser(userID)
	if errors.Is(err, repository.ErrSettingsNotFound) {
		return model.DefaultSettings(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// Update replaces the user's settings record. The bar style must be one of
// the known enum values; colors and font are free-form client strings.
func (s *SettingsService) Update(userID string, settings *model.Settings) (*model.Settings, error) {
	if !model.ValidBarStyle(settings.BarStyle) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBarStyle, settings.BarStyle)
	}

	settings.UserID = userID
	err := s.repo.Upsert(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	return settings, nil
}

// Reset restores the defaults and persists them.
func (s *SettingsService) Reset(userID string) (*model.Settings, error) {
	defaults := model.DefaultSettings(userID)
	err := s.repo.Upsert(defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to reset settings: %w", err)
	}
	return defaults, nil
}
