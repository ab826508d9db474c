package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tripweave/backend/internal/domain"
	"github.com/tripweave/backend/internal/repo"
)

// DefaultTheme is what a device gets before it ever toggles the theme.
const DefaultTheme = "system"

// validThemes is the closed set of accepted theme values.
var validThemes = map[string]bool{"light": true, "dark": true, "system": true}

// SettingsService implements business logic for per-device settings.
// Purely cosmetic state — kept out of the trip model entirely.
type SettingsService struct {
	repo repo.SettingsRepo
}

// NewSettingsService constructs a SettingsService backed by the provided repo.
func NewSettingsService(r repo.SettingsRepo) *SettingsService {
	return &SettingsService{repo: r}
}

// Theme returns the device's theme preference, defaulting to DefaultTheme
// when none has been stored.
func (s *SettingsService) Theme(ctx context.Context, deviceID uuid.UUID) (string, error) {
	theme, err := s.repo.GetTheme(ctx, deviceID)
	if errors.Is(err, domain.ErrNotFound) {
		return DefaultTheme, nil
	}
	if err != nil {
		return "", fmt.Errorf("service.SettingsService.Theme: %w", err)
	}
	return theme, nil
}

// SetTheme stores the device's theme preference.
// Returns ErrValidation for anything outside light|dark|system.
func (s *SettingsService) SetTheme(ctx context.Context, deviceID uuid.UUID, theme string) error {
	if !validThemes[theme] {
		return fmt.Errorf("service.SettingsService.SetTheme: %w: theme must be one of light, dark, system", domain.ErrValidation)
	}
	if err := s.repo.PutTheme(ctx, deviceID, theme); err != nil {
		return fmt.Errorf("service.SettingsService.SetTheme: %w", err)
	}
	return nil
}
