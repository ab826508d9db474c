package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweave/backend/internal/domain"
	"github.com/tripweave/backend/internal/repo"
	"github.com/tripweave/backend/internal/service"
)

// mockSettingsRepo is a hand-written test double for repo.SettingsRepo.
type mockSettingsRepo struct {
	getTheme func(ctx context.Context, deviceID uuid.UUID) (string, error)
	putTheme func(ctx context.Context, deviceID uuid.UUID, theme string) error
}

func (m *mockSettingsRepo) GetTheme(ctx context.Context, deviceID uuid.UUID) (string, error) {
	return m.getTheme(ctx, deviceID)
}

func (m *mockSettingsRepo) PutTheme(ctx context.Context, deviceID uuid.UUID, theme string) error {
	return m.putTheme(ctx, deviceID, theme)
}

var _ repo.SettingsRepo = (*mockSettingsRepo)(nil)

func TestTheme(t *testing.T) {
	s := service.NewSettingsService(&mockSettingsRepo{
		getTheme: func(context.Context, uuid.UUID) (string, error) { return "dark", nil },
	})

	got, err := s.Theme(context.Background(), device)

	require.NoError(t, err)
	assert.Equal(t, "dark", got)
}

func TestTheme_DefaultsWhenUnset(t *testing.T) {
	s := service.NewSettingsService(&mockSettingsRepo{
		getTheme: func(context.Context, uuid.UUID) (string, error) { return "", domain.ErrNotFound },
	})

	got, err := s.Theme(context.Background(), device)

	require.NoError(t, err, "a device with no stored preference is not an error")
	assert.Equal(t, service.DefaultTheme, got)
}

func TestTheme_RepoErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	s := service.NewSettingsService(&mockSettingsRepo{
		getTheme: func(context.Context, uuid.UUID) (string, error) { return "", boom },
	})

	_, err := s.Theme(context.Background(), device)

	assert.ErrorIs(t, err, boom)
}

func TestSetTheme(t *testing.T) {
	var stored string
	s := service.NewSettingsService(&mockSettingsRepo{
		putTheme: func(_ context.Context, _ uuid.UUID, theme string) error {
			stored = theme
			return nil
		},
	})

	require.NoError(t, s.SetTheme(context.Background(), device, "light"))
	assert.Equal(t, "light", stored)
}

func TestSetTheme_RejectsUnknownValues(t *testing.T) {
	s := service.NewSettingsService(&mockSettingsRepo{
		putTheme: func(context.Context, uuid.UUID, string) error {
			t.Fatal("PutTheme must not be called for invalid input")
			return nil
		},
	})

	for _, theme := range []string{"", "Dark", "solarized"} {
		err := s.SetTheme(context.Background(), device, theme)
		assert.ErrorIs(t, err, domain.ErrValidation, "theme %q", theme)
	}
}
