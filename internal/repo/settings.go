package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tripweave/backend/internal/domain"
)

// SettingsRepo persists per-device settings. Today that is a single value:
// the theme preference.
type SettingsRepo interface {
	// GetTheme returns the device's stored theme preference.
	// Returns domain.ErrNotFound when the device has never set one.
	GetTheme(ctx context.Context, deviceID uuid.UUID) (string, error)

	// PutTheme stores the device's theme preference, replacing any prior value.
	PutTheme(ctx context.Context, deviceID uuid.UUID, theme string) error
}

// pgSettingsRepo is the Postgres implementation of SettingsRepo.
type pgSettingsRepo struct {
	db db
}

// NewSettingsRepo constructs a SettingsRepo backed by the provided connection.
func NewSettingsRepo(db db) SettingsRepo {
	return &pgSettingsRepo{db: db}
}

func (r *pgSettingsRepo) GetTheme(ctx context.Context, deviceID uuid.UUID) (string, error) {
	const q = `SELECT theme FROM device_settings WHERE device_id = @device_id`

	var theme string
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"device_id": deviceID}).Scan(&theme)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("repo.SettingsRepo.GetTheme: %w", err)
	}
	return theme, nil
}

func (r *pgSettingsRepo) PutTheme(ctx context.Context, deviceID uuid.UUID, theme string) error {
	const q = `
		INSERT INTO device_settings (device_id, theme)
		VALUES (@device_id, @theme)
		ON CONFLICT (device_id)
		DO UPDATE SET theme = EXCLUDED.theme, updated_at = now()`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"device_id": deviceID,
		"theme":     theme,
	})
	if err != nil {
		return fmt.Errorf("repo.SettingsRepo.PutTheme: %w", err)
	}
	return nil
}
