package sqlite

import (
	"context"
	"fmt"

	"github.com/presensia/attendance-backend-go/internal/domain/settings"
)

type settingsRepository struct {
	store *Store
}

func NewSettingsRepository(store *Store) settings.SettingsRepository {
	return &settingsRepository{store: store}
}

// GetAll implements settings.SettingsRepository.
func (r *settingsRepository) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := r.store.db.QueryContext(ctx, `SELECT key, value FROM app_settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settings: %w", err)
	}
	return values, nil
}

// UpsertAll implements settings.SettingsRepository.
func (r *settingsRepository) UpsertAll(ctx context.Context, values map[string]string) error {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin settings transaction: %w", err)
	}
	defer tx.Rollback()

	for key, value := range values {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO app_settings (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, value)
		if err != nil {
			return fmt.Errorf("failed to upsert setting %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}
	return nil
}
