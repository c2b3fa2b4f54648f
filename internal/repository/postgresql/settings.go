package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/settings"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}

// GetAll implements settings.SettingsRepository.
func (r *settingsRepository) GetAll(ctx context.Context) (map[string]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT key, value FROM app_settings`)
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
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		for key, value := range values {
			_, err := tx.Exec(ctx,
				`INSERT INTO app_settings (key, value) VALUES ($1, $2)
				 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
				key, value)
			if err != nil {
				return fmt.Errorf("failed to upsert setting %s: %w", key, err)
			}
		}
		return nil
	})
}
