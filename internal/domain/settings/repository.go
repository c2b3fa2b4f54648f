package settings

import "context"

// SettingsRepository persists settings as raw key/value pairs. Parsing
// and default fallback happen in the service layer so a corrupt value
// never blocks a scan.
type SettingsRepository interface {
	GetAll(ctx context.Context) (map[string]string, error)
	UpsertAll(ctx context.Context, values map[string]string) error
}

// SettingsService exposes typed snapshots over the key/value store.
type SettingsService interface {
	// Snapshot reads a fresh Settings view; missing or malformed keys
	// fall back to Defaults().
	Snapshot(ctx context.Context) (Settings, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (Settings, error)
}
