package settings

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/settings"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

type SettingsServiceImpl struct {
	settingsRepo settings.SettingsRepository
}

func NewSettingsService(settingsRepo settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{settingsRepo: settingsRepo}
}

// Snapshot reads the key/value store and materializes a typed view.
// Missing or malformed values fall back to defaults per key, so one
// corrupt row never blocks scans.
func (s *SettingsServiceImpl) Snapshot(ctx context.Context) (settings.Settings, error) {
	values, err := s.settingsRepo.GetAll(ctx)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	snap := settings.Defaults()

	if tz, ok := values[settings.KeyTimezone]; ok {
		if _, err := time.LoadLocation(tz); err == nil {
			snap.Timezone = tz
		}
	}
	if name, ok := values[settings.KeyCompanyName]; ok && !validator.IsEmpty(name) {
		snap.CompanyName = name
	}

	snap.LateThresholdMinutes = intValue(values, settings.KeyLateThreshold, snap.LateThresholdMinutes)
	snap.MaxLateMinutes = intValue(values, settings.KeyMaxLateMinutes, snap.MaxLateMinutes)

	snap.WorkStart = clockValue(values, settings.KeyWorkStartTime, snap.WorkStart)
	snap.WorkEnd = clockValue(values, settings.KeyWorkEndTime, snap.WorkEnd)
	snap.BreakStart = clockValue(values, settings.KeyBreakStartTime, snap.BreakStart)
	snap.BreakEnd = clockValue(values, settings.KeyBreakEndTime, snap.BreakEnd)

	snap.AllowLateCheckin = boolValue(values, settings.KeyAllowLateCheckin, snap.AllowLateCheckin)
	snap.AllowEarlyCheckout = boolValue(values, settings.KeyAllowEarlyCheckout, snap.AllowEarlyCheckout)
	snap.AllowEarlyBreakout = boolValue(values, settings.KeyAllowEarlyBreakout, snap.AllowEarlyBreakout)

	return snap, nil
}

func (s *SettingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.Settings, error) {
	if err := req.Validate(); err != nil {
		return settings.Settings{}, err
	}

	values := make(map[string]string)
	putString(values, settings.KeyTimezone, req.Timezone)
	putString(values, settings.KeyCompanyName, req.CompanyName)
	putString(values, settings.KeyWorkStartTime, req.WorkStart)
	putString(values, settings.KeyWorkEndTime, req.WorkEnd)
	putString(values, settings.KeyBreakStartTime, req.BreakStart)
	putString(values, settings.KeyBreakEndTime, req.BreakEnd)
	putInt(values, settings.KeyLateThreshold, req.LateThresholdMinutes)
	putInt(values, settings.KeyMaxLateMinutes, req.MaxLateMinutes)
	putBool(values, settings.KeyAllowLateCheckin, req.AllowLateCheckin)
	putBool(values, settings.KeyAllowEarlyCheckout, req.AllowEarlyCheckout)
	putBool(values, settings.KeyAllowEarlyBreakout, req.AllowEarlyBreakout)

	if len(values) > 0 {
		if err := s.settingsRepo.UpsertAll(ctx, values); err != nil {
			return settings.Settings{}, fmt.Errorf("failed to save settings: %w", err)
		}
	}

	return s.Snapshot(ctx)
}

func intValue(values map[string]string, key string, fallback int) int {
	raw, ok := values[key]
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func boolValue(values map[string]string, key string, fallback bool) bool {
	raw, ok := values[key]
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return b
}

func clockValue(values map[string]string, key, fallback string) string {
	raw, ok := values[key]
	if !ok || !validator.IsValidClockTime(raw) {
		return fallback
	}
	return raw
}

func putString(values map[string]string, key string, v *string) {
	if v != nil {
		values[key] = *v
	}
}

func putInt(values map[string]string, key string, v *int) {
	if v != nil {
		values[key] = strconv.Itoa(*v)
	}
}

func putBool(values map[string]string, key string, v *bool) {
	if v != nil {
		values[key] = strconv.FormatBool(*v)
	}
}
