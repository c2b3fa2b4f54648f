package settings

import "time"

// Storage keys for the key/value settings table.
const (
	KeyTimezone           = "timezone"
	KeyCompanyName        = "company_name"
	KeyLateThreshold      = "late_threshold"
	KeyWorkStartTime      = "work_start_time"
	KeyWorkEndTime        = "work_end_time"
	KeyBreakStartTime     = "break_start_time"
	KeyBreakEndTime       = "break_end_time"
	KeyAllowLateCheckin   = "allow_late_checkin"
	KeyMaxLateMinutes     = "max_late_minutes"
	KeyAllowEarlyCheckout = "allow_early_checkout"
	KeyAllowEarlyBreakout = "allow_early_breakout"
)

// Settings is a point-in-time snapshot of the admin-tunable attendance
// rules. Classification reads a fresh snapshot per scan, so edits apply
// to the next scan without a restart.
type Settings struct {
	Timezone    string
	CompanyName string

	LateThresholdMinutes int

	WorkStart  string
	WorkEnd    string
	BreakStart string
	BreakEnd   string

	AllowLateCheckin   bool
	MaxLateMinutes     int
	AllowEarlyCheckout bool
	AllowEarlyBreakout bool
}

// Defaults returns the settings used when the store is empty or a
// stored value fails to parse.
func Defaults() Settings {
	return Settings{
		Timezone:             "Asia/Jakarta",
		CompanyName:          "Presensia",
		LateThresholdMinutes: 15,
		WorkStart:            "07:00",
		WorkEnd:              "15:00",
		BreakStart:           "11:00",
		BreakEnd:             "12:00",
		AllowLateCheckin:     true,
		MaxLateMinutes:       60,
		AllowEarlyCheckout:   false,
		AllowEarlyBreakout:   true,
	}
}

// Location resolves the configured timezone, falling back to UTC when
// the name is unknown rather than failing a scan.
func (s Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
