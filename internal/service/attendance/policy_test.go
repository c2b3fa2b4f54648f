package attendance

import (
	"testing"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minutes converts "HH:MM" test inputs without error plumbing.
func minutes(t *testing.T, clock string) int {
	t.Helper()
	h := (int(clock[0]-'0')*10 + int(clock[1]-'0')) * 60
	m := int(clock[3]-'0')*10 + int(clock[4]-'0')
	return h + m
}

func defaultRules() settings.Settings {
	return settings.Defaults() // 07:00-15:00, threshold 15, late allowed up to 60
}

func TestEvaluatePolicyCheckIn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		now        string
		rules      func(settings.Settings) settings.Settings
		flags      attendance.DayFlags
		wantStatus attendance.Status
		wantErr    error
	}{
		{
			name:       "on time before work start",
			now:        "06:55",
			wantStatus: attendance.StatusOnTime,
		},
		{
			name:       "on time within threshold",
			now:        "07:15",
			wantStatus: attendance.StatusOnTime,
		},
		{
			name:       "late past threshold",
			now:        "07:20",
			wantStatus: attendance.StatusLate,
		},
		{
			name:       "late at the max window edge",
			now:        "08:00",
			wantStatus: attendance.StatusLate,
		},
		{
			name:    "rejected past max late window",
			now:     "08:01",
			wantErr: attendance.ErrTooLateToCheckIn,
		},
		{
			name: "rejected past threshold when late check-in disallowed",
			now:  "07:20",
			rules: func(s settings.Settings) settings.Settings {
				s.AllowLateCheckin = false
				return s
			},
			wantErr: attendance.ErrTooLateToCheckIn,
		},
		{
			name:    "duplicate check-in",
			now:     "07:05",
			flags:   attendance.DayFlags{HasCheckIn: true},
			wantErr: attendance.ErrDuplicateEvent,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rules := defaultRules()
			if tt.rules != nil {
				rules = tt.rules(rules)
			}

			status, err := EvaluatePolicy(PolicyInput{
				Requested:        attendance.EventCheckIn,
				Flags:            tt.flags,
				NowMinutes:       minutes(t, tt.now),
				WorkStartMinutes: minutes(t, rules.WorkStart),
				WorkEndMinutes:   minutes(t, rules.WorkEnd),
				Rules:            rules,
			})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestEvaluatePolicyCheckOut(t *testing.T) {
	t.Parallel()

	t.Run("early check-out rejected by default", func(t *testing.T) {
		t.Parallel()

		rules := defaultRules()
		_, err := EvaluatePolicy(PolicyInput{
			Requested:        attendance.EventCheckOut,
			NowMinutes:       minutes(t, "14:00"),
			WorkStartMinutes: minutes(t, rules.WorkStart),
			WorkEndMinutes:   minutes(t, rules.WorkEnd),
			Rules:            rules,
		})
		assert.ErrorIs(t, err, attendance.ErrTooEarlyToCheckOut)
	})

	t.Run("early check-out allowed yields early departure", func(t *testing.T) {
		t.Parallel()

		rules := defaultRules()
		rules.AllowEarlyCheckout = true
		status, err := EvaluatePolicy(PolicyInput{
			Requested:        attendance.EventCheckOut,
			NowMinutes:       minutes(t, "14:00"),
			WorkStartMinutes: minutes(t, rules.WorkStart),
			WorkEndMinutes:   minutes(t, rules.WorkEnd),
			Rules:            rules,
		})
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusEarlyDeparture, status)
	})

	t.Run("check-out after end of shift is overtime", func(t *testing.T) {
		t.Parallel()

		rules := defaultRules()
		status, err := EvaluatePolicy(PolicyInput{
			Requested:        attendance.EventCheckOut,
			NowMinutes:       minutes(t, "16:00"),
			WorkStartMinutes: minutes(t, rules.WorkStart),
			WorkEndMinutes:   minutes(t, rules.WorkEnd),
			Rules:            rules,
		})
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusOvertime, status)
	})

	t.Run("duplicate check-out", func(t *testing.T) {
		t.Parallel()

		rules := defaultRules()
		_, err := EvaluatePolicy(PolicyInput{
			Requested:        attendance.EventCheckOut,
			Flags:            attendance.DayFlags{HasCheckOut: true},
			NowMinutes:       minutes(t, "16:00"),
			WorkStartMinutes: minutes(t, rules.WorkStart),
			WorkEndMinutes:   minutes(t, rules.WorkEnd),
			Rules:            rules,
		})
		assert.ErrorIs(t, err, attendance.ErrDuplicateEvent)
	})
}

func TestEvaluatePolicyBreaks(t *testing.T) {
	t.Parallel()

	rules := defaultRules()

	for _, eventType := range []attendance.EventType{attendance.EventBreakOut, attendance.EventBreakIn} {
		status, err := EvaluatePolicy(PolicyInput{
			Requested:        eventType,
			NowMinutes:       minutes(t, "11:05"),
			WorkStartMinutes: minutes(t, rules.WorkStart),
			WorkEndMinutes:   minutes(t, rules.WorkEnd),
			Rules:            rules,
		})
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusBreak, status)
	}

	_, err := EvaluatePolicy(PolicyInput{
		Requested:        attendance.EventBreakOut,
		Flags:            attendance.DayFlags{HasBreakOut: true},
		NowMinutes:       minutes(t, "11:05"),
		WorkStartMinutes: minutes(t, rules.WorkStart),
		WorkEndMinutes:   minutes(t, rules.WorkEnd),
		Rules:            rules,
	})
	assert.ErrorIs(t, err, attendance.ErrDuplicateEvent)
}
