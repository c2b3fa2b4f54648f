package scheduleclock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutesSinceMidnight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "07:00", want: 420},
		{name: "with seconds", input: "07:30:15", want: 450},
		{name: "last minute", input: "23:59", want: 1439},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "12:60", wantErr: true},
		{name: "missing minutes", input: "12", wantErr: true},
		{name: "single digit hour", input: "7:00", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := MinutesSinceMidnight(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsWithin(t *testing.T) {
	t.Parallel()

	start, end := 420, 900 // 07:00 - 15:00

	assert.True(t, IsWithin(420, start, end), "start is inclusive")
	assert.True(t, IsWithin(899, start, end))
	assert.False(t, IsWithin(900, start, end), "end is exclusive")
	assert.False(t, IsWithin(419, start, end))
}

func TestAddMinutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{name: "simple add", input: "07:00", n: 15, want: "07:15"},
		{name: "wrap past midnight", input: "23:30", n: 45, want: "00:15"},
		{name: "negative wraps backwards", input: "00:10", n: -20, want: "23:50"},
		{name: "full day is identity", input: "09:00", n: 1440, want: "09:00"},
		{name: "zero", input: "15:00", n: 0, want: "15:00"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := AddMinutes(tt.input, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := AddMinutes("25:00", 10)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestSpanMinutes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 480, SpanMinutes(420, 900), "07:00 to 15:00")
	assert.Equal(t, 480, SpanMinutes(1320, 360), "22:00 to 06:00 crosses midnight")
	assert.Equal(t, 0, SpanMinutes(600, 600), "zero-length window")
	assert.Equal(t, 1439, SpanMinutes(1, 0))
}
