// Package scheduleclock provides minutes-of-day arithmetic for work
// schedules stored as "HH:MM" strings. All operations are pure and
// normalize modulo one day, so overnight windows behave the same as
// daytime ones.
package scheduleclock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the modulus for all minutes-of-day arithmetic.
const MinutesPerDay = 24 * 60

var ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM or HH:MM:SS")

// MinutesSinceMidnight parses a clock string in "HH:MM" or "HH:MM:SS"
// form and returns the minute offset from midnight. Seconds are
// accepted for compatibility with values copied out of databases but
// are discarded.
func MinutesSinceMidnight(t string) (int, error) {
	parts := strings.Split(t, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, ErrInvalidTimeFormat
	}

	for _, p := range parts {
		if len(p) != 2 {
			return 0, ErrInvalidTimeFormat
		}
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}
	if len(parts) == 3 {
		if _, err := strconv.Atoi(parts[2]); err != nil {
			return 0, ErrInvalidTimeFormat
		}
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, ErrInvalidTimeFormat
	}

	return hours*60 + minutes, nil
}

// IsWithin reports whether now falls inside [start, end). All three
// arguments are minute offsets from midnight.
func IsWithin(now, start, end int) bool {
	return now >= start && now < end
}

// AddMinutes shifts a clock string by n minutes, wrapping around
// midnight in both directions.
func AddMinutes(t string, n int) (string, error) {
	base, err := MinutesSinceMidnight(t)
	if err != nil {
		return "", err
	}

	total := (base + n) % MinutesPerDay
	if total < 0 {
		total += MinutesPerDay
	}

	return fmt.Sprintf("%02d:%02d", total/60, total%60), nil
}

// SpanMinutes returns the length of the window from start to end in
// minutes, normalized modulo one day. An end before start means the
// window crosses midnight.
func SpanMinutes(start, end int) int {
	span := (end - start) % MinutesPerDay
	if span < 0 {
		span += MinutesPerDay
	}
	return span
}
