package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

type Unit int

const (
	UnitMillis Unit = iota
	UnitSeconds
	UnitMinutes
	UnitISO8601
)

func (u Unit) String() string {
	switch u {
	case UnitSeconds:
		return "seconds"
	case UnitMinutes:
		return "minutes"
	case UnitISO8601:
		return "iso8601"
	default:
		return "millis"
	}
}

const (
	Day  = int64(24 * time.Hour / time.Millisecond)
	Week = 7 * Day
)

// IsAbsent reports a nil value or a blank string.
func IsAbsent(raw any) bool {
	if raw == nil {
		return true
	}
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	if p, ok := raw.(*string); ok {
		return p == nil || strings.TrimSpace(*p) == ""
	}
	return false
}

// ToMillis converts a timestamp to epoch milliseconds. An absent value
// yields referenceNow. A malformed value also yields referenceNow together
// with a non-nil error the caller may log.
func ToMillis(raw any, unit Unit, referenceNow time.Time) (int64, error) {
	fallback := referenceNow.UnixMilli()
	if IsAbsent(raw) {
		return fallback, nil
	}
	v, err := convert(raw, unit)
	if err != nil {
		return fallback, err
	}
	return max(v, 0), nil
}

// DurationMillis converts a duration to milliseconds, returning fallback
// for absent or malformed input. Negative results clamp to zero.
func DurationMillis(raw any, unit Unit, fallback int64) (int64, error) {
	if IsAbsent(raw) {
		return fallback, nil
	}
	if unit == UnitISO8601 {
		return fallback, fmt.Errorf("iso8601 is not a duration unit")
	}
	v, err := convert(raw, unit)
	if err != nil {
		return fallback, err
	}
	return max(v, 0), nil
}

func convert(raw any, unit Unit) (int64, error) {
	if p, ok := raw.(*string); ok {
		raw = *p
	}

	if unit == UnitISO8601 {
		s, err := cast.ToStringE(raw)
		if err != nil {
			return 0, fmt.Errorf("iso8601 value %v: %w", raw, err)
		}
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("iso8601 value %q: %w", s, err)
		}
		return t.UnixMilli(), nil
	}

	if s, ok := raw.(string); ok {
		raw = strings.TrimSpace(s)
	}
	n, err := cast.ToInt64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%s value %v: %w", unit, raw, err)
	}

	switch unit {
	case UnitSeconds:
		return n * 1000, nil
	case UnitMinutes:
		return n * 60 * 1000, nil
	default:
		return n, nil
	}
}
