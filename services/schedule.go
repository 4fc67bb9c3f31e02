package services

import (
	"errors"
	"time"
)

// Schedule validation errors surfaced as field-level messages.
var (
	ErrStartInPast       = errors.New("start date cannot be in the past")
	ErrEndInPast         = errors.New("end date cannot be in the past")
	ErrEndBeforeStart    = errors.New("end date cannot be before the start date")
	ErrStartRequired     = errors.New("start date is required")
	ErrDurationNegative  = errors.New("estimated duration must be at least 1 day")
	ErrScheduleDateOrder = errors.New("schedule dates are invalid")
)

// DateOnly truncates t to midnight in its own location. Schedule rules
// compare calendar days, not instants.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// beforeDay reports whether a's calendar day falls before b's, each read
// in its own location. Request dates arrive parsed in UTC while "today"
// is server-local, so comparing the midnights as instants would shift
// same-day dates into the past on servers west of UTC.
func beforeDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}

// ValidateSchedule checks a schedule-update request against today.
// Rules: start must be on or after today; end, when set, must be on or
// after both start and today. Dates equal to today are accepted.
// hasEnd distinguishes "no end date" from a zero time.
func ValidateSchedule(start, end time.Time, hasEnd bool, today time.Time) error {
	if start.IsZero() {
		return ErrStartRequired
	}
	if beforeDay(start, today) {
		return ErrStartInPast
	}
	if hasEnd {
		if beforeDay(end, today) {
			return ErrEndInPast
		}
		if beforeDay(end, start) {
			return ErrEndBeforeStart
		}
	}
	return nil
}

// DurationDays returns the scheduled duration in whole days, inclusive of
// both endpoints: 2024-06-01 through 2024-06-05 is 5 days.
func DurationDays(start, end time.Time) int {
	days := int(DateOnly(end).Sub(DateOnly(start)).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}

// ResolveDuration picks the estimated duration for a schedule update:
// a positive manual value wins; otherwise the duration is derived from the
// date range when both dates are set; otherwise zero (unknown).
func ResolveDuration(manual int, start, end time.Time, hasEnd bool) int {
	if manual > 0 {
		return manual
	}
	if !start.IsZero() && hasEnd && !end.IsZero() {
		return DurationDays(start, end)
	}
	return 0
}
