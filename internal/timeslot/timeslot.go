// Package timeslot holds the time and interval arithmetic shared by the
// schedule store, the booking flow and the status reconciler. Dates are plain
// "YYYY-MM-DD" strings and clock times are "HH:MM"; intervals are fractional
// hours (14.5 means 14:30) so overlap checks stay simple numeric comparisons.
package timeslot

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"studyseat/internal/shared/apperrors"
)

// AdmissionLeadTime is the window before the nominal start during which early
// check-in is permitted and the order counts as active.
const AdmissionLeadTime = 10 * time.Minute

const (
	DateLayout = "2006-01-02"
)

// ParseClock converts "HH:MM" to a fractional hour (HH + MM/60).
func ParseClock(clock string) (float64, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, apperrors.Validation("invalid time %q: expected HH:MM", clock)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, apperrors.Validation("invalid time %q: hour is not numeric", clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, apperrors.Validation("invalid time %q: minute is not numeric", clock)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, apperrors.Validation("invalid time %q: out of range", clock)
	}

	return float64(hour) + float64(minute)/60, nil
}

// CombineDateAndClock builds a concrete instant from an ISO date and a clock
// time, in the server's local calendar. The date is decomposed field by field
// rather than handed to time.Parse, because parsing a bare "YYYY-MM-DD" yields
// UTC midnight and comparing that against local wall-clock now shifts every
// order by the timezone offset.
func CombineDateAndClock(date, clock string) (time.Time, error) {
	dateParts := strings.Split(date, "-")
	if len(dateParts) != 3 {
		return time.Time{}, apperrors.Validation("invalid date %q: expected YYYY-MM-DD", date)
	}

	year, err := strconv.Atoi(dateParts[0])
	if err != nil {
		return time.Time{}, apperrors.Validation("invalid date %q: year is not numeric", date)
	}
	month, err := strconv.Atoi(dateParts[1])
	if err != nil {
		return time.Time{}, apperrors.Validation("invalid date %q: month is not numeric", date)
	}
	day, err := strconv.Atoi(dateParts[2])
	if err != nil {
		return time.Time{}, apperrors.Validation("invalid date %q: day is not numeric", date)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, apperrors.Validation("invalid date %q: out of range", date)
	}

	clockParts := strings.Split(clock, ":")
	if len(clockParts) != 2 {
		return time.Time{}, apperrors.Validation("invalid time %q: expected HH:MM", clock)
	}
	hour, err := strconv.Atoi(clockParts[0])
	if err != nil {
		return time.Time{}, apperrors.Validation("invalid time %q: hour is not numeric", clock)
	}
	minute, err := strconv.Atoi(clockParts[1])
	if err != nil {
		return time.Time{}, apperrors.Validation("invalid time %q: minute is not numeric", clock)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, apperrors.Validation("invalid time %q: out of range", clock)
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local), nil
}

// AdmissionInstant returns the moment check-in opens for a given start instant.
func AdmissionInstant(start time.Time) time.Time {
	return start.Add(-AdmissionLeadTime)
}

// Overlaps reports whether two half-open fractional-hour intervals intersect.
// Touching endpoints (a ends at 14.0, b starts at 14.0) are not an overlap.
func Overlaps(aStart, aEnd, bStart, bEnd float64) bool {
	return aStart < bEnd && bStart < aEnd
}

// ClockValidator is a validator/v10 field rule ("clocktime") for HH:MM strings,
// registered with gin's binding engine at startup.
func ClockValidator(fl validator.FieldLevel) bool {
	_, err := ParseClock(fl.Field().String())
	return err == nil
}
