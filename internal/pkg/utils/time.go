package utils

import (
	"medplus-service/internal/pkg/constvars"
	"medplus-service/internal/pkg/exceptions"
	"time"
)

func ParseDateOnly(value string) (time.Time, error) {
	parsed, err := time.Parse(constvars.DATE_ONLY_LAYOUT, value)
	if err != nil {
		return time.Time{}, exceptions.ErrCannotParseDate(err)
	}
	return parsed, nil
}

// CombineDateAndClock builds a UTC instant from a 2006-01-02 date and a
// 15:04 wall clock.
func CombineDateAndClock(date time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse(constvars.CLOCK_LAYOUT, clock)
	if err != nil {
		return time.Time{}, exceptions.ErrCannotParseDate(err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), 0, 0, time.UTC), nil
}

func RangesOverlap(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && startB.Before(endA)
}
