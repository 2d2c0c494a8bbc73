package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDay parses a date query value and returns midnight of that day in loc.
func ParseDay(value string, loc *time.Location) (time.Time, error) {
	t, err := dateparse.ParseIn(strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// DayRange returns the half-open interval [start of day, start of next day).
func DayRange(value string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := ParseDay(value, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}

// SpanRange covers every day from startValue through endValue inclusive.
func SpanRange(startValue, endValue string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := ParseDay(startValue, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseDay(endValue, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("endDate %s is before startDate %s", endValue, startValue)
	}
	return start, end.AddDate(0, 0, 1), nil
}
