package timetable

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jusunglee/signage-go/internal/models"
)

// MinutesPerDay is the wraparound period of all departure arithmetic
const MinutesPerDay = 24 * 60

// DateLayout is the reference date identity format
const DateLayout = "2006-01-02"

// MinutesUntil returns the forward distance from reference to target, wrapping at midnight.
// A target equal to the reference is 0 minutes away.
func MinutesUntil(target, reference int) int {
	diff := (target - reference) % MinutesPerDay
	if diff < 0 {
		diff += MinutesPerDay
	}
	return diff
}

// ParseClock converts "HH:MM[:SS]" into minutes of day.
// Missing or unparsable components count as 0 and ranges are not validated.
func ParseClock(value string) int {
	parts := strings.Split(value, ":")
	hour := clockComponent(parts, 0)
	minute := clockComponent(parts, 1)
	return hour*60 + minute
}

// TimeStringToMinutes parses a reference time, treating an empty value as "00:00"
func TimeStringToMinutes(value string) int {
	if value == "" {
		value = "00:00"
	}
	return ParseClock(value)
}

func clockComponent(parts []string, idx int) int {
	if idx >= len(parts) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[idx]))
	if err != nil {
		return 0
	}
	return n
}

// FormatMinutes renders minutes of day as "HH:MM"
func FormatMinutes(minutes int) string {
	minutes = MinutesUntil(minutes, 0)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ClockString returns the wall-clock "HH:MM" of t
func ClockString(t time.Time) string {
	return t.Format("15:04")
}

// DateString returns the date identity of t
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// ServiceTypeFor returns weekend for Saturday and Sunday, weekday otherwise
func ServiceTypeFor(date time.Time) models.ServiceType {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return models.ServiceWeekend
	}
	return models.ServiceWeekday
}

// ServiceTypeForDate resolves a date identity, falling back to now when it does not parse
func ServiceTypeForDate(value string, now time.Time) models.ServiceType {
	date, err := time.ParseInLocation(DateLayout, value, now.Location())
	if err != nil {
		return ServiceTypeFor(now)
	}
	return ServiceTypeFor(date)
}

// TimetableFiles names the weekday and weekend source files
type TimetableFiles struct {
	Weekday string
	Weekend string
}

// DefaultTimetableFiles returns the station's published file names
func DefaultTimetableFiles() TimetableFiles {
	return TimetableFiles{
		Weekday: "/hiroshima_station_weekday_timetable.csv",
		Weekend: "/hiroshima_station_weekend_timetable.csv",
	}
}

// For selects the file for a service type
func (f TimetableFiles) For(st models.ServiceType) string {
	if st == models.ServiceWeekday {
		return f.Weekday
	}
	return f.Weekend
}
