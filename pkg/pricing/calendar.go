package pricing

import (
	"time"

	"github.com/sblrm/cultural-trip-planner/pkg"
)

func isWeekday(day time.Weekday) bool {
	return day >= time.Monday && day <= time.Friday
}

// TimeOfDayMultiplier. morning rush 07:00-09:00 and evening rush 17:00-19:00
// apply on weekdays only; the late night window applies every day.
func TimeOfDayMultiplier(t time.Time) float64 {
	hour := t.Hour()
	weekday := isWeekday(t.Weekday())

	if weekday && hour >= 7 && hour < 9 {
		return 1.30
	}

	if weekday && hour >= 17 && hour < 19 {
		return 1.35
	}

	if hour >= 22 || hour < 5 {
		return 1.10
	}

	return 1.0
}

// DayOfWeekMultiplier. weekend and holiday demand surcharges.
func DayOfWeekMultiplier(t time.Time) float64 {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return 1.20
	case time.Friday:
		return 1.10
	}

	if isFixedHoliday(t) {
		return 1.25
	}

	return 1.0
}

// fixed-date Indonesian public holidays
func isFixedHoliday(t time.Time) bool {
	type monthDay struct {
		month time.Month
		day   int
	}
	holidays := []monthDay{
		{time.January, 1},   // New Year
		{time.May, 1},       // Labor Day
		{time.June, 1},      // Pancasila Day
		{time.August, 17},   // Independence Day
		{time.December, 25}, // Christmas
	}

	for _, h := range holidays {
		if t.Month() == h.month && t.Day() == h.day {
			return true
		}
	}
	return false
}

func TrafficMultiplier(level pkg.TrafficLevel) float64 {
	switch level {
	case pkg.TRAFFIC_LOW:
		return 1.0
	case pkg.TRAFFIC_MEDIUM:
		return 1.15
	case pkg.TRAFFIC_HIGH:
		return 1.30
	case pkg.TRAFFIC_SEVERE:
		return 1.50
	default:
		return 1.0
	}
}

// EstimateTrafficLevel guesses congestion from departure time when the caller
// has no live traffic data.
func EstimateTrafficLevel(t time.Time) pkg.TrafficLevel {
	hour := t.Hour()
	weekday := isWeekday(t.Weekday())

	if weekday {
		if (hour >= 7 && hour < 9) || (hour >= 17 && hour < 19) {
			return pkg.TRAFFIC_SEVERE
		}
		if (hour >= 6 && hour < 10) || (hour >= 16 && hour < 20) {
			return pkg.TRAFFIC_HIGH
		}
	}

	if !weekday && hour >= 10 && hour < 20 {
		return pkg.TRAFFIC_MEDIUM
	}

	if hour >= 22 || hour < 6 {
		return pkg.TRAFFIC_LOW
	}

	return pkg.TRAFFIC_MEDIUM
}
