package planner

import (
	"fmt"
	"time"
)

// Day truncates t to its calendar date at midnight UTC. The wall-clock date
// of t in its own location is kept.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AvailableDays returns every date d with today <= d < testDate, in ascending
// order. Saturdays and Sundays are skipped unless studyOnWeekends is set.
func AvailableDays(today, testDate time.Time, studyOnWeekends bool) []time.Time {
	start, end := Day(today), Day(testDate)
	var days []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if !studyOnWeekends && isWeekend(d) {
			continue
		}
		days = append(days, d)
	}
	return days
}

// Windows holds the learning and review parts of an availability sequence.
type Windows struct {
	Learning []time.Time
	Review   []time.Time
}

// Empty reports whether there are no days at all.
func (w Windows) Empty() bool {
	return len(w.Learning) == 0 && len(w.Review) == 0
}

// SplitWindows reserves the trailing min(bufferDays, floor(len*0.3)) days
// for review and returns the rest as learning days.
func SplitWindows(days []time.Time, bufferDays int) Windows {
	if len(days) == 0 {
		return Windows{}
	}
	buffer := min(bufferDays, len(days)*3/10)
	if buffer < 0 {
		buffer = 0
	}
	cut := len(days) - buffer
	return Windows{
		Learning: days[:cut:cut],
		Review:   days[cut:],
	}
}

// ── start policy ──

// StartPolicy decides which part of the availability window is used.
type StartPolicy string

const (
	// StartDeferred uses only as many trailing days as the estimated
	// workload needs, plus two, so learning ends just before the test.
	StartDeferred StartPolicy = "deferred"
	// StartImmediate starts learning today and uses every available day.
	StartImmediate StartPolicy = "immediate"
)

// ParseStartPolicy maps a configuration value to a StartPolicy.
func ParseStartPolicy(s string) (StartPolicy, error) {
	switch StartPolicy(s) {
	case StartDeferred, "":
		return StartDeferred, nil
	case StartImmediate:
		return StartImmediate, nil
	default:
		return "", fmt.Errorf("planner: unknown start policy %q", s)
	}
}

// leadIn applies the policy to the full availability sequence.
func (p StartPolicy) leadIn(days []time.Time, totalMinutes, dailyMinutes int) []time.Time {
	if p == StartImmediate || len(days) == 0 {
		return days
	}
	if dailyMinutes <= 0 {
		dailyMinutes = DefaultDailyMinutes
	}
	needed := min(ceilDiv(totalMinutes, dailyMinutes)+2, len(days))
	return days[len(days)-needed:]
}
