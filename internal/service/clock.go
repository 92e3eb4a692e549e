package service

import (
	"time"

	"studie-planner/internal/planner"
)

// Clock returns the current time.
type Clock func() time.Time

// Caller is the authenticated user behind a request.
type Caller struct {
	UserID      string
	Role        string
	HouseholdID string
}

// dayIn returns the calendar date of now in loc.
func dayIn(now time.Time, loc *time.Location) time.Time {
	return planner.Day(now.In(loc))
}

// weekStart returns the Monday on or before d.
func weekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return planner.Day(d).AddDate(0, 0, -offset)
}
