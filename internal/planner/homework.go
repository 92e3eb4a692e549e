package planner

import "time"

// HomeworkType tells how homework is worked on.
type HomeworkType string

const (
	HomeworkMake    HomeworkType = "maken"
	HomeworkLearn   HomeworkType = "leren"
	HomeworkPrepare HomeworkType = "voorbereiden"
)

// DefaultHomeworkMinutes is used when homework has no estimate.
const DefaultHomeworkMinutes = 30

// Homework is a single assignment with a deadline.
type Homework struct {
	ID               string
	Type             HomeworkType
	Description      string
	Deadline         time.Time
	EstimatedMinutes int
}

func (t HomeworkType) verb() string {
	switch t {
	case HomeworkLearn:
		return "Leer"
	case HomeworkPrepare:
		return "Bereid voor"
	default:
		return "Maak"
	}
}

// PlanHomework schedules homework on the day before its deadline, or today
// when the deadline is at most one day away.
func PlanHomework(hw Homework, today time.Time) Entry {
	day := Day(today)
	if DaysBetween(day, hw.Deadline) > 1 {
		day = Day(hw.Deadline).AddDate(0, 0, -1)
	}
	return Entry{
		Date:        day,
		Kind:        KindLearn,
		Description: hw.Type.verb() + ": " + hw.Description,
		Minutes:     orDefault(hw.EstimatedMinutes, DefaultHomeworkMinutes),
	}
}
