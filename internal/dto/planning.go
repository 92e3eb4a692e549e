package dto

// ── planning ──

// DayQuery selects one day; empty means today.
type DayQuery struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// WeekQuery selects the Monday-based week containing Start; empty means the
// current week.
type WeekQuery struct {
	Start string `form:"start" binding:"omitempty,datetime=2006-01-02"`
}

// RangeResponse is an inclusive range of words or exercises.
type RangeResponse struct {
	From int `json:"van"`
	To   int `json:"tot"`
}

// PlanningItemResponse is one dated study task.
type PlanningItemResponse struct {
	ID          string         `json:"id,omitempty"`
	Date        string         `json:"datum"`
	Kind        string         `json:"type"`
	Source      string         `json:"bron"` // toets | huiswerk
	Description string         `json:"beschrijving"`
	Minutes     int            `json:"geschatte_tijd"`
	Done        bool           `json:"voltooid"`
	DoneAt      string         `json:"voltooid_op,omitempty"`
	CarriedOver bool           `json:"doorgeschoven"`
	TestID      string         `json:"toets_id,omitempty"`
	TestItemID  string         `json:"onderdeel_id,omitempty"`
	HomeworkID  string         `json:"huiswerk_id,omitempty"`
	Subject     *SubjectBrief  `json:"vak,omitempty"`
	Chapters    []int          `json:"hoofdstukken,omitempty"`
	Words       *RangeResponse `json:"woorden,omitempty"`
	Exercises   *RangeResponse `json:"opgaven,omitempty"`
}

// DayPlanningResponse is the planning of one day.
type DayPlanningResponse struct {
	Date         string                 `json:"datum"`
	Items        []PlanningItemResponse `json:"items"`
	TotalMinutes int                    `json:"totale_tijd"`
	DoneMinutes  int                    `json:"voltooide_tijd"`
}

// WeekPlanningResponse is the planning of Monday through Sunday.
type WeekPlanningResponse struct {
	Start string                `json:"start"`
	End   string                `json:"eind"`
	Week  int                   `json:"week"`
	Days  []DayPlanningResponse `json:"dagen"`
}

// CompleteResponse is returned when a task is marked done.
type CompleteResponse struct {
	Item           PlanningItemResponse `json:"item"`
	CreditsAwarded int                  `json:"credits_toegekend"`
}
