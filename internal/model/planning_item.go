package model

import "time"

// PlanningItem is one dated study task. Table planning_items.
// It belongs to either a test item or a homework assignment.
type PlanningItem struct {
	PlanningItemID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"planning_item_id"`
	UserID           string     `gorm:"type:uuid;not null;index:idx_planning_user_date" json:"user_id"`
	Date             time.Time  `gorm:"type:date;not null;index:idx_planning_user_date" json:"date"`
	Kind             string     `gorm:"type:varchar(20);not null"                      json:"kind"` // leren | herhalen
	Description      string     `gorm:"type:text;not null"                             json:"description"`
	EstimatedMinutes int        `gorm:"not null;default:0"                             json:"estimated_minutes"`
	TestID           *string    `gorm:"type:uuid;index"                                json:"test_id,omitempty"`
	TestItemID       *string    `gorm:"type:uuid"                                      json:"test_item_id,omitempty"`
	HomeworkID       *string    `gorm:"type:uuid;index"                                json:"homework_id,omitempty"`
	ChapterNumbers   IntArray   `gorm:"type:int[]"                                     json:"chapter_numbers,omitempty"`
	WordsFrom        *int       `json:"words_from,omitempty"`
	WordsTo          *int       `json:"words_to,omitempty"`
	ExercisesFrom    *int       `json:"exercises_from,omitempty"`
	ExercisesTo      *int       `json:"exercises_to,omitempty"`
	Done             bool       `gorm:"not null;default:false"                         json:"done"`
	DoneAt           *time.Time `json:"done_at,omitempty"`
	CreditsAwarded   bool       `gorm:"not null;default:false"                         json:"-"`
	CarriedOver      bool       `gorm:"not null;default:false"                         json:"carried_over"`
	CarriedFromID    *string    `gorm:"type:uuid"                                      json:"carried_from_id,omitempty"`
	BaseModel

	Test     *Test     `gorm:"foreignKey:TestID;references:TestID"         json:"test,omitempty"`
	Homework *Homework `gorm:"foreignKey:HomeworkID;references:HomeworkID" json:"homework,omitempty"`
}

func (PlanningItem) TableName() string { return "planning_items" }

// SourceKey identifies what an item was planned for. Carry-over uses it to
// avoid copying a task onto a day that already has one for the same source.
func (p *PlanningItem) SourceKey() string {
	switch {
	case p.TestItemID != nil:
		return "item:" + *p.TestItemID
	case p.HomeworkID != nil:
		return "homework:" + *p.HomeworkID
	case p.CarriedFromID != nil:
		return "id:" + *p.CarriedFromID
	default:
		return "id:" + p.PlanningItemID
	}
}

// SubjectName returns the subject of the test or homework, if preloaded.
func (p *PlanningItem) SubjectName() string {
	switch {
	case p.Test != nil && p.Test.Subject != nil:
		return p.Test.Subject.Name
	case p.Homework != nil && p.Homework.Subject != nil:
		return p.Homework.Subject.Name
	}
	return ""
}
