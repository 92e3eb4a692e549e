package model

import "time"

// Homework kinds.
const (
	HomeworkMake    = "maken"
	HomeworkLearn   = "leren"
	HomeworkPrepare = "voorbereiden"
)

// Homework is a single assignment with a deadline ("huiswerk"). Table homework.
type Homework struct {
	HomeworkID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"homework_id"`
	UserID           string    `gorm:"type:uuid;not null;index"                       json:"user_id"`
	SubjectID        string    `gorm:"type:uuid;not null"                             json:"subject_id"`
	Description      string    `gorm:"type:text;not null"                             json:"description"`
	Deadline         time.Time `gorm:"type:date;not null"                             json:"deadline"`
	Type             string    `gorm:"type:varchar(20);not null;default:'maken'"      json:"type"` // maken | leren | voorbereiden
	EstimatedMinutes int       `gorm:"not null;default:30"                            json:"estimated_minutes"`
	Notes            string    `gorm:"type:text"                                      json:"notes,omitempty"`
	Done             bool      `gorm:"not null;default:false"                         json:"done"`
	BaseModel

	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
}

func (Homework) TableName() string { return "homework" }
