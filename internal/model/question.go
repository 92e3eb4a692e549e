package model

import "time"

// Question statuses.
const (
	QuestionOpen     = "open"
	QuestionResolved = "opgelost"
)

// Question is a thread opened by a household member ("vraag"). Table questions.
type Question struct {
	QuestionID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"question_id"`
	HouseholdID string  `gorm:"type:uuid;not null;index"                       json:"household_id"`
	UserID      string  `gorm:"type:uuid;not null"                             json:"user_id"`
	SubjectID   *string `gorm:"type:uuid"                                      json:"subject_id,omitempty"`
	Body        string  `gorm:"type:text;not null"                             json:"body"`
	Context     string  `gorm:"type:text"                                      json:"context,omitempty"`
	Status      string  `gorm:"type:varchar(20);not null;default:'open'"       json:"status"` // open | opgelost
	BaseModel

	Asker   *User    `gorm:"foreignKey:UserID;references:UserID"       json:"asker,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
	Answers []Answer `gorm:"foreignKey:QuestionID"                     json:"answers,omitempty"`
}

func (Question) TableName() string { return "questions" }

// Answer is one message in a question thread. Table answers.
type Answer struct {
	AnswerID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"answer_id"`
	QuestionID string    `gorm:"type:uuid;not null;index"                       json:"question_id"`
	UserID     string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Body       string    `gorm:"type:text;not null"                             json:"body"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (Answer) TableName() string { return "answers" }
