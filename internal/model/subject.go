package model

// Subject is a school subject ("vak"). Table subjects.
type Subject struct {
	SubjectID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	UserID    string `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	Color     string `gorm:"type:varchar(20);not null;default:'#3b82f6'"    json:"color"`
	BaseModel
}

func (Subject) TableName() string { return "subjects" }
