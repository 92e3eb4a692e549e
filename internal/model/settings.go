package model

// UserSettings are the planning preferences of one user. Table user_settings.
type UserSettings struct {
	UserID              string `gorm:"type:uuid;primaryKey"     json:"user_id"`
	DailyMinutes        int    `gorm:"not null;default:120"     json:"daily_minutes"`
	StudyOnWeekends     bool   `gorm:"not null;default:true"    json:"study_on_weekends"`
	BufferDays          int    `gorm:"not null;default:2"       json:"buffer_days"`
	RepetitionFrequency int    `gorm:"not null;default:3"       json:"repetition_frequency"`
	BaseModel
}

func (UserSettings) TableName() string { return "user_settings" }
