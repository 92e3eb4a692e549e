package dto

// UpdateSettingsRequest changes the planning settings; nil fields are kept.
type UpdateSettingsRequest struct {
	DailyMinutes        *int  `json:"dagelijkse_minuten"   yaml:"dagelijkse_minuten"   binding:"omitempty,min=15,max=720"`
	StudyOnWeekends     *bool `json:"weekend_studeren"     yaml:"weekend_studeren"`
	BufferDays          *int  `json:"bufferdagen"          yaml:"bufferdagen"          binding:"omitempty,min=0,max=14"`
	RepetitionFrequency *int  `json:"herhalingsfrequentie" yaml:"herhalingsfrequentie" binding:"omitempty,min=1,max=10"`
}

// SettingsResponse are the planning settings in effect.
type SettingsResponse struct {
	DailyMinutes        int  `json:"dagelijkse_minuten"`
	StudyOnWeekends     bool `json:"weekend_studeren"`
	BufferDays          int  `json:"bufferdagen"`
	RepetitionFrequency int  `json:"herhalingsfrequentie"`
	// Stored is false while the defaults are in effect.
	Stored bool `json:"opgeslagen"`
}
