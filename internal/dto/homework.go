package dto

// ── homework ("huiswerk") ──

// CreateHomeworkRequest creates homework with its single planning entry.
type CreateHomeworkRequest struct {
	SubjectID        string `json:"vak_id"         binding:"required,uuid"`
	Description      string `json:"beschrijving"   binding:"required,notblank,max=1000"`
	Deadline         string `json:"deadline"       binding:"required,datetime=2006-01-02"`
	Type             string `json:"type"           binding:"omitempty,oneof=maken leren voorbereiden"`
	EstimatedMinutes int    `json:"geschatte_tijd" binding:"omitempty,min=1,max=1440"`
	Notes            string `json:"notities"       binding:"omitempty,max=2000"`
}

// HomeworkListRequest filters the homework list.
type HomeworkListRequest struct {
	// Open limits the list to homework that is not done.
	Open bool `form:"open"`
}

// HomeworkResponse is one homework assignment.
type HomeworkResponse struct {
	ID               string        `json:"id"`
	Subject          *SubjectBrief `json:"vak,omitempty"`
	Description      string        `json:"beschrijving"`
	Deadline         string        `json:"deadline"`
	Type             string        `json:"type"`
	EstimatedMinutes int           `json:"geschatte_tijd"`
	Notes            string        `json:"notities,omitempty"`
	Done             bool          `json:"voltooid"`
	CreatedAt        string        `json:"created_at"`
}
