package dto

// ── subjects ──

// CreateSubjectRequest creates a subject ("vak").
type CreateSubjectRequest struct {
	Name  string `json:"naam"  binding:"required,notblank,max=100"`
	Color string `json:"kleur" binding:"omitempty,hexcolor"`
}

// UpdateSubjectRequest changes a subject; nil fields are kept.
type UpdateSubjectRequest struct {
	Name  *string `json:"naam"  binding:"omitempty,notblank,max=100"`
	Color *string `json:"kleur" binding:"omitempty,hexcolor"`
}

// SubjectResponse is one subject.
type SubjectResponse struct {
	ID        string `json:"id"`
	Name      string `json:"naam"`
	Color     string `json:"kleur"`
	CreatedAt string `json:"created_at"`
}
