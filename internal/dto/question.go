package dto

// ── questions ("vragen") ──

// CreateQuestionRequest opens a question thread.
type CreateQuestionRequest struct {
	SubjectID *string `json:"vak_id"  binding:"omitempty,uuid"`
	Body      string  `json:"vraag"   binding:"required,notblank,max=2000"`
	Context   string  `json:"context" binding:"omitempty,max=2000"`
}

// CreateAnswerRequest adds an answer to a thread.
type CreateAnswerRequest struct {
	Body string `json:"antwoord" binding:"required,notblank,max=2000"`
}

// QuestionListRequest filters the household questions.
type QuestionListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=open opgelost"`
	PaginationRequest
}

// AnswerResponse is one answer.
type AnswerResponse struct {
	ID        string     `json:"id"`
	User      *UserBrief `json:"door,omitempty"`
	Body      string     `json:"antwoord"`
	CreatedAt string     `json:"created_at"`
}

// QuestionResponse is a thread with its answers in order.
type QuestionResponse struct {
	ID        string           `json:"id"`
	Asker     *UserBrief       `json:"gesteld_door,omitempty"`
	Subject   *SubjectBrief    `json:"vak,omitempty"`
	Body      string           `json:"vraag"`
	Context   string           `json:"context,omitempty"`
	Status    string           `json:"status"`
	Answers   []AnswerResponse `json:"antwoorden"`
	CreatedAt string           `json:"created_at"`
}
