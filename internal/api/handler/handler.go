package handler

import "studie-planner/internal/service"

// Handler aggregates every handler.
type Handler struct {
	Subject  *SubjectHandler
	Test     *TestHandler
	Homework *HomeworkHandler
	Planning *PlanningHandler
	Settings *SettingsHandler
	Question *QuestionHandler
	Game     *GameHandler
	Export   *ExportHandler
}

// NewHandler builds the handlers on top of svc.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Subject:  NewSubjectHandler(svc.Subject),
		Test:     NewTestHandler(svc.Test),
		Homework: NewHomeworkHandler(svc.Homework),
		Planning: NewPlanningHandler(svc.Planning),
		Settings: NewSettingsHandler(svc.Settings),
		Question: NewQuestionHandler(svc.Question),
		Game:     NewGameHandler(svc.Credit),
		Export:   NewExportHandler(svc.Export),
	}
}
