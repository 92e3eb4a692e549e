package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"studie-planner/internal/dto"
	"studie-planner/internal/service"
	"studie-planner/pkg/response"
)

// QuestionHandler serves the household question threads.
type QuestionHandler struct {
	questionSvc service.QuestionService
}

func NewQuestionHandler(questionSvc service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionSvc: questionSvc}
}

// ListQuestions GET /api/v1/questions?status=&page=&page_size=
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	var req dto.QuestionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	list, total, err := h.questionSvc.List(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// AskQuestion POST /api/v1/questions
func (h *QuestionHandler) AskQuestion(c *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	q, err := h.questionSvc.Ask(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}
	response.Created(c, q)
}

// AnswerQuestion POST /api/v1/questions/:id/answers
func (h *QuestionHandler) AnswerQuestion(c *gin.Context) {
	var req dto.CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	a, err := h.questionSvc.Answer(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}
	response.Created(c, a)
}

// ResolveQuestion PUT /api/v1/questions/:id/resolve
func (h *QuestionHandler) ResolveQuestion(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.questionSvc.Resolve(c.Request.Context(), caller, c.Param("id")); err != nil {
		h.handleQuestionError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *QuestionHandler) handleQuestionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrQuestionNotFound):
		response.NotFound(c, 26001, "vraag niet gevonden")
	case errors.Is(err, service.ErrQuestionForbidden):
		response.Forbidden(c, 26002, "alleen de vraagsteller of een ouder kan een vraag afsluiten")
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 21001, "vak niet gevonden")
	default:
		response.InternalError(c)
	}
}
