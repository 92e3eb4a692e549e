package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"studie-planner/internal/dto"
	"studie-planner/internal/service"
	"studie-planner/pkg/response"
)

// HomeworkHandler serves homework ("huiswerk").
type HomeworkHandler struct {
	homeworkSvc service.HomeworkService
}

func NewHomeworkHandler(homeworkSvc service.HomeworkService) *HomeworkHandler {
	return &HomeworkHandler{homeworkSvc: homeworkSvc}
}

// CreateHomework POST /api/v1/homework
func (h *HomeworkHandler) CreateHomework(c *gin.Context) {
	var req dto.CreateHomeworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	hw, err := h.homeworkSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleHomeworkError(c, err)
		return
	}
	response.Created(c, hw)
}

// ListHomework GET /api/v1/homework?open=true
func (h *HomeworkHandler) ListHomework(c *gin.Context) {
	var req dto.HomeworkListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.homeworkSvc.List(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleHomeworkError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// ToggleHomework PUT /api/v1/homework/:id/toggle
func (h *HomeworkHandler) ToggleHomework(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	hw, err := h.homeworkSvc.Toggle(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleHomeworkError(c, err)
		return
	}
	response.OK(c, hw)
}

// DeleteHomework DELETE /api/v1/homework/:id
func (h *HomeworkHandler) DeleteHomework(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.homeworkSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleHomeworkError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *HomeworkHandler) handleHomeworkError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHomeworkNotFound):
		response.NotFound(c, 23001, "huiswerk niet gevonden")
	case errors.Is(err, service.ErrHomeworkDeadlineInvalid):
		response.BadRequest(c, 23002, "ongeldige deadline")
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 21001, "vak niet gevonden")
	default:
		response.InternalError(c)
	}
}
