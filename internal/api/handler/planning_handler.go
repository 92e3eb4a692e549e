package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"studie-planner/internal/dto"
	"studie-planner/internal/service"
	"studie-planner/pkg/response"
)

// PlanningHandler serves the stored day and week planning.
type PlanningHandler struct {
	planningSvc service.PlanningService
}

func NewPlanningHandler(planningSvc service.PlanningService) *PlanningHandler {
	return &PlanningHandler{planningSvc: planningSvc}
}

// GetDay GET /api/v1/planning?date=YYYY-MM-DD
func (h *PlanningHandler) GetDay(c *gin.Context) {
	var q dto.DayQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.planningSvc.Day(c.Request.Context(), userID, q.Date)
	if err != nil {
		h.handlePlanningError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetWeek GET /api/v1/planning/week?start=YYYY-MM-DD
func (h *PlanningHandler) GetWeek(c *gin.Context) {
	var q dto.WeekQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.planningSvc.Week(c.Request.Context(), userID, q.Start)
	if err != nil {
		h.handlePlanningError(c, err)
		return
	}
	response.OK(c, resp)
}

// CompleteItem PUT /api/v1/planning/items/:id/complete
func (h *PlanningHandler) CompleteItem(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	resp, err := h.planningSvc.Complete(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.handlePlanningError(c, err)
		return
	}
	response.OK(c, resp)
}

// IncompleteItem PUT /api/v1/planning/items/:id/incomplete
func (h *PlanningHandler) IncompleteItem(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	resp, err := h.planningSvc.Incomplete(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.handlePlanningError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetChildDay GET /api/v1/children/:id/planning?date=YYYY-MM-DD
func (h *PlanningHandler) GetChildDay(c *gin.Context) {
	var q dto.DayQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	resp, err := h.planningSvc.ChildDay(c.Request.Context(), caller, c.Param("id"), q.Date)
	if err != nil {
		h.handlePlanningError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetChildWeek GET /api/v1/children/:id/planning/week?start=YYYY-MM-DD
func (h *PlanningHandler) GetChildWeek(c *gin.Context) {
	var q dto.WeekQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	resp, err := h.planningSvc.ChildWeek(c.Request.Context(), caller, c.Param("id"), q.Start)
	if err != nil {
		h.handlePlanningError(c, err)
		return
	}
	response.OK(c, resp)
}

func (h *PlanningHandler) handlePlanningError(c *gin.Context, err error) {
	if handleCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrPlanningItemNotFound):
		response.NotFound(c, 24001, "taak niet gevonden")
	case errors.Is(err, service.ErrForbiddenHousehold):
		response.Forbidden(c, 24002, "deze gebruiker hoort niet bij jouw huishouden")
	default:
		response.InternalError(c)
	}
}
