package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"studie-planner/internal/dto"
	"studie-planner/internal/service"
	"studie-planner/pkg/response"
)

// TestHandler serves tests ("toetsen") and their generated planning.
type TestHandler struct {
	testSvc service.TestService
}

func NewTestHandler(testSvc service.TestService) *TestHandler {
	return &TestHandler{testSvc: testSvc}
}

// CreateTest creates a test and plans it. A test without available study
// days is still created; the warning is in the payload.
// POST /api/v1/tests
func (h *TestHandler) CreateTest(c *gin.Context) {
	var req dto.CreateTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.testSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleTestError(c, err)
		return
	}
	response.Created(c, resp)
}

// ListTests GET /api/v1/tests
func (h *TestHandler) ListTests(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	tests, err := h.testSvc.List(c.Request.Context(), userID)
	if err != nil {
		h.handleTestError(c, err)
		return
	}
	response.OK(c, gin.H{"list": tests})
}

// GetTest GET /api/v1/tests/:id
func (h *TestHandler) GetTest(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	test, err := h.testSvc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleTestError(c, err)
		return
	}
	response.OK(c, test)
}

// ReplaceItems PUT /api/v1/tests/:id/items
func (h *TestHandler) ReplaceItems(c *gin.Context) {
	var req dto.ReplaceItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.testSvc.ReplaceItems(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handleTestError(c, err)
		return
	}
	response.OK(c, resp)
}

// RegeneratePlanning POST /api/v1/tests/:id/planning/regenerate
func (h *TestHandler) RegeneratePlanning(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.testSvc.Regenerate(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleTestError(c, err)
		return
	}
	response.OK(c, resp)
}

// DeleteTest DELETE /api/v1/tests/:id
func (h *TestHandler) DeleteTest(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.testSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleTestError(c, err)
		return
	}
	response.OK(c, nil)
}

// Preview plans a test without storing it.
// POST /api/v1/tests/preview
func (h *TestHandler) Preview(c *gin.Context) {
	var req dto.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.testSvc.Preview(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleTestError(c, err)
		return
	}
	response.OK(c, resp)
}

func (h *TestHandler) handleTestError(c *gin.Context, err error) {
	if handleCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrTestNotFound):
		response.NotFound(c, 22001, "toets niet gevonden")
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 21001, "vak niet gevonden")
	case errors.Is(err, service.ErrTestDateInvalid):
		response.BadRequest(c, 22002, "ongeldige toetsdatum")
	default:
		response.InternalError(c)
	}
}
