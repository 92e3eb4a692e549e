package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studie-planner/internal/dto"
	"studie-planner/internal/service"
	"studie-planner/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler serves the planning downloads.
type ExportHandler struct {
	exportSvc service.ExportService
}

func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportWeekXLSX GET /api/v1/planning/export.xlsx?start=YYYY-MM-DD
func (h *ExportHandler) ExportWeekXLSX(c *gin.Context) {
	h.exportWeek(c, contentTypeXLSX, h.exportSvc.WeekXLSX)
}

// ExportWeekPDF GET /api/v1/planning/export.pdf?start=YYYY-MM-DD
func (h *ExportHandler) ExportWeekPDF(c *gin.Context) {
	h.exportWeek(c, contentTypePDF, h.exportSvc.WeekPDF)
}

func (h *ExportHandler) exportWeek(c *gin.Context, contentType string,
	render func(ctx context.Context, userID, start string) (*bytes.Buffer, string, error)) {
	var q dto.WeekQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := render(c.Request.Context(), userID, q.Start)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	response.Attachment(c, contentType, filename, buf.Bytes())
}

// Calendar serves the iCalendar feed. Calendar apps cannot send headers, so
// the token may come in the access_token query parameter.
// GET /api/v1/planning/calendar.ics
func (h *ExportHandler) Calendar(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.Calendar(c.Request.Context(), userID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	response.Attachment(c, contentTypeICS, filename, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	if handleCommonError(c, err) {
		return
	}
	if errors.Is(err, service.ErrExportGenerateFail) {
		response.Error(c, http.StatusInternalServerError, 28001, "export kon niet worden gemaakt")
		return
	}
	response.InternalError(c)
}
