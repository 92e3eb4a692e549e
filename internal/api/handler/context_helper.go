package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studie-planner/internal/api/middleware"
	"studie-planner/internal/dto"
	"studie-planner/internal/service"
	apperrors "studie-planner/pkg/errors"
	"studie-planner/pkg/response"
)

// MustGetUserID reads the user_id the JWT middleware stored. It writes a 401
// and returns false when it is missing; callers return right away.
func MustGetUserID(c *gin.Context) (string, bool) {
	s := c.GetString(middleware.CtxUserID)
	if s == "" {
		response.Unauthorized(c, 10002, "niet ingelogd")
		return "", false
	}
	return s, true
}

// MustGetCaller reads the authenticated user, role and household.
func MustGetCaller(c *gin.Context) (service.Caller, bool) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return service.Caller{}, false
	}
	return service.Caller{
		UserID:      userID,
		Role:        c.GetString(middleware.CtxRole),
		HouseholdID: c.GetString(middleware.CtxHouseholdID),
	}, true
}

// bindError answers a request that failed binding or validation.
func bindError(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "ongeldige invoer", dto.FirstError(err))
}

// handleCommonError maps errors shared by all modules. It reports false when
// err is not one of them.
func handleCommonError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, apperrors.ErrBusy):
		response.Conflict(c, 10006, "planning wordt al bijgewerkt, probeer het zo opnieuw")
	case errors.Is(err, service.ErrDateInvalid):
		response.BadRequest(c, 10001, "datum moet JJJJ-MM-DD zijn")
	default:
		return false
	}
	return true
}
