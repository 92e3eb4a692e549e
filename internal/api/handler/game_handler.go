package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"studie-planner/internal/dto"
	"studie-planner/internal/service"
	"studie-planner/pkg/response"
)

// GameHandler serves arcade credits, scores and leaderboards.
type GameHandler struct {
	creditSvc service.CreditService
}

func NewGameHandler(creditSvc service.CreditService) *GameHandler {
	return &GameHandler{creditSvc: creditSvc}
}

// GetCredits GET /api/v1/games/credits
func (h *GameHandler) GetCredits(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.creditSvc.Balance(c.Request.Context(), userID)
	if err != nil {
		h.handleGameError(c, err)
		return
	}
	response.OK(c, resp)
}

// SpendCredit POST /api/v1/games/credits/spend
func (h *GameHandler) SpendCredit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.creditSvc.Spend(c.Request.Context(), userID)
	if err != nil {
		h.handleGameError(c, err)
		return
	}
	response.OK(c, resp)
}

// SaveScore POST /api/v1/games/scores
func (h *GameHandler) SaveScore(c *gin.Context) {
	var req dto.SaveScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.creditSvc.SaveScore(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleGameError(c, err)
		return
	}
	response.Created(c, resp)
}

// GetLeaderboard GET /api/v1/games/leaderboard?game=&limit=
func (h *GameHandler) GetLeaderboard(c *gin.Context) {
	var req dto.LeaderboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	list, err := h.creditSvc.Leaderboard(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleGameError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

func (h *GameHandler) handleGameError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoCredits):
		response.BadRequest(c, 27001, "geen credits meer, maak eerst een taak af")
	case errors.Is(err, service.ErrUnknownGame):
		response.BadRequest(c, 27002, "onbekend spel")
	default:
		response.InternalError(c)
	}
}
