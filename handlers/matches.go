package handlers

import (
	"net/http"

	"github.com/Pratik-911/skillswap/services/matching"
	"github.com/Pratik-911/skillswap/utils"

	"github.com/gin-gonic/gin"
)

// MatchHandler exposes the skill-matching endpoints.
type MatchHandler struct {
	Service matching.MatchingService
}

// NewMatchHandler creates a MatchHandler backed by the given service.
func NewMatchHandler(svc matching.MatchingService) *MatchHandler {
	return &MatchHandler{Service: svc}
}

// FindMatchesHandler handles GET /api/matches.
func (h *MatchHandler) FindMatchesHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.Service.FindMatches(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// FindMutualMatchesHandler handles GET /api/matches/mutual.
func (h *MatchHandler) FindMutualMatchesHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.Service.FindMutualMatches(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
