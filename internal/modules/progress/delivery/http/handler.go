package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	progressDto "lokalpulse.com/gbpdashboard/internal/modules/progress/dto"
	progress "lokalpulse.com/gbpdashboard/internal/modules/progress/service"
	"lokalpulse.com/gbpdashboard/pkg/response"
)

type ProgressHandler struct {
	service progress.Service
}

func NewProgressHandler(service progress.Service) *ProgressHandler {
	return &ProgressHandler{service: service}
}

func (h *ProgressHandler) GetProgress(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("location_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location id"})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	result, err := h.service.GetProgress(c.Request.Context(), userID, locationID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ProgressHandler) GetLeaderboard(c *gin.Context) {
	var query progressDto.LeaderboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ResponseError(c, err)
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	entries, err := h.service.GetLeaderboard(c.Request.Context(), userID, query.Limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}
