package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	locationDto "lokalpulse.com/gbpdashboard/internal/modules/location/dto"
	location "lokalpulse.com/gbpdashboard/internal/modules/location/service"
	"lokalpulse.com/gbpdashboard/pkg/response"
)

type LocationHandler struct {
	service location.Service
}

func NewLocationHandler(service location.Service) *LocationHandler {
	return &LocationHandler{service: service}
}

func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req locationDto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, err)
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	created, err := h.service.CreateLocation(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *LocationHandler) GetMyLocations(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	locations, err := h.service.GetMyLocations(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": locations})
}

func (h *LocationHandler) GetLocation(c *gin.Context) {
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

	loc, err := h.service.GetLocation(c.Request.Context(), userID, locationID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, loc)
}

func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("location_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location id"})
		return
	}

	var req locationDto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, err)
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.UpdateLocation(c.Request.Context(), userID, locationID, req); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "location updated successfully"})
}

func (h *LocationHandler) DeleteLocation(c *gin.Context) {
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

	if err := h.service.DeleteLocation(c.Request.Context(), userID, locationID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "location deleted successfully"})
}

func (h *LocationHandler) GetSnapshot(c *gin.Context) {
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

	snap, err := h.service.GetSnapshot(c.Request.Context(), userID, locationID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}
