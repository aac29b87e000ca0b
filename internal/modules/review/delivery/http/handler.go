package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reviewDto "lokalpulse.com/gbpdashboard/internal/modules/review/dto"
	review "lokalpulse.com/gbpdashboard/internal/modules/review/service"
	"lokalpulse.com/gbpdashboard/pkg/response"
)

type ReviewHandler struct {
	service review.Service
}

func NewReviewHandler(service review.Service) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) CreateReply(c *gin.Context) {
	var req reviewDto.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, err)
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	reply, err := h.service.CreateReply(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reply)
}

func (h *ReviewHandler) GetReplies(c *gin.Context) {
	var query reviewDto.ListRepliesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ResponseError(c, err)
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	replies, err := h.service.GetReplies(c.Request.Context(), userID, query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": replies})
}

func (h *ReviewHandler) UpdateReply(c *gin.Context) {
	replyID, err := uuid.Parse(c.Param("reply_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reply id"})
		return
	}

	var req reviewDto.UpdateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, err)
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	reply, err := h.service.UpdateReply(c.Request.Context(), userID, replyID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, reply)
}

func (h *ReviewHandler) PublishReply(c *gin.Context) {
	replyID, err := uuid.Parse(c.Param("reply_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reply id"})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	reply, err := h.service.PublishReply(c.Request.Context(), userID, replyID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, reply)
}

func (h *ReviewHandler) DeleteReply(c *gin.Context) {
	replyID, err := uuid.Parse(c.Param("reply_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reply id"})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeleteReply(c.Request.Context(), userID, replyID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reply deleted successfully"})
}
