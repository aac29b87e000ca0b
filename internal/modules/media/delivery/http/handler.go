package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	media "lokalpulse.com/gbpdashboard/internal/modules/media/service"
	pkgDto "lokalpulse.com/gbpdashboard/pkg/dto"
	"lokalpulse.com/gbpdashboard/pkg/response"
)

// maxPhotoSize caps uploads at 10 MB.
const maxPhotoSize = 10 << 20

type MediaHandler struct {
	service media.Service
}

func NewMediaHandler(service media.Service) *MediaHandler {
	return &MediaHandler{service: service}
}

func (h *MediaHandler) UploadPhoto(c *gin.Context) {
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

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	if fileHeader.Size > maxPhotoSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo exceeds the 10MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer file.Close()

	var caption *string
	if v := c.PostForm("caption"); v != "" {
		caption = &v
	}

	photo, err := h.service.UploadPhoto(c.Request.Context(), userID, locationID, pkgDto.UploadFile{
		Reader:   file,
		FileName: fileHeader.Filename,
	}, caption)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, photo)
}

func (h *MediaHandler) GetPhotos(c *gin.Context) {
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

	photos, err := h.service.GetPhotos(c.Request.Context(), userID, locationID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": photos})
}

func (h *MediaHandler) DeletePhoto(c *gin.Context) {
	photoID, err := strconv.ParseUint(c.Param("photo_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo id"})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeletePhoto(c.Request.Context(), userID, uint(photoID)); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "photo deleted successfully"})
}
